package engine

import (
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/xsect/interval"
)

// Count is the public entry point: for each a in A, it computes the number
// of intervals in B that intersect a (closed-interval semantics, see
// interval.Intersect), and returns the total number of intersecting pairs.
//
// Count is synchronous: cfg selects a Runtime (engine.Serial() or
// engine.Parallel(limit)), but regardless of backend the call blocks until
// the whole five-stage pipeline has run and returns a fully-populated
// result. There is no partial result on error: any precondition violation
// aborts the call before any stage runs. Buffer allocations are not checked:
// Count does not return ErrAllocation, and a failed allocation is a Go
// runtime panic or fatal error rather than a returned error.
func Count(cfg Config, A, B []interval.Interval) (counts []int32, total int64, err error) {
	if err := interval.Validate(A); err != nil {
		return nil, 0, errors.E(ErrInvalidInterval, "engine.Count: invalid A", err)
	}
	if err := interval.Validate(B); err != nil {
		return nil, 0, errors.E(ErrInvalidInterval, "engine.Count: invalid B", err)
	}
	rt := cfg.runtime()
	n, m := len(A), len(B)

	endpoints, err := materialize(rt, A, B)
	if err != nil {
		return nil, 0, err
	}
	rt.Sort(endpoints)

	leftIdx, rightIdx, err := index(rt, endpoints, n)
	if err != nil {
		return nil, 0, err
	}

	nLowerB, nUpperB, err := scans(rt, endpoints)
	if err != nil {
		return nil, 0, err
	}

	counts, total, err = extract(rt, n, leftIdx, rightIdx, nLowerB, nUpperB)
	if err != nil {
		return nil, 0, err
	}
	return counts, total, nil
}

// materialize builds the 2(n+m)-endpoint buffer described in spec §4.1: four
// contiguous regions ([0,n) A-lower, [n,2n) A-upper, [2n,2n+m) B-lower,
// [2n+m,2(n+m)) B-upper), each filled by an independent index-parallel map.
func materialize(rt Runtime, A, B []interval.Interval) ([]interval.Endpoint, error) {
	n, m := len(A), len(B)
	total := 2 * (n + m)
	endpoints := make([]interval.Endpoint, total)

	if err := rt.ForEach(n, func(i int) error {
		lower, upper := interval.MakeEndpoints(A[i], interval.A)
		endpoints[i] = lower
		endpoints[n+i] = upper
		return nil
	}); err != nil {
		return nil, err
	}
	if err := rt.ForEach(m, func(i int) error {
		lower, upper := interval.MakeEndpoints(B[i], interval.B)
		endpoints[2*n+i] = lower
		endpoints[2*n+m+i] = upper
		return nil
	}); err != nil {
		return nil, err
	}
	return endpoints, nil
}

// index scatters the sorted position of each A-endpoint into leftIdx (for
// its LOWER endpoint) or rightIdx (for its UPPER endpoint), per spec §4.3.
// The scatter is safe under concurrent execution: each A-id owns exactly one
// cell in each of the two destination arrays (§3's per-interval endpoint
// uniqueness invariant), so no two ForEach calls ever write the same cell.
func index(rt Runtime, endpoints []interval.Endpoint, n int) (leftIdx, rightIdx []int32, err error) {
	leftIdx = make([]int32, n)
	rightIdx = make([]int32, n)
	err = rt.ForEach(len(endpoints), func(i int) error {
		ep := endpoints[i]
		if ep.Origin != interval.A {
			return nil
		}
		switch ep.Extreme {
		case interval.Lower:
			leftIdx[ep.Id] = int32(i)
		case interval.Upper:
			rightIdx[ep.Id] = int32(i)
		default:
			log.Panicf("engine.index: endpoint %+v has unknown extreme", ep)
		}
		return nil
	})
	return leftIdx, rightIdx, err
}

// scans produces the two tagged inclusive prefix scans of spec §4.4:
// nLowerB[i] counts B-LOWER endpoints at or before position i, nUpperB[i]
// counts B-UPPER endpoints at or before position i.
func scans(rt Runtime, endpoints []interval.Endpoint) (nLowerB, nUpperB []int32, err error) {
	n := len(endpoints)
	nLowerB = make([]int32, n)
	nUpperB = make([]int32, n)
	rt.Scan(n, func(i int) int32 {
		ep := endpoints[i]
		if ep.Origin == interval.B && ep.Extreme == interval.Lower {
			return 1
		}
		return 0
	}, nLowerB)
	rt.Scan(n, func(i int) int32 {
		ep := endpoints[i]
		if ep.Origin == interval.B && ep.Extreme == interval.Upper {
			return 1
		}
		return 0
	}, nUpperB)
	return nLowerB, nUpperB, nil
}

// extract implements the core identity from spec §4.5:
// counts[i] = nLowerB[rightIdx[i]] - nUpperB[leftIdx[i]], then reduces
// counts to the total pair count.
func extract(rt Runtime, n int, leftIdx, rightIdx, nLowerB, nUpperB []int32) (counts []int32, total int64, err error) {
	counts = make([]int32, n)
	if err := rt.ForEach(n, func(i int) error {
		li, ri := leftIdx[i], rightIdx[i]
		c := nLowerB[ri] - nUpperB[li]
		if c < 0 {
			log.Panicf("engine.extract: negative count %d for interval %d (li=%d ri=%d)", c, i, li, ri)
		}
		counts[i] = c
		return nil
	}); err != nil {
		return nil, 0, err
	}
	total = rt.Reduce(n, func(i int) int64 { return int64(counts[i]) })
	if total < 0 {
		return nil, 0, errors.E(ErrOverflow, "engine.extract: total pair count overflowed int64")
	}
	return counts, total, nil
}
