package engine

import (
	"runtime"
	"sort"

	"github.com/grailbio/base/traverse"
	"github.com/grailbio/xsect/interval"
)

// parallelRuntime fans work out across goroutines, using traverse.Each the
// way encoding/converter's convert.go and pileup/snp/pileup.go do for their
// own per-shard and per-job fan-out. ForEach delegates directly to
// traverse.Each, which manages its own worker pool; Sort, Scan, and Reduce
// are implemented here as chunked algorithms and use limit to bound how
// many chunks (and thus how many concurrent traverse.Each calls) they
// create.
type parallelRuntime struct {
	limit int
}

func newParallelRuntime(limit int) Runtime {
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	return parallelRuntime{limit: limit}
}

func (rt parallelRuntime) ForEach(n int, f func(i int) error) error {
	if n == 0 {
		return nil
	}
	return traverse.Each(n, f)
}

// chunks splits [0, n) into at most rt.limit contiguous, roughly-equal
// ranges, skipping empty ones.
func (rt parallelRuntime) chunks(n int) [][2]int {
	if n == 0 {
		return nil
	}
	nChunks := rt.limit
	if nChunks > n {
		nChunks = n
	}
	size := (n + nChunks - 1) / nChunks
	var out [][2]int
	for lo := 0; lo < n; lo += size {
		hi := lo + size
		if hi > n {
			hi = n
		}
		out = append(out, [2]int{lo, hi})
	}
	return out
}

// Sort performs a parallel merge sort: each chunk is sorted concurrently via
// sort.Slice, then the sorted chunks are merged sequentially. Merging
// sequentially keeps the implementation simple; stage 2 is ~15% of total
// work per spec.md §2 and the per-chunk sort dominates that share.
func (rt parallelRuntime) Sort(buf []interval.Endpoint) {
	n := len(buf)
	ranges := rt.chunks(n)
	if len(ranges) <= 1 {
		sort.Slice(buf, func(i, j int) bool { return interval.Less(buf[i], buf[j]) })
		return
	}
	_ = traverse.Each(len(ranges), func(c int) error {
		lo, hi := ranges[c][0], ranges[c][1]
		sub := buf[lo:hi]
		sort.Slice(sub, func(i, j int) bool { return interval.Less(sub[i], sub[j]) })
		return nil
	})
	merged := make([]interval.Endpoint, 0, n)
	idx := make([]int, len(ranges))
	for {
		best := -1
		for c, r := range ranges {
			pos := r[0] + idx[c]
			if pos >= r[1] {
				continue
			}
			if best == -1 || interval.Less(buf[pos], buf[ranges[best][0]+idx[best]]) {
				best = c
			}
		}
		if best == -1 {
			break
		}
		merged = append(merged, buf[ranges[best][0]+idx[best]])
		idx[best]++
	}
	copy(buf, merged)
}

// Scan computes the inclusive prefix sum in two passes: each chunk computes
// its own local inclusive scan and total (in parallel), the per-chunk totals
// are combined into chunk base offsets sequentially (O(nChunks), negligible),
// then each chunk's scanned values are offset by its base (in parallel).
func (rt parallelRuntime) Scan(n int, value func(i int) int32, dst []int32) {
	ranges := rt.chunks(n)
	if len(ranges) <= 1 {
		serialRuntime{}.Scan(n, value, dst)
		return
	}
	totals := make([]int32, len(ranges))
	_ = traverse.Each(len(ranges), func(c int) error {
		lo, hi := ranges[c][0], ranges[c][1]
		var sum int32
		for i := lo; i < hi; i++ {
			sum += value(i)
			dst[i] = sum
		}
		totals[c] = sum
		return nil
	})
	bases := make([]int32, len(ranges))
	var running int32
	for c, t := range totals {
		bases[c] = running
		running += t
	}
	_ = traverse.Each(len(ranges), func(c int) error {
		if bases[c] == 0 {
			return nil
		}
		lo, hi := ranges[c][0], ranges[c][1]
		for i := lo; i < hi; i++ {
			dst[i] += bases[c]
		}
		return nil
	})
}

// Reduce sums each chunk concurrently, then combines the per-chunk partial
// sums sequentially.
func (rt parallelRuntime) Reduce(n int, value func(i int) int64) int64 {
	ranges := rt.chunks(n)
	if len(ranges) <= 1 {
		return serialRuntime{}.Reduce(n, value)
	}
	partials := make([]int64, len(ranges))
	_ = traverse.Each(len(ranges), func(c int) error {
		lo, hi := ranges[c][0], ranges[c][1]
		var sum int64
		for i := lo; i < hi; i++ {
			sum += value(i)
		}
		partials[c] = sum
		return nil
	})
	var total int64
	for _, p := range partials {
		total += p
	}
	return total
}
