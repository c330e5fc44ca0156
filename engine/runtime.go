package engine

import "github.com/grailbio/xsect/interval"

// Runtime is the parallel backend the five-stage pipeline in count.go is
// written against. It exposes exactly the four primitives a bulk-synchronous
// data-parallel implementation needs: an index-parallel map (ForEach), a
// total-order sort, a tagged inclusive prefix-scan (Scan), and a fold
// (Reduce). Every stage's correctness is independent of how a Runtime
// schedules work inside these calls; only the per-call contract matters.
//
// A concrete Runtime may run everything on the calling goroutine (serial.go)
// or fan out across a worker pool (parallel.go); callers select one via
// Config.
type Runtime interface {
	// ForEach calls f(i) for every i in [0, n), surfacing the first error
	// encountered (implementations may run calls concurrently, in which
	// case "first" means first observed, not necessarily lowest i).
	// Elements are independent: f must not depend on the order or
	// concurrency of other calls.
	ForEach(n int, f func(i int) error) error

	// Sort reorders buf in place under interval.Less. Ties (equal value,
	// equal extreme) may resolve in any order; the count identity in
	// count.go holds regardless.
	Sort(buf []interval.Endpoint)

	// Scan computes an inclusive prefix sum: dst[i] = sum(value(0)..value(i))
	// for i in [0, n). dst must have length >= n.
	Scan(n int, value func(i int) int32, dst []int32)

	// Reduce folds value(0)..value(n-1) with integer addition.
	Reduce(n int, value func(i int) int64) int64
}

// Config selects which Runtime backs a Count call.
type Config struct {
	rt Runtime
}

// Serial returns a Config that runs every stage on the calling goroutine.
// Useful as a baseline and for small inputs where the parallel overhead
// isn't worth it.
func Serial() Config {
	return Config{rt: serialRuntime{}}
}

// Parallel returns a Config that fans each stage out across goroutines.
// Sort, Scan and Reduce split their work into at most limit concurrently
// processed chunks; ForEach hands every index to traverse.Each, whose
// concurrency is not bounded by limit. limit <= 0 means runtime.NumCPU().
func Parallel(limit int) Config {
	return Config{rt: newParallelRuntime(limit)}
}

func (c Config) runtime() Runtime {
	if c.rt == nil {
		return serialRuntime{}
	}
	return c.rt
}
