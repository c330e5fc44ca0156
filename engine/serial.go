package engine

import (
	"sort"

	"github.com/grailbio/xsect/interval"
)

// serialRuntime runs every primitive on the calling goroutine. It is the
// baseline backend (engine.Serial()), and parallelRuntime falls back to its
// Scan and Reduce when the input fits in a single chunk.
type serialRuntime struct{}

func (serialRuntime) ForEach(n int, f func(i int) error) error {
	for i := 0; i < n; i++ {
		if err := f(i); err != nil {
			return err
		}
	}
	return nil
}

func (serialRuntime) Sort(buf []interval.Endpoint) {
	sort.Slice(buf, func(i, j int) bool { return interval.Less(buf[i], buf[j]) })
}

func (serialRuntime) Scan(n int, value func(i int) int32, dst []int32) {
	var sum int32
	for i := 0; i < n; i++ {
		sum += value(i)
		dst[i] = sum
	}
}

func (serialRuntime) Reduce(n int, value func(i int) int64) int64 {
	var sum int64
	for i := 0; i < n; i++ {
		sum += value(i)
	}
	return sum
}
