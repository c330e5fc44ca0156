package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grailbio/xsect/interval"
)

func runtimes() map[string]Runtime {
	return map[string]Runtime{
		"serial":     serialRuntime{},
		"parallel/1": newParallelRuntime(1),
		"parallel/3": newParallelRuntime(3),
		"parallel/8": newParallelRuntime(8),
	}
}

func TestForEachVisitsEveryIndex(t *testing.T) {
	for name, rt := range runtimes() {
		t.Run(name, func(t *testing.T) {
			const n = 37
			seen := make([]bool, n)
			err := rt.ForEach(n, func(i int) error {
				seen[i] = true
				return nil
			})
			assert.NoError(t, err)
			for i, ok := range seen {
				assert.True(t, ok, "index %d not visited", i)
			}
		})
	}
}

func TestForEachPropagatesError(t *testing.T) {
	wantErr := errors.New("boom")
	for name, rt := range runtimes() {
		t.Run(name, func(t *testing.T) {
			err := rt.ForEach(10, func(i int) error {
				if i == 5 {
					return wantErr
				}
				return nil
			})
			assert.Error(t, err)
		})
	}
}

func TestForEachZero(t *testing.T) {
	for name, rt := range runtimes() {
		t.Run(name, func(t *testing.T) {
			called := false
			err := rt.ForEach(0, func(i int) error {
				called = true
				return nil
			})
			assert.NoError(t, err)
			assert.False(t, called)
		})
	}
}

func TestSortOrdersByEndpointLess(t *testing.T) {
	for name, rt := range runtimes() {
		t.Run(name, func(t *testing.T) {
			buf := []interval.Endpoint{
				{Id: 0, V: 30, Extreme: interval.Upper},
				{Id: 1, V: 10, Extreme: interval.Lower},
				{Id: 2, V: 20, Extreme: interval.Upper},
				{Id: 3, V: 10, Extreme: interval.Upper},
				{Id: 4, V: 5, Extreme: interval.Lower},
			}
			rt.Sort(buf)
			for i := 1; i < len(buf); i++ {
				assert.False(t, interval.Less(buf[i], buf[i-1]), "not sorted at %d: %+v then %+v", i, buf[i-1], buf[i])
			}
		})
	}
}

func TestScanComputesInclusiveSum(t *testing.T) {
	values := []int32{1, 0, 2, 3, 0, 1, 1, 4, 0, 2}
	want := make([]int32, len(values))
	var running int32
	for i, v := range values {
		running += v
		want[i] = running
	}
	for name, rt := range runtimes() {
		t.Run(name, func(t *testing.T) {
			dst := make([]int32, len(values))
			rt.Scan(len(values), func(i int) int32 { return values[i] }, dst)
			assert.Equal(t, want, dst)
		})
	}
}

func TestReduceSums(t *testing.T) {
	values := make([]int64, 100)
	var want int64
	for i := range values {
		values[i] = int64(i)
		want += int64(i)
	}
	for name, rt := range runtimes() {
		t.Run(name, func(t *testing.T) {
			got := rt.Reduce(len(values), func(i int) int64 { return values[i] })
			assert.Equal(t, want, got)
		})
	}
}

func TestReduceEmpty(t *testing.T) {
	for name, rt := range runtimes() {
		t.Run(name, func(t *testing.T) {
			got := rt.Reduce(0, func(i int) int64 { return 1 })
			assert.Equal(t, int64(0), got)
		})
	}
}
