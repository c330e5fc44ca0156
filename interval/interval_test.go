package interval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntersect(t *testing.T) {
	cases := []struct {
		x, y Interval
		want bool
	}{
		{Interval{Lower: 10, Upper: 20}, Interval{Lower: 20, Upper: 30}, true},
		{Interval{Lower: 10, Upper: 20}, Interval{Lower: 21, Upper: 30}, false},
		{Interval{Lower: 100, Upper: 100}, Interval{Lower: 100, Upper: 100}, true},
		{Interval{Lower: 0, Upper: 0}, Interval{Lower: 1, Upper: 2}, false},
		{Interval{Lower: -5, Upper: 5}, Interval{Lower: -10, Upper: -5}, true},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Intersect(c.x, c.y), "Intersect(%+v, %+v)", c.x, c.y)
		assert.Equal(t, c.want, Intersect(c.y, c.x), "Intersect is symmetric")
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(nil))
	assert.NoError(t, Validate([]Interval{{Id: 0, Lower: 0, Upper: 1}, {Id: 1, Lower: 5, Upper: 5}}))
	assert.Error(t, Validate([]Interval{{Id: 1, Lower: 0, Upper: 1}}))
	assert.Error(t, Validate([]Interval{{Id: 0, Lower: 5, Upper: 1}}))
}
