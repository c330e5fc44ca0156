package interval

// Extreme distinguishes the lower and upper bound of an interval.
type Extreme int

const (
	// Lower marks an endpoint as an interval's lower bound.
	Lower Extreme = iota
	// Upper marks an endpoint as an interval's upper bound.
	Upper
)

// Origin distinguishes which of the two input collections an endpoint came
// from: A (subscriptions, the side we compute per-element counts for) or B
// (updates, the side being counted).
type Origin int

const (
	// A marks an endpoint as belonging to the subscription set.
	A Origin = iota
	// B marks an endpoint as belonging to the update set.
	B
)

// Endpoint is one of the two scalar bounds of an interval, tagged by the
// interval it came from (Id, dense within Origin), its value, which bound
// it is, and which collection it belongs to.
type Endpoint struct {
	Id      int
	V       PosType
	Extreme Extreme
	Origin  Origin
}

// Less implements the total order from spec.md §3: endpoints sort primarily
// by value; at equal value, a Lower endpoint precedes an Upper one. Any
// further tie (same value, same extreme) is left unordered — the count
// identity in engine/count.go is correct regardless of how those ties
// resolve.
//
// Since intervals are closed, two intervals touching at a single point
// ([a,v] and [v,b]) intersect. Placing Lower before Upper at equal values
// ensures the "opening" endpoint of a newly-entering interval is counted
// before the "closing" endpoint of one departing.
func Less(e, f Endpoint) bool {
	if e.V != f.V {
		return e.V < f.V
	}
	return e.Extreme == Lower && f.Extreme == Upper
}

// MakeEndpoints returns the lower and upper endpoints of iv, tagged with
// origin.
func MakeEndpoints(iv Interval, origin Origin) (lower, upper Endpoint) {
	lower = Endpoint{Id: iv.Id, V: iv.Lower, Extreme: Lower, Origin: origin}
	upper = Endpoint{Id: iv.Id, V: iv.Upper, Extreme: Upper, Origin: origin}
	return
}
