package interval

import "math"

// PosType is the type used to represent interval coordinates. int32 should
// be wide enough for some time to come, since that's what BAM is limited
// to.
type PosType int32

// PosTypeMax is the maximum value that can be represented by a PosType.
const PosTypeMax = math.MaxInt32
