// Package interval defines the closed-integer-interval data model used by
// the xsect intersection-counting engine, together with the two external
// collaborators that produce interval batches: a BED-file reader and a
// BAM-alignment reader. Nothing in this package performs intersection
// counting itself; see package engine for that.
package interval
