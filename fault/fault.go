// Package fault defines the error classes shared by every bits package.
//
// Each class names a kind of failure. Callers test for a kind with Has:
//
//	if fault.EndOfData.Has(err) {
//		// the source ran out of bits
//	}
//
// None of these failures leave a partially decoded value behind. An
// instance that returned one of them should be abandoned.
package fault

import "github.com/zeebo/errs"

var (
	// Overflow is returned when a value cannot be represented in the
	// requested width, even after truncation (e.g. a string longer than
	// its length field can describe).
	Overflow = errs.Class("overflow")

	// Argument is returned for widths outside 1..64 and similar misuse.
	Argument = errs.Class("invalid argument")

	// EndOfData is returned when a read needs more bits than remain.
	EndOfData = errs.Class("end of data")

	// Capacity is returned when a direct write does not fit in the
	// capacity reserved beforehand.
	Capacity = errs.Class("capacity")

	// StreamIO is returned when the underlying reader or writer fails.
	StreamIO = errs.Class("stream")

	// Terminated is returned for any use of a terminated sink or source.
	Terminated = errs.Class("terminated")
)
