// Package sink provides append-only bit buffers.
//
// A Sink accepts bits in order and never revisits them. BooleanArray and
// ByteArray keep the bits in memory and grow their backing array
// geometrically, so appending n bits costs O(n) amortized no matter how the
// appends are split. Stream writes the bits through to an io.Writer.
//
// Lifecycle:
//
//	s := sink.NewByteArray(0)
//	... s.WriteBits(v, n) ...
//	s.Terminate() // pads the last byte with zero bits and freezes s
//	data := s.Bytes()
//
// Sinks are not safe for concurrent use.
package sink

import (
	"go.uber.org/zap"

	"github.com/zeebo/errs"

	"github.com/knokko/bits/fault"
)

// Error is the class of errors returned by this package.
var Error = errs.Class("sink")

// minGrowth is the smallest number of bits a reallocation adds.
const minGrowth = 64

// Sink is an append-only bit buffer.
type Sink interface {
	// WriteBool appends a single bit.
	WriteBool(b bool) (err error)

	// WriteBits appends the n low bits of value, most significant first,
	// growing the buffer if needed.
	WriteBits(value uint64, n uint8) (err error)

	// WriteBitsDirect is WriteBits without growth. It fails with
	// fault.Capacity if the bits were not reserved with
	// EnsureExtraCapacity beforehand.
	WriteBitsDirect(value uint64, n uint8) (err error)

	// EnsureExtraCapacity reserves room for at least bits more bits.
	EnsureExtraCapacity(bits int) (err error)

	// Len returns the number of bits written.
	Len() int

	// Terminate pads the final byte and freezes the sink. A terminated
	// sink rejects every further write, including a second Terminate.
	Terminate() (err error)
}

type options struct {
	logger *zap.Logger
}

// Option configures a sink.
type Option func(*options)

// WithLogger sets the logger that receives growth and termination events.
func WithLogger(logger *zap.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// cursor tracks the state shared by the in-memory sinks.
type cursor struct {
	used       int
	terminated bool
	logger     *zap.Logger
}

func (c *cursor) Len() int {
	return c.used
}

func (c *cursor) check(n uint8) (err error) {
	if c.terminated {
		return fault.Terminated.New("write of %d bits after terminate", n)
	}
	if n > 64 {
		return fault.Argument.New("width %d exceeds 64 bits", n)
	}

	return nil
}

func (c *cursor) terminate() (err error) {
	if c.terminated {
		return fault.Terminated.New("already terminated")
	}
	c.terminated = true

	return nil
}

// grow returns the new capacity for a store of capacity units that must hold
// at least need units. step is the minimum number of units to add.
func grow(capacity, need, step int) int {
	size := capacity * 2
	if size < capacity+step {
		size = capacity + step
	}
	if size < need {
		size = need
	}

	return size
}
