// Package source provides sequential bit readers.
//
// A Source hands out bits in the order a sink.Sink accepted them. Running out
// of bits is an error (fault.EndOfData), never a silent zero.
package source

import (
	"go.uber.org/zap"

	"github.com/zeebo/errs"

	"github.com/knokko/bits/fault"
)

// Error is the class of errors returned by this package.
var Error = errs.Class("source")

// Source is a sequential bit reader.
type Source interface {
	// ReadBool reads a single bit.
	ReadBool() (b bool, err error)

	// ReadBits reads n bits, most significant first, into the low bits of
	// value.
	ReadBits(n uint8) (value uint64, err error)

	// Position returns the number of bits read.
	Position() int

	// Terminate releases the source. Reads afterwards fail.
	Terminate() (err error)
}

type options struct {
	logger *zap.Logger
}

// Option configures a source.
type Option func(*options)

// WithLogger sets the logger that receives termination events.
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

// cursor tracks the state shared by the in-memory sources.
type cursor struct {
	pos        int
	size       int
	terminated bool
	logger     *zap.Logger
}

func (c *cursor) Position() int {
	return c.pos
}

func (c *cursor) check(n uint8) (err error) {
	if c.terminated {
		return fault.Terminated.New("read of %d bits after terminate", n)
	}
	if n > 64 {
		return fault.Argument.New("width %d exceeds 64 bits", n)
	}
	if c.pos+int(n) > c.size {
		return fault.EndOfData.New(
			"read of %d bits at position %d, %d available",
			n,
			c.pos,
			c.size-c.pos,
		)
	}

	return nil
}

func (c *cursor) Terminate() (err error) {
	defer Error.WrapP(&err)

	if c.terminated {
		return fault.Terminated.New("already terminated")
	}
	c.terminated = true

	c.logger.Debug("terminated source",
		zap.Int("position", c.pos),
		zap.Int("remaining", c.size-c.pos),
	)

	return nil
}
