package source

import (
	"errors"
	"io"

	"github.com/icza/bitio"
	"go.uber.org/zap"

	"github.com/knokko/bits/fault"
)

// Stream reads bits from an io.Reader, pulling bytes only when the buffered
// bits run out. Reads block while the reader blocks.
type Stream struct {
	in         io.Reader
	r          *bitio.Reader
	pos        int
	terminated bool
	logger     *zap.Logger
}

var _ Source = (*Stream)(nil)

// NewStream returns a source reading from in.
func NewStream(in io.Reader, opts ...Option) *Stream {
	o := newOptions(opts)

	return &Stream{
		in:     in,
		r:      bitio.NewReader(in),
		logger: o.logger,
	}
}

// Position implements Source.
func (s *Stream) Position() int {
	return s.pos
}

func (s *Stream) check(n uint8) (err error) {
	if s.terminated {
		return fault.Terminated.New("read of %d bits after terminate", n)
	}
	if n > 64 {
		return fault.Argument.New("width %d exceeds 64 bits", n)
	}

	return nil
}

// streamError sorts a reader failure into end of data or a stream failure.
func (s *Stream) streamError(n uint8, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fault.EndOfData.New("read of %d bits at position %d: %v", n, s.pos, err)
	}

	return fault.StreamIO.Wrap(err)
}

// ReadBool implements Source.
func (s *Stream) ReadBool() (b bool, err error) {
	defer Error.WrapP(&err)

	err = s.check(1)
	if err != nil {
		return false, err
	}

	b, err = s.r.ReadBool()
	if err != nil {
		return false, s.streamError(1, err)
	}
	s.pos++

	return b, nil
}

// ReadBits implements Source.
func (s *Stream) ReadBits(n uint8) (value uint64, err error) {
	defer Error.WrapP(&err)

	err = s.check(n)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, nil
	}

	value, err = s.r.ReadBits(n)
	if err != nil {
		return 0, s.streamError(n, err)
	}
	s.pos += int(n)

	return value, nil
}

// Terminate implements Source. The reader is closed if it is an io.Closer.
func (s *Stream) Terminate() (err error) {
	defer Error.WrapP(&err)

	if s.terminated {
		return fault.Terminated.New("already terminated")
	}
	s.terminated = true

	s.logger.Debug("terminated stream source", zap.Int("position", s.pos))

	if c, ok := s.in.(io.Closer); ok {
		err = c.Close()
		if err != nil {
			return fault.StreamIO.Wrap(err)
		}
	}

	return nil
}
