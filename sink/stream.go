package sink

import (
	"io"

	"github.com/icza/bitio"
	"go.uber.org/zap"

	"github.com/knokko/bits/address"
	"github.com/knokko/bits/fault"
)

// Stream is a sink writing through to an io.Writer. Bits are buffered until
// a byte is complete; Terminate flushes the final partial byte.
type Stream struct {
	cursor
	out io.Writer
	w   *bitio.Writer
}

var _ Sink = (*Stream)(nil)

// NewStream returns a sink writing to out.
func NewStream(out io.Writer, opts ...Option) *Stream {
	o := newOptions(opts)

	return &Stream{
		cursor: cursor{logger: o.logger},
		out:    out,
		w:      bitio.NewWriter(out),
	}
}

// WriteBool implements Sink.
func (s *Stream) WriteBool(b bool) (err error) {
	defer Error.WrapP(&err)

	err = s.check(1)
	if err != nil {
		return err
	}

	err = s.w.WriteBool(b)
	if err != nil {
		return fault.StreamIO.Wrap(err)
	}
	s.used++

	return nil
}

// WriteBits implements Sink.
func (s *Stream) WriteBits(value uint64, n uint8) (err error) {
	defer Error.WrapP(&err)

	err = s.check(n)
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}

	err = s.w.WriteBits(value&address.Mask(n), n)
	if err != nil {
		return fault.StreamIO.Wrap(err)
	}
	s.used += int(n)

	return nil
}

// WriteBitsDirect implements Sink. A stream has no capacity to exhaust.
func (s *Stream) WriteBitsDirect(value uint64, n uint8) (err error) {
	return s.WriteBits(value, n)
}

// EnsureExtraCapacity implements Sink. It only checks that the stream is
// still open.
func (s *Stream) EnsureExtraCapacity(bits int) (err error) {
	defer Error.WrapP(&err)

	return s.check(0)
}

// Terminate implements Sink. The final byte is padded with zero bits and
// flushed; out is closed if it is an io.Closer.
func (s *Stream) Terminate() (err error) {
	defer Error.WrapP(&err)

	err = s.terminate()
	if err != nil {
		return err
	}

	err = s.w.Close()
	if err != nil {
		return fault.StreamIO.Wrap(err)
	}

	s.logger.Debug("terminated stream", zap.Int("bits", s.used))

	if c, ok := s.out.(io.Closer); ok {
		err = c.Close()
		if err != nil {
			return fault.StreamIO.Wrap(err)
		}
	}

	return nil
}
