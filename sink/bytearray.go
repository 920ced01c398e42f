package sink

import (
	"go.uber.org/zap"

	"github.com/knokko/bits/address"
	"github.com/knokko/bits/fault"
)

// ByteArray is a sink packing 8 bits per byte.
type ByteArray struct {
	cursor
	data []byte
}

var _ Sink = (*ByteArray)(nil)

// NewByteArray returns a sink with room for capacity bytes.
func NewByteArray(capacity int, opts ...Option) *ByteArray {
	o := newOptions(opts)

	return &ByteArray{
		cursor: cursor{logger: o.logger},
		data:   make([]byte, capacity),
	}
}

// WriteBool implements Sink.
func (a *ByteArray) WriteBool(b bool) (err error) {
	var v uint64
	if b {
		v = 1
	}

	return a.WriteBits(v, 1)
}

// WriteBits implements Sink.
func (a *ByteArray) WriteBits(value uint64, n uint8) (err error) {
	err = a.EnsureExtraCapacity(int(n))
	if err != nil {
		return err
	}

	return a.WriteBitsDirect(value, n)
}

// WriteBitsDirect implements Sink.
func (a *ByteArray) WriteBitsDirect(value uint64, n uint8) (err error) {
	defer Error.WrapP(&err)

	err = a.check(n)
	if err != nil {
		return err
	}

	if a.used+int(n) > len(a.data)*8 {
		return fault.Capacity.New(
			"direct write: used=%d capacity=%d bits=%d",
			a.used,
			len(a.data)*8,
			n,
		)
	}

	address.PutBits(a.data, a.used, value, n)
	a.used += int(n)

	return nil
}

// EnsureExtraCapacity implements Sink.
func (a *ByteArray) EnsureExtraCapacity(bits int) (err error) {
	defer Error.WrapP(&err)

	err = a.check(0)
	if err != nil {
		return err
	}

	need := (a.used + bits + 7) / 8
	if need <= len(a.data) {
		return nil
	}

	size := grow(len(a.data), need, minGrowth/8)
	a.logger.Debug("growing byte array",
		zap.Int("used", a.used),
		zap.Int("from", len(a.data)),
		zap.Int("to", size),
	)

	data := make([]byte, size)
	copy(data, a.data[:(a.used+7)/8])
	a.data = data

	return nil
}

// Terminate implements Sink. The unused low bits of the last byte are
// cleared and the backing array is trimmed to the bytes in use.
func (a *ByteArray) Terminate() (err error) {
	defer Error.WrapP(&err)

	err = a.terminate()
	if err != nil {
		return err
	}

	size := (a.used + 7) / 8
	if pad := size*8 - a.used; pad > 0 {
		address.PutBits(a.data, a.used, 0, uint8(pad))
	}

	a.data = a.data[:size:size]
	a.logger.Debug("terminated byte array",
		zap.Int("bits", a.used),
		zap.Int("bytes", size),
	)

	return nil
}

// Booleans returns the bits written.
func (a *ByteArray) Booleans() []bool {
	return address.BytesToBools(a.data, a.used)
}

// Bytes returns a copy of the bytes in use. Bits past Len are zero.
func (a *ByteArray) Bytes() []byte {
	size := (a.used + 7) / 8

	out := make([]byte, size)
	copy(out, a.data)

	if pad := size*8 - a.used; pad > 0 {
		address.PutBits(out, a.used, 0, uint8(pad))
	}

	return out
}

// BackingArray returns the backing array itself. Before Terminate it may be
// longer than the content.
func (a *ByteArray) BackingArray() []byte {
	return a.data
}
