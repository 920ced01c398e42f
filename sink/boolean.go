package sink

import (
	"go.uber.org/zap"

	"github.com/knokko/bits/address"
	"github.com/knokko/bits/fault"
)

// BooleanArray is a sink storing one bool per bit.
type BooleanArray struct {
	cursor
	data []bool
}

var _ Sink = (*BooleanArray)(nil)

// NewBooleanArray returns a sink with room for capacity bits.
func NewBooleanArray(capacity int, opts ...Option) *BooleanArray {
	o := newOptions(opts)

	return &BooleanArray{
		cursor: cursor{logger: o.logger},
		data:   make([]bool, capacity),
	}
}

// WriteBool implements Sink.
func (a *BooleanArray) WriteBool(b bool) (err error) {
	err = a.EnsureExtraCapacity(1)
	if err != nil {
		return err
	}

	a.data[a.used] = b
	a.used++

	return nil
}

// WriteBits implements Sink.
func (a *BooleanArray) WriteBits(value uint64, n uint8) (err error) {
	err = a.EnsureExtraCapacity(int(n))
	if err != nil {
		return err
	}

	return a.WriteBitsDirect(value, n)
}

// WriteBitsDirect implements Sink.
func (a *BooleanArray) WriteBitsDirect(value uint64, n uint8) (err error) {
	defer Error.WrapP(&err)

	err = a.check(n)
	if err != nil {
		return err
	}

	if a.used+int(n) > len(a.data) {
		return fault.Capacity.New(
			"direct write: used=%d capacity=%d bits=%d",
			a.used,
			len(a.data),
			n,
		)
	}

	address.PutBools(a.data, a.used, value, n)
	a.used += int(n)

	return nil
}

// EnsureExtraCapacity implements Sink.
func (a *BooleanArray) EnsureExtraCapacity(bits int) (err error) {
	defer Error.WrapP(&err)

	err = a.check(0)
	if err != nil {
		return err
	}

	need := a.used + bits
	if need <= len(a.data) {
		return nil
	}

	size := grow(len(a.data), need, minGrowth)
	a.logger.Debug("growing boolean array",
		zap.Int("used", a.used),
		zap.Int("from", len(a.data)),
		zap.Int("to", size),
	)

	data := make([]bool, size)
	copy(data, a.data[:a.used])
	a.data = data

	return nil
}

// Terminate implements Sink. The backing array is trimmed to the bits
// written; the padding only shows in Bytes.
func (a *BooleanArray) Terminate() (err error) {
	defer Error.WrapP(&err)

	err = a.terminate()
	if err != nil {
		return err
	}

	a.data = a.data[:a.used:a.used]
	a.logger.Debug("terminated boolean array", zap.Int("bits", a.used))

	return nil
}

// Booleans returns a copy of the bits written.
func (a *BooleanArray) Booleans() []bool {
	out := make([]bool, a.used)
	copy(out, a.data)

	return out
}

// Bytes returns the bits written packed into bytes, zero padded.
func (a *BooleanArray) Bytes() []byte {
	return address.BoolsToBytes(a.data[:a.used])
}

// BackingArray returns the backing array itself. Before Terminate it may be
// longer than the content.
func (a *BooleanArray) BackingArray() []bool {
	return a.data
}
