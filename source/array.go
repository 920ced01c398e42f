package source

import (
	"github.com/knokko/bits/address"
)

// BooleanArray reads bits stored one bool per bit.
type BooleanArray struct {
	cursor
	data []bool
}

var _ Source = (*BooleanArray)(nil)

// NewBooleanArray returns a source over data. Every element of data is
// readable, so an over-allocated backing array reads as trailing zeros.
func NewBooleanArray(data []bool, opts ...Option) *BooleanArray {
	o := newOptions(opts)

	return &BooleanArray{
		cursor: cursor{size: len(data), logger: o.logger},
		data:   data,
	}
}

// ReadBool implements Source.
func (a *BooleanArray) ReadBool() (b bool, err error) {
	defer Error.WrapP(&err)

	err = a.check(1)
	if err != nil {
		return false, err
	}

	b = a.data[a.pos]
	a.pos++

	return b, nil
}

// ReadBits implements Source.
func (a *BooleanArray) ReadBits(n uint8) (value uint64, err error) {
	defer Error.WrapP(&err)

	err = a.check(n)
	if err != nil {
		return 0, err
	}

	value = address.Bools(a.data, a.pos, n)
	a.pos += int(n)

	return value, nil
}

// ByteArray reads bits packed 8 per byte.
type ByteArray struct {
	cursor
	data []byte
}

var _ Source = (*ByteArray)(nil)

// NewByteArray returns a source over data.
func NewByteArray(data []byte, opts ...Option) *ByteArray {
	o := newOptions(opts)

	return &ByteArray{
		cursor: cursor{size: len(data) * 8, logger: o.logger},
		data:   data,
	}
}

// ReadBool implements Source.
func (a *ByteArray) ReadBool() (b bool, err error) {
	v, err := a.ReadBits(1)

	return v == 1, err
}

// ReadBits implements Source.
func (a *ByteArray) ReadBits(n uint8) (value uint64, err error) {
	defer Error.WrapP(&err)

	err = a.check(n)
	if err != nil {
		return 0, err
	}

	value = address.Bits(a.data, a.pos, n)
	a.pos += int(n)

	return value, nil
}
