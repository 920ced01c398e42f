package integer

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/knokko/bits/address"
	"github.com/knokko/bits/fault"
)

// bitList is an unbounded in-memory bit buffer.
type bitList struct {
	bits []bool
	pos  int
}

func (l *bitList) WriteBits(value uint64, n uint8) error {
	l.bits = append(l.bits, address.ToBinary(value, n)...)
	return nil
}

func (l *bitList) ReadBits(n uint8) (uint64, error) {
	if l.pos+int(n) > len(l.bits) {
		return 0, fault.EndOfData.New("need %d bits, have %d", n, len(l.bits)-l.pos)
	}

	v := address.Bools(l.bits, l.pos, n)
	l.pos += int(n)

	return v, nil
}

func TestEncodeDecode(t *testing.T) {
	type TC struct {
		name   string
		schema Schema
		value  int64
		bits   []bool
		result int64
	}

	tcs := []TC{
		{
			name:   "int8 min",
			schema: Int8,
			value:  math.MinInt8,
			bits:   address.ToBinary(0b_1000_0000, 8),
			result: math.MinInt8,
		},
		{
			name:   "int8 max",
			schema: Int8,
			value:  math.MaxInt8,
			bits:   address.ToBinary(0b_0111_1111, 8),
			result: math.MaxInt8,
		},
		{
			name:   "int8 truncated",
			schema: Int8,
			value:  math.MaxInt8 + 1,
			bits:   address.ToBinary(0b_1000_0000, 8),
			result: math.MinInt8,
		},
		{
			name:   "signed 5",
			schema: Schema{Bits: 5, Signed: true},
			value:  -15,
			bits:   []bool{true, false, false, false, true},
			result: -15,
		},
		{
			name:   "unsigned 3",
			schema: Schema{Bits: 3},
			value:  7,
			bits:   []bool{true, true, true},
			result: 7,
		},
		{
			name:   "unsigned 3 truncated",
			schema: Schema{Bits: 3},
			value:  9,
			bits:   []bool{false, false, true},
			result: 1,
		},
		{
			name:   "signed 4",
			schema: Schema{Bits: 4, Signed: true},
			value:  7,
			bits:   []bool{false, true, true, true},
			result: 7,
		},
		{
			name:   "char max",
			schema: Char,
			value:  math.MaxUint16,
			bits:   address.ToBinary(math.MaxUint16, 16),
			result: math.MaxUint16,
		},
		{
			name:   "int64 min",
			schema: Int64,
			value:  math.MinInt64,
			bits:   address.ToBinary(1<<63, 64),
			result: math.MinInt64,
		},
		{
			name:   "economical unsigned 7",
			schema: Economical(false),
			value:  7,
			bits:   append(address.ToBinary(2, prefixBits), true, true, true),
			result: 7,
		},
		{
			name:   "economical unsigned 0",
			schema: Economical(false),
			value:  0,
			bits:   append(address.ToBinary(0, prefixBits), false),
			result: 0,
		},
		{
			name:   "economical signed -15",
			schema: Economical(true),
			value:  -15,
			bits:   append(address.ToBinary(4, prefixBits), true, false, false, false, true),
			result: -15,
		},
		{
			name:   "economical signed max",
			schema: Economical(true),
			value:  math.MaxInt64,
			bits:   append(address.ToBinary(63, prefixBits), address.ToBinary(math.MaxInt64, 64)...),
			result: math.MaxInt64,
		},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%s", i, tc.name), func(t *testing.T) {
			l := &bitList{}

			err := NewEncoder(tc.schema, l).Encode(tc.value)
			require.NoError(t, err)
			require.Equal(t, tc.bits, l.bits)
			require.Equal(t, len(tc.bits), tc.schema.Size(tc.value))

			result, err := NewDecoder(tc.schema, l).Decode()
			require.NoError(t, err)
			require.Equal(t, tc.result, result)
			require.Equal(t, len(l.bits), l.pos)
		})
	}
}

func TestEconomicalRoundtrip(t *testing.T) {
	values := []int64{
		0, 1, -1, 2, -2, 23456678, -23456678,
		math.MaxInt32, math.MinInt32,
		math.MaxInt64, math.MinInt64,
	}

	for _, signed := range []bool{false, true} {
		l := &bitList{}
		e := NewEncoder(Economical(signed), l)
		for _, v := range values {
			require.NoError(t, e.Encode(v))
		}

		d := NewDecoder(Economical(signed), l)
		for _, v := range values {
			result, err := d.Decode()
			require.NoError(t, err)
			require.Equal(t, v, result, "signed=%t", signed)
		}
	}
}

func TestEveryWidth(t *testing.T) {
	for n := uint8(1); n <= 64; n++ {
		hi := int64(address.Mask(n - 1))
		lo := -hi - 1

		l := &bitList{}
		signed := NewEncoder(Schema{Bits: n, Signed: true}, l)
		require.NoError(t, signed.Encode(lo))
		require.NoError(t, signed.Encode(hi))

		unsigned := NewEncoder(Schema{Bits: n}, l)
		require.NoError(t, unsigned.Encode(int64(address.Mask(n))))

		d := NewDecoder(Schema{Bits: n, Signed: true}, l)
		result, err := d.Decode()
		require.NoError(t, err)
		require.Equal(t, lo, result, "n=%d", n)

		result, err = d.Decode()
		require.NoError(t, err)
		require.Equal(t, hi, result, "n=%d", n)

		result, err = NewDecoder(Schema{Bits: n}, l).Decode()
		require.NoError(t, err)
		require.Equal(t, int64(address.Mask(n)), result, "n=%d", n)
	}
}

func TestErrors(t *testing.T) {
	l := &bitList{}

	err := NewEncoder(Schema{Bits: 65}, l).Encode(1)
	require.Error(t, err)
	require.True(t, fault.Argument.Has(err))
	require.True(t, Error.Has(err))
	require.Empty(t, l.bits)

	require.NoError(t, NewEncoder(Int8, l).Encode(1))

	_, err = NewDecoder(Int16, l).Decode()
	require.Error(t, err)
	require.True(t, fault.EndOfData.Has(err))
}
