package bits

import (
	"github.com/zeebo/errs"

	"github.com/knokko/bits/fault"
	"github.com/knokko/bits/integer"
	"github.com/knokko/bits/sink"
	"github.com/knokko/bits/text"
)

// Error is the class of errors returned by this package.
var Error = errs.Class("bits")

// Output appends typed values to a sink.
type Output struct {
	s sink.Sink
}

// NewOutput returns an Output writing to s.
func NewOutput(s sink.Sink) *Output {
	return &Output{
		s: s,
	}
}

// direct routes writes to WriteBitsDirect.
type direct struct {
	s sink.Sink
}

func (d direct) WriteBits(value uint64, n uint8) (err error) {
	return d.s.WriteBitsDirect(value, n)
}

func (o *Output) encode(schema integer.Schema, value int64) (err error) {
	return integer.NewEncoder(schema, o.s).Encode(value)
}

func (o *Output) encodeDirect(schema integer.Schema, value int64) (err error) {
	return integer.NewEncoder(schema, direct{o.s}).Encode(value)
}

// AddBoolean appends one bit.
func (o *Output) AddBoolean(b bool) (err error) {
	return o.s.WriteBool(b)
}

// AddBooleans appends one bit per argument, in order.
func (o *Output) AddBooleans(bs ...bool) (err error) {
	err = o.s.EnsureExtraCapacity(len(bs))
	if err != nil {
		return err
	}

	for _, b := range bs {
		err = o.s.WriteBool(b)
		if err != nil {
			return err
		}
	}

	return nil
}

// AddByte appends 8 bits.
func (o *Output) AddByte(v int8) (err error) {
	return o.encode(integer.Int8, int64(v))
}

// AddShort appends 16 bits.
func (o *Output) AddShort(v int16) (err error) {
	return o.encode(integer.Int16, int64(v))
}

// AddChar appends a UTF-16 code unit.
func (o *Output) AddChar(v uint16) (err error) {
	return o.encode(integer.Char, int64(v))
}

// AddInt appends 32 bits.
func (o *Output) AddInt(v int32) (err error) {
	return o.encode(integer.Int32, int64(v))
}

// AddLong appends 64 bits.
func (o *Output) AddLong(v int64) (err error) {
	return o.encode(integer.Int64, v)
}

// AddDirectBoolean is AddBoolean into capacity reserved with
// EnsureExtraCapacity. It never grows the sink.
func (o *Output) AddDirectBoolean(b bool) (err error) {
	var v uint64
	if b {
		v = 1
	}

	return o.s.WriteBitsDirect(v, 1)
}

// AddDirectByte is AddByte without growth.
func (o *Output) AddDirectByte(v int8) (err error) {
	return o.encodeDirect(integer.Int8, int64(v))
}

// AddDirectShort is AddShort without growth.
func (o *Output) AddDirectShort(v int16) (err error) {
	return o.encodeDirect(integer.Int16, int64(v))
}

// AddDirectChar is AddChar without growth.
func (o *Output) AddDirectChar(v uint16) (err error) {
	return o.encodeDirect(integer.Char, int64(v))
}

// AddDirectInt is AddInt without growth.
func (o *Output) AddDirectInt(v int32) (err error) {
	return o.encodeDirect(integer.Int32, int64(v))
}

// AddDirectLong is AddLong without growth.
func (o *Output) AddDirectLong(v int64) (err error) {
	return o.encodeDirect(integer.Int64, v)
}

// AddNumber appends v in n bits, truncating it if it does not fit.
func (o *Output) AddNumber(v int64, n uint8, signed bool) (err error) {
	defer Error.WrapP(&err)

	if n == 0 {
		return fault.Argument.New("number width must be 1 to 64")
	}

	return o.encode(integer.Schema{Bits: n, Signed: signed}, v)
}

// AddUnsigned appends v in n bits as an unsigned number.
func (o *Output) AddUnsigned(v uint64, n uint8) (err error) {
	return o.AddNumber(int64(v), n, false)
}

// AddVarNumber appends v preceded by its own width, so the reader needs only
// the signedness.
func (o *Output) AddVarNumber(v int64, signed bool) (err error) {
	return o.encode(integer.Economical(signed), v)
}

// AddString appends an optional string with the Compact charset.
func (o *Output) AddString(s *string) (err error) {
	return text.NewEncoder(text.Compact, o.s).Encode(s)
}

// AddNativeString appends an optional string with the Native charset.
func (o *Output) AddNativeString(s *string) (err error) {
	return text.NewEncoder(text.Native, o.s).Encode(s)
}

// EnsureExtraCapacity reserves room for bits more bits, so that Direct
// writes of that many bits succeed.
func (o *Output) EnsureExtraCapacity(bits int) (err error) {
	return o.s.EnsureExtraCapacity(bits)
}

// Len returns the number of bits written.
func (o *Output) Len() int {
	return o.s.Len()
}

// Terminate pads and freezes the sink.
func (o *Output) Terminate() (err error) {
	return o.s.Terminate()
}
