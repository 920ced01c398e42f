package bits

import (
	"github.com/knokko/bits/fault"
	"github.com/knokko/bits/integer"
	"github.com/knokko/bits/source"
	"github.com/knokko/bits/text"
)

// Input reads typed values from a source, mirroring Output.
type Input struct {
	s source.Source
}

// NewInput returns an Input reading from s.
func NewInput(s source.Source) *Input {
	return &Input{
		s: s,
	}
}

func (in *Input) decode(schema integer.Schema) (value int64, err error) {
	return integer.NewDecoder(schema, in.s).Decode()
}

// ReadBoolean reads one bit.
func (in *Input) ReadBoolean() (b bool, err error) {
	return in.s.ReadBool()
}

// ReadBooleans reads n bits.
func (in *Input) ReadBooleans(n int) (bs []bool, err error) {
	bs = make([]bool, 0, n)
	for i := 0; i < n; i++ {
		b, err := in.s.ReadBool()
		if err != nil {
			return nil, err
		}
		bs = append(bs, b)
	}

	return bs, nil
}

// ReadInt8 reads 8 bits written by AddByte.
func (in *Input) ReadInt8() (v int8, err error) {
	value, err := in.decode(integer.Int8)

	return int8(value), err
}

// ReadShort reads 16 bits.
func (in *Input) ReadShort() (v int16, err error) {
	value, err := in.decode(integer.Int16)

	return int16(value), err
}

// ReadChar reads a UTF-16 code unit.
func (in *Input) ReadChar() (v uint16, err error) {
	value, err := in.decode(integer.Char)

	return uint16(value), err
}

// ReadInt reads 32 bits.
func (in *Input) ReadInt() (v int32, err error) {
	value, err := in.decode(integer.Int32)

	return int32(value), err
}

// ReadLong reads 64 bits.
func (in *Input) ReadLong() (v int64, err error) {
	return in.decode(integer.Int64)
}

// ReadNumber reads an n bit number written by AddNumber.
func (in *Input) ReadNumber(n uint8, signed bool) (v int64, err error) {
	defer Error.WrapP(&err)

	if n == 0 {
		return 0, fault.Argument.New("number width must be 1 to 64")
	}

	return in.decode(integer.Schema{Bits: n, Signed: signed})
}

// ReadUnsigned reads an n bit number written by AddUnsigned.
func (in *Input) ReadUnsigned(n uint8) (v uint64, err error) {
	value, err := in.ReadNumber(n, false)

	return uint64(value), err
}

// ReadVarNumber reads a number written by AddVarNumber.
func (in *Input) ReadVarNumber(signed bool) (v int64, err error) {
	return in.decode(integer.Economical(signed))
}

// ReadString reads a string written by AddString.
func (in *Input) ReadString() (s *string, err error) {
	return text.NewDecoder(text.Compact, in.s).Decode()
}

// ReadNativeString reads a string written by AddNativeString.
func (in *Input) ReadNativeString() (s *string, err error) {
	return text.NewDecoder(text.Native, in.s).Decode()
}

// Position returns the number of bits read.
func (in *Input) Position() int {
	return in.s.Position()
}

// Terminate releases the source.
func (in *Input) Terminate() (err error) {
	return in.s.Terminate()
}
