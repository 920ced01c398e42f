// Package scenario holds a fixed sequence of mixed values used to exercise
// every sink and source end to end.
package scenario

import (
	"fmt"
	"math"
	"reflect"

	"github.com/zeebo/errs"

	"github.com/knokko/bits"
)

// Error is the class of errors returned by this package.
var Error = errs.Class("scenario")

const (
	// Bits is the number of bits Write produces.
	Bits = 576

	// Bytes is Bits rounded up to whole bytes.
	Bytes = 72
)

func ptr(s string) *string {
	return &s
}

type step struct {
	name  string
	write func(out *bits.Output) error
	read  func(in *bits.Input) (interface{}, error)
	want  interface{}
}

func boolean(b bool) step {
	return step{
		name:  "boolean",
		write: func(out *bits.Output) error { return out.AddBoolean(b) },
		read:  func(in *bits.Input) (interface{}, error) { return in.ReadBoolean() },
		want:  b,
	}
}

func booleans(bs ...bool) step {
	return step{
		name:  "booleans",
		write: func(out *bits.Output) error { return out.AddBooleans(bs...) },
		read:  func(in *bits.Input) (interface{}, error) { return in.ReadBooleans(len(bs)) },
		want:  bs,
	}
}

func byte8(v int8) step {
	return step{
		name:  "byte",
		write: func(out *bits.Output) error { return out.AddByte(v) },
		read:  func(in *bits.Input) (interface{}, error) { return in.ReadInt8() },
		want:  v,
	}
}

func short(v int16) step {
	return step{
		name:  "short",
		write: func(out *bits.Output) error { return out.AddShort(v) },
		read:  func(in *bits.Input) (interface{}, error) { return in.ReadShort() },
		want:  v,
	}
}

func char(v uint16) step {
	return step{
		name:  "char",
		write: func(out *bits.Output) error { return out.AddChar(v) },
		read:  func(in *bits.Input) (interface{}, error) { return in.ReadChar() },
		want:  v,
	}
}

func int32s(v int32) step {
	return step{
		name:  "int",
		write: func(out *bits.Output) error { return out.AddInt(v) },
		read:  func(in *bits.Input) (interface{}, error) { return in.ReadInt() },
		want:  v,
	}
}

func long(v int64) step {
	return step{
		name:  "long",
		write: func(out *bits.Output) error { return out.AddLong(v) },
		read:  func(in *bits.Input) (interface{}, error) { return in.ReadLong() },
		want:  v,
	}
}

func number(v int64, n uint8, signed bool) step {
	return step{
		name:  fmt.Sprintf("number(%d bits)", n),
		write: func(out *bits.Output) error { return out.AddNumber(v, n, signed) },
		read:  func(in *bits.Input) (interface{}, error) { return in.ReadNumber(n, signed) },
		want:  v,
	}
}

func varNumber(v int64, signed bool) step {
	return step{
		name:  "var number",
		write: func(out *bits.Output) error { return out.AddVarNumber(v, signed) },
		read:  func(in *bits.Input) (interface{}, error) { return in.ReadVarNumber(signed) },
		want:  v,
	}
}

func compact(s *string) step {
	return step{
		name:  "string",
		write: func(out *bits.Output) error { return out.AddString(s) },
		read:  func(in *bits.Input) (interface{}, error) { return in.ReadString() },
		want:  s,
	}
}

func native(s *string) step {
	return step{
		name:  "native string",
		write: func(out *bits.Output) error { return out.AddNativeString(s) },
		read:  func(in *bits.Input) (interface{}, error) { return in.ReadNativeString() },
		want:  s,
	}
}

var steps = []step{
	booleans(false, true, true, false, true, false),
	int32s(394738457),
	byte8(math.MinInt8),
	short(math.MaxInt16),
	char('>'),
	boolean(true),
	native(nil),
	char(math.MaxUint16),
	number(-15, 5, true),
	byte8(math.MaxInt8),
	compact(ptr("Hello World!")),
	varNumber(23456678, false),
	short(math.MinInt16),
	native(ptr("Hey Go...")),
	int32s(math.MinInt32),
	long(math.MaxInt64),
	number(7, 3, false),
	compact(nil),
	long(math.MinInt64),
	char(0),
	number(7, 4, true),
	int32s(math.MaxInt32),
}

// Write appends the scenario to out. It does not terminate out.
func Write(out *bits.Output) (err error) {
	defer Error.WrapP(&err)

	for i, s := range steps {
		err = s.write(out)
		if err != nil {
			return fmt.Errorf("step %d (%s): %w", i, s.name, err)
		}
	}

	return nil
}

// Check reads the scenario from in and reports the first value that differs
// from what Write wrote.
func Check(in *bits.Input) (err error) {
	defer Error.WrapP(&err)

	for i, s := range steps {
		got, err := s.read(in)
		if err != nil {
			return fmt.Errorf("step %d (%s): %w", i, s.name, err)
		}

		if !reflect.DeepEqual(got, s.want) {
			return Error.New(
				"step %d (%s) at bit %d: got %s, want %s",
				i, s.name, in.Position(), show(got), show(s.want),
			)
		}
	}

	return nil
}

func show(v interface{}) string {
	if s, ok := v.(*string); ok {
		if s == nil {
			return "<nil>"
		}

		return fmt.Sprintf("%q", *s)
	}

	return fmt.Sprintf("%v", v)
}
