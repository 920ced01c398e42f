// Package text encodes optional strings.
//
// Every string starts with a presence bit. A nil string is that single false
// bit. A present string continues with its length in code units, an optional
// unit width header, and the units themselves:
//
//	| 1 | length | width-1 (4 bits, adaptive charsets only) | unit | unit | ... |
//
// What a code unit is, how the length is stored and how wide the units are
// is decided by a Charset. Two are provided:
//
//	Compact  UTF-16 units, each as wide as the widest unit of the string;
//	         economical length. ASCII text costs 7 bits per character.
//	         Invalid UTF-8 is replaced by U+FFFD.
//	Native   UTF-8 bytes, 8 bits each; 32-bit length. Any Go string,
//	         including invalid UTF-8, round-trips unchanged.
//
// Data written with one charset cannot be read with the other.
package text

import (
	"unicode/utf16"

	"github.com/zeebo/errs"

	"github.com/knokko/bits/address"
	"github.com/knokko/bits/fault"
	"github.com/knokko/bits/integer"
)

// Error is the class of errors returned by this package.
var Error = errs.Class("text")

// headerBits holds width-1 for adaptive charsets; units are at most 16 bits.
const headerBits = 4

// Charset converts strings to and from code units.
type Charset interface {
	// Split returns the code units of s.
	Split(s string) []uint64

	// Join builds a string from code units.
	Join(units []uint64) string

	// UnitBits returns the width of every unit, or 0 if the width is chosen
	// per string and written in a header.
	UnitBits() uint8

	// Length returns the schema of the length field.
	Length() integer.Schema
}

// Writer accepts bits.
type Writer = integer.Writer

// Reader produces bits.
type Reader = integer.Reader

// Encoder is an encoder.
type Encoder struct {
	charset Charset
	w       Writer
}

// NewEncoder returns a new encoder.
func NewEncoder(charset Charset, w Writer) *Encoder {
	return &Encoder{
		charset: charset,
		w:       w,
	}
}

// Encode writes s. A nil s is written as a single false bit.
func (e *Encoder) Encode(s *string) (err error) {
	defer Error.WrapP(&err)

	if s == nil {
		return e.w.WriteBits(0, 1)
	}

	units := e.charset.Split(*s)

	schema := e.charset.Length()
	if schema.Bits != 0 && uint64(len(units)) > address.Mask(schema.Bits) {
		return fault.Overflow.New(
			"string of %d units exceeds %d bit length field",
			len(units),
			schema.Bits,
		)
	}

	err = e.w.WriteBits(1, 1)
	if err != nil {
		return err
	}

	err = integer.NewEncoder(schema, e.w).Encode(int64(len(units)))
	if err != nil {
		return err
	}

	width := e.charset.UnitBits()
	if width == 0 && len(units) > 0 {
		var widest uint64
		for _, u := range units {
			widest |= u
		}
		width = address.Width(widest)

		err = e.w.WriteBits(uint64(width-1), headerBits)
		if err != nil {
			return err
		}
	}

	for _, u := range units {
		err = e.w.WriteBits(u, width)
		if err != nil {
			return err
		}
	}

	return nil
}

// Decoder is a decoder.
type Decoder struct {
	charset Charset
	r       Reader
}

// NewDecoder returns a new decoder.
func NewDecoder(charset Charset, r Reader) *Decoder {
	return &Decoder{
		charset: charset,
		r:       r,
	}
}

// Decode reads a string written by an Encoder with the same charset.
func (d *Decoder) Decode() (s *string, err error) {
	defer Error.WrapP(&err)

	present, err := d.r.ReadBits(1)
	if err != nil {
		return nil, err
	}
	if present == 0 {
		return nil, nil
	}

	length, err := integer.NewDecoder(d.charset.Length(), d.r).Decode()
	if err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, fault.Overflow.New("negative string length %d", length)
	}

	width := d.charset.UnitBits()
	if width == 0 && length > 0 {
		header, err := d.r.ReadBits(headerBits)
		if err != nil {
			return nil, err
		}
		width = uint8(header) + 1
	}

	// The length comes from the stream; grow as units arrive rather than
	// trusting it for the allocation.
	var units []uint64
	for i := int64(0); i < length; i++ {
		u, err := d.r.ReadBits(width)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}

	str := d.charset.Join(units)

	return &str, nil
}

type compact struct{}

// Compact is the space saving charset; see the package documentation.
var Compact Charset = compact{}

func (compact) Split(s string) []uint64 {
	encoded := utf16.Encode([]rune(s))

	units := make([]uint64, len(encoded))
	for i, u := range encoded {
		units[i] = uint64(u)
	}

	return units
}

func (compact) Join(units []uint64) string {
	encoded := make([]uint16, len(units))
	for i, u := range units {
		encoded[i] = uint16(u)
	}

	return string(utf16.Decode(encoded))
}

func (compact) UnitBits() uint8 {
	return 0
}

func (compact) Length() integer.Schema {
	return integer.Economical(false)
}

type native struct{}

// Native is the charset matching Go's own string representation.
var Native Charset = native{}

func (native) Split(s string) []uint64 {
	units := make([]uint64, len(s))
	for i := 0; i < len(s); i++ {
		units[i] = uint64(s[i])
	}

	return units
}

func (native) Join(units []uint64) string {
	b := make([]byte, len(units))
	for i, u := range units {
		b[i] = byte(u)
	}

	return string(b)
}

func (native) UnitBits() uint8 {
	return 8
}

func (native) Length() integer.Schema {
	return integer.Length
}
