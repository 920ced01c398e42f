// Package address maps values to and from sequences of bits.
//
// All functions use the same order: the most significant bit of a field comes
// first, and within a byte slice bit 0 of the stream is the most significant
// bit of byte 0.
//
//	PutBits(buf, 3, 0b_1_0110, 5)
//
//	 byte 0          byte 1
//	| . . . 1 0 1 1 0 | . . . . . . . . |
//	        ^ offset 3
//
// A field may start at any bit offset and may cross any number of byte
// boundaries. The functions do not check bounds; callers reserve the space.
package address

import "math/bits"

// Mask returns a value with the n low bits set.
func Mask(n uint8) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}

	return uint64(1)<<n - 1
}

// Truncate returns the n low bits of the two's complement form of v.
func Truncate(v int64, n uint8) uint64 {
	return uint64(v) & Mask(n)
}

// SignExtend interprets the n low bits of v as a two's complement number.
func SignExtend(v uint64, n uint8) int64 {
	if n == 0 {
		return 0
	}
	if n >= 64 {
		return int64(v)
	}

	shift := 64 - n

	return int64(v<<shift) >> shift
}

// Width returns the number of bits needed to store v unsigned. Zero still
// occupies one bit.
func Width(v uint64) uint8 {
	if v == 0 {
		return 1
	}

	return uint8(bits.Len64(v))
}

// SignedWidth returns the number of bits needed to store v in two's
// complement, sign bit included.
func SignedWidth(v int64) uint8 {
	if v < 0 {
		return uint8(bits.Len64(uint64(^v))) + 1
	}

	return uint8(bits.Len64(uint64(v))) + 1
}

// PutBools stores the n low bits of v in dst starting at off.
func PutBools(dst []bool, off int, v uint64, n uint8) {
	for i := 0; i < int(n); i++ {
		dst[off+i] = v>>(int(n)-1-i)&1 == 1
	}
}

// Bools reads n bits from src starting at off.
func Bools(src []bool, off int, n uint8) (v uint64) {
	for i := 0; i < int(n); i++ {
		v <<= 1
		if src[off+i] {
			v |= 1
		}
	}

	return v
}

// PutBits stores the n low bits of v in dst starting at bit off. Bits of dst
// outside the field are preserved.
func PutBits(dst []byte, off int, v uint64, n uint8) {
	v &= Mask(n)

	for n > 0 {
		idx := off >> 3
		free := 8 - uint8(off&7)

		if n < free {
			// The field ends inside this byte.
			shift := free - n
			mask := byte(1<<n-1) << shift
			dst[idx] = dst[idx]&^mask | byte(v)<<shift

			return
		}

		// Fill the rest of this byte with the top bits of the field.
		n -= free
		mask := byte(1<<free - 1)
		dst[idx] = dst[idx]&^mask | byte(v>>n)&mask

		off += int(free)
		v &= Mask(n)
	}
}

// Bits reads n bits from src starting at bit off.
func Bits(src []byte, off int, n uint8) (v uint64) {
	for n > 0 {
		idx := off >> 3
		free := 8 - uint8(off&7)
		b := src[idx] & byte(1<<free-1)

		if n < free {
			return v<<n | uint64(b>>(free-n))
		}

		v = v<<free | uint64(b)
		n -= free
		off += int(free)
	}

	return v
}

// ToBinary returns the n low bits of v.
func ToBinary(v uint64, n uint8) []bool {
	out := make([]bool, n)
	PutBools(out, 0, v, n)

	return out
}

// FromBinary assembles up to 64 bits into a value.
func FromBinary(bits ...bool) uint64 {
	return Bools(bits, 0, uint8(len(bits)))
}

// ByteToBinary returns the 8 bits of b.
func ByteToBinary(b int8) []bool {
	return ToBinary(uint64(uint8(b)), 8)
}

// ByteFromBinary assembles a byte from its first 8 bits.
func ByteFromBinary(bits ...bool) int8 {
	return int8(Bools(bits, 0, 8))
}

// BytesToBools expands the first n bits of b.
func BytesToBools(b []byte, n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = b[i>>3]>>(7-i&7)&1 == 1
	}

	return out
}

// BoolsToBytes packs b into bytes, padding the last byte with zero bits.
func BoolsToBytes(b []bool) []byte {
	out := make([]byte, (len(b)+7)/8)
	for i, bit := range b {
		if bit {
			out[i>>3] |= 1 << (7 - i&7)
		}
	}

	return out
}
