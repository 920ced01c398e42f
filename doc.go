// Package bits serializes values into a bit-granular stream.
//
// An Output appends typed values to a sink.Sink and an Input reads them back
// from a source.Source:
//
//	s := sink.NewByteArray(0)
//	out := bits.NewOutput(s)
//	out.AddBooleans(false, true, true)
//	out.AddInt(394738457)
//	out.AddNumber(-15, 5, true)
//	out.AddString(&greeting)
//	out.Terminate()
//
//	in := bits.NewInput(source.NewByteArray(s.Bytes()))
//	in.ReadBooleans(3)
//	in.ReadInt()
//	in.ReadNumber(5, true)
//	in.ReadString()
//
// Wire format
//
// Values carry no type or width tags. The reader must issue the same
// sequence of typed reads, with the same widths and charsets, as the writer
// issued writes; anything else yields garbage or an error. Bits are stored
// most significant first, byte 0 first, and the final byte is padded with
// zero bits.
//
//	| Method          | Bits                                     |
//	|-----------------|------------------------------------------|
//	| Boolean         | 1                                        |
//	| Byte            | 8, two's complement                      |
//	| Short           | 16, two's complement                     |
//	| Char            | 16, UTF-16 code unit                     |
//	| Int             | 32, two's complement                     |
//	| Long            | 64, two's complement                     |
//	| Number          | n, two's complement or plain binary      |
//	| VarNumber       | 6 bit width-1, then width bits           |
//	| String          | presence bit, see package text (Compact) |
//	| NativeString    | presence bit, see package text (Native)  |
//
// Values wider than their field are truncated to the low bits.
package bits
