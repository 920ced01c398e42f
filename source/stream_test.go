package source_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/icza/mighty"

	"github.com/knokko/bits/fault"
	"github.com/knokko/bits/source"
)

func TestStream(t *testing.T) {
	eq, expEq := mighty.EqExpEq(t)

	s := source.NewStream(bytes.NewBuffer([]byte{0x8f, 0x55}))

	expEq(uint64(0x08))(s.ReadBits(4))
	expEq(uint64(0x07))(s.ReadBits(3))
	expEq(uint64(0x05))(s.ReadBits(3))
	eq(10, s.Position())
	expEq(uint64(0x15))(s.ReadBits(6))
	eq(16, s.Position())

	_, err := s.ReadBits(1)
	eq(true, fault.EndOfData.Has(err))
	eq(16, s.Position())
}

// slowReader hands out a single byte per Read call.
type slowReader struct {
	data  []byte
	calls int
}

func (r *slowReader) Read(p []byte) (int, error) {
	r.calls++
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}

	p[0] = r.data[0]
	r.data = r.data[1:]

	return 1, nil
}

func (r *slowReader) Close() error {
	r.data = nil
	return nil
}

func TestStreamPullsOnDemand(t *testing.T) {
	eq, expEq := mighty.EqExpEq(t)

	r := &slowReader{data: []byte{0xde, 0xad, 0xbe, 0xef, 0x01}}
	s := source.NewStream(r)

	eq(0, r.calls)

	expEq(uint64(0xdeadbeef))(s.ReadBits(32))
	eq(true, r.calls <= 4)
	eq(1, len(r.data))

	expEq(uint64(0))(s.ReadBits(7))
	eq(true, r.calls <= 5)
	eq(0, len(r.data))

	calls := r.calls
	expEq(true)(s.ReadBool())
	eq(calls, r.calls)

	_, err := s.ReadBool()
	eq(true, fault.EndOfData.Has(err))
	eq(true, r.calls > calls)

	eq(nil, s.Terminate())
	eq(0, len(r.data))
}

func TestStreamPrematureEnd(t *testing.T) {
	eq := mighty.Eq(t)

	s := source.NewStream(bytes.NewReader([]byte{0xff}))

	_, err := s.ReadBits(12)
	eq(true, fault.EndOfData.Has(err))
}

type brokenReader struct{}

func (brokenReader) Read(p []byte) (int, error) {
	return 0, errors.New("cable unplugged")
}

func TestStreamFailure(t *testing.T) {
	eq := mighty.Eq(t)

	s := source.NewStream(brokenReader{})

	_, err := s.ReadBits(8)
	eq(true, fault.StreamIO.Has(err))
	eq(false, fault.EndOfData.Has(err))

	_, err = s.ReadBool()
	eq(true, fault.StreamIO.Has(err))
}
