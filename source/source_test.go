package source_test

import (
	"bytes"
	"testing"

	"github.com/calebcase/oops"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/knokko/bits/address"
	"github.com/knokko/bits/fault"
	"github.com/knokko/bits/source"
)

var data = []byte{0b_1100_1111, 0b_0101_0101, 0xde, 0xad, 0xbe, 0xef}

func newSources(t *testing.T, data []byte) map[string]source.Source {
	logger := zaptest.NewLogger(t, zaptest.Level(zap.DebugLevel))

	return map[string]source.Source{
		"booleans": source.NewBooleanArray(address.BytesToBools(data, len(data)*8), source.WithLogger(logger)),
		"bytes":    source.NewByteArray(data, source.WithLogger(logger)),
		"stream":   source.NewStream(bytes.NewReader(data), source.WithLogger(logger)),
	}
}

func TestRead(t *testing.T) {
	type TC struct {
		Width uint8
		Value uint64
		Mark  error
	}

	tcs := []TC{
		{Width: 4, Value: 0b_1100, Mark: oops.New("unexpected")},
		{Width: 3, Value: 0b_111, Mark: oops.New("unexpected")},
		{Width: 3, Value: 0b_101, Mark: oops.New("unexpected")},
		{Width: 6, Value: 0b_01_0101, Mark: oops.New("unexpected")},
		{Width: 1, Value: 1, Mark: oops.New("unexpected")},
		{Width: 0, Value: 0, Mark: oops.New("unexpected")},
		{Width: 31, Value: 0xdeadbeef & 0x7fff_ffff, Mark: oops.New("unexpected")},
	}

	for name, s := range newSources(t, data) {
		t.Run(name, func(t *testing.T) {
			pos := 0
			for _, tc := range tcs {
				v, err := s.ReadBits(tc.Width)
				require.NoError(t, err, tc.Mark)
				require.Equal(t, tc.Value, v, tc.Mark)

				pos += int(tc.Width)
				require.Equal(t, pos, s.Position(), tc.Mark)
			}

			_, err := s.ReadBits(2)
			require.Error(t, err)
			require.True(t, fault.EndOfData.Has(err), "%+v", err)
			require.True(t, source.Error.Has(err))

			require.NoError(t, s.Terminate())

			_, err = s.ReadBool()
			require.True(t, fault.Terminated.Has(err))

			err = s.Terminate()
			require.True(t, fault.Terminated.Has(err))
		})
	}
}

func TestReadBool(t *testing.T) {
	for name, s := range newSources(t, []byte{0b_1010_0000}) {
		t.Run(name, func(t *testing.T) {
			expected := []bool{true, false, true, false, false, false, false, false}
			for _, e := range expected {
				b, err := s.ReadBool()
				require.NoError(t, err)
				require.Equal(t, e, b)
			}

			_, err := s.ReadBool()
			require.True(t, fault.EndOfData.Has(err))
		})
	}
}

func TestEmpty(t *testing.T) {
	for name, s := range newSources(t, nil) {
		t.Run(name, func(t *testing.T) {
			_, err := s.ReadBits(1)
			require.True(t, fault.EndOfData.Has(err))
			require.Equal(t, 0, s.Position())
		})
	}
}

func TestReadTooWide(t *testing.T) {
	for name, s := range newSources(t, make([]byte, 16)) {
		t.Run(name, func(t *testing.T) {
			_, err := s.ReadBits(65)
			require.True(t, fault.Argument.Has(err))
		})
	}
}

func TestOverAllocated(t *testing.T) {
	backing := make([]bool, 80)
	address.PutBools(backing, 0, 1<<15, 16)

	s := source.NewBooleanArray(backing)

	v, err := s.ReadBits(16)
	require.NoError(t, err)
	require.Equal(t, uint64(1<<15), v)

	v, err = s.ReadBits(64)
	require.NoError(t, err)
	require.Equal(t, uint64(0), v)

	_, err = s.ReadBool()
	require.True(t, fault.EndOfData.Has(err))
}
