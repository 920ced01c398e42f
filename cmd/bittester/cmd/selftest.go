package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"code.cloudfoundry.org/bytefmt"
	"github.com/calebcase/oops"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/knokko/bits"
	"github.com/knokko/bits/internal/scenario"
	"github.com/knokko/bits/sink"
	"github.com/knokko/bits/source"
)

// selftestCmd represents the selftest command.
var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Write and verify the reference data through every sink and source",
	Long: `selftest writes the reference data with the boolean array, byte array and
stream sinks. Every export is read back with the boolean array, byte array
and stream sources, and the stream sink output is written to a file and
read back from disk.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		file := viper.GetString("file")
		if file == "" {
			file = filepath.Join(os.TempDir(), "bittester.bin")
			defer func() { _ = os.Remove(file) }()
		}

		err := selftest(file, viper.GetInt("capacity"))
		if err != nil {
			return oops.Trace(err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "ok")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(selftestCmd)

	selftestCmd.Flags().String("file", "", "file for the disk round trip (default: temp dir)")
	selftestCmd.Flags().Int("capacity", 0, "initial capacity of the in-memory sinks")
}

// memorySink is an in-memory sink that can export its content.
type memorySink interface {
	sink.Sink
	Booleans() []bool
	Bytes() []byte
}

func selftest(file string, capacity int) error {
	memory := []struct {
		name string
		sink memorySink
	}{
		// capacity is in bits for the boolean sink and in bytes for the
		// byte sink.
		{"boolean array", sink.NewBooleanArray(capacity*8, sink.WithLogger(logger))},
		{"byte array", sink.NewByteArray(capacity, sink.WithLogger(logger))},
	}

	var reference []byte
	for _, m := range memory {
		out := bits.NewOutput(m.sink)

		err := scenario.Write(out)
		if err != nil {
			return err
		}

		err = out.Terminate()
		if err != nil {
			return err
		}

		err = checkExports(m.name, m.sink)
		if err != nil {
			return err
		}

		if reference == nil {
			reference = m.sink.Bytes()
		} else if !bytes.Equal(reference, m.sink.Bytes()) {
			return fmt.Errorf("%s: bytes differ from %s", m.name, memory[0].name)
		}
	}

	err := writeFile(file)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	if !bytes.Equal(reference, data) {
		return fmt.Errorf("stream: %s differs from the byte array export", file)
	}

	err = checkFile(file)
	if err != nil {
		return err
	}

	logger.Info("file round trip",
		zap.String("file", file),
		zap.String("size", bytefmt.ByteSize(uint64(len(data)))),
	)

	return nil
}

func checkExports(name string, s memorySink) error {
	if s.Len() != scenario.Bits {
		return fmt.Errorf("%s: wrote %d bits, want %d", name, s.Len(), scenario.Bits)
	}

	booleans, data := s.Booleans(), s.Bytes()
	if len(booleans) != scenario.Bits {
		return fmt.Errorf("%s: exported %d booleans, want %d", name, len(booleans), scenario.Bits)
	}
	if len(data) != scenario.Bytes {
		return fmt.Errorf("%s: exported %d bytes, want %d", name, len(data), scenario.Bytes)
	}

	sources := []struct {
		name   string
		source source.Source
	}{
		{"boolean array", source.NewBooleanArray(booleans, source.WithLogger(logger))},
		{"byte array", source.NewByteArray(data, source.WithLogger(logger))},
		{"stream", source.NewStream(bytes.NewReader(data), source.WithLogger(logger))},
	}

	for _, src := range sources {
		err := check(name, src.name, src.source)
		if err != nil {
			return err
		}
	}

	return nil
}

func check(sinkName, sourceName string, src source.Source) error {
	in := bits.NewInput(src)

	err := scenario.Check(in)
	if err != nil {
		return fmt.Errorf("%s -> %s: %w", sinkName, sourceName, err)
	}

	err = in.Terminate()
	if err != nil {
		return err
	}

	logger.Info("checked",
		zap.String("sink", sinkName),
		zap.String("source", sourceName),
		zap.Int("bits", scenario.Bits),
	)

	return nil
}

func checkFile(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	// Terminate closes f on success; this covers a failed check.
	defer func() { _ = f.Close() }()

	return check("file", "stream", source.NewStream(f, source.WithLogger(logger)))
}

func writeFile(file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}

	out := bits.NewOutput(sink.NewStream(f, sink.WithLogger(logger)))

	err = scenario.Write(out)
	if err != nil {
		_ = f.Close()

		return err
	}

	// Terminate flushes and closes f.
	return out.Terminate()
}
