package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"code.cloudfoundry.org/bytefmt"
	"github.com/calebcase/oops"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/knokko/bits/source"
)

// dumpCmd represents the dump command.
var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Print the bits of a file",
	Long: `dump prints the bits of a file, most significant bit of byte 0 first,
in groups of --width bits, eight groups per line.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return oops.Trace(err)
		}

		if viper.GetBool("spew") {
			fmt.Fprint(cmd.OutOrStdout(), spew.Sdump(data))
		}

		err = dump(cmd.OutOrStdout(), data, viper.GetInt("width"))
		if err != nil {
			return oops.Trace(err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)

	dumpCmd.Flags().Int("width", 8, "bits per group (1 to 64)")
	dumpCmd.Flags().Bool("spew", false, "also print a hex dump")
}

const groupsPerLine = 8

func dump(w io.Writer, data []byte, width int) error {
	if width < 1 || width > 64 {
		return fmt.Errorf("width %d is not in 1 to 64", width)
	}

	total := len(data) * 8
	fmt.Fprintf(w, "%s, %d bits\n", bytefmt.ByteSize(uint64(len(data))), total)

	src := source.NewByteArray(data, source.WithLogger(logger))

	var line []string
	var start int
	for src.Position() < total {
		if len(line) == 0 {
			start = src.Position()
		}

		n := width
		if rest := total - src.Position(); rest < n {
			n = rest
		}

		v, err := src.ReadBits(uint8(n))
		if err != nil {
			return err
		}
		line = append(line, fmt.Sprintf("%0*b", n, v))

		if len(line) == groupsPerLine {
			fmt.Fprintf(w, "%8d: %s\n", start, strings.Join(line, " "))
			line = line[:0]
		}
	}
	if len(line) > 0 {
		fmt.Fprintf(w, "%8d: %s\n", start, strings.Join(line, " "))
	}

	return src.Terminate()
}
