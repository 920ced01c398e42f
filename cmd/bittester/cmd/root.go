package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/calebcase/oops"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Version is the version of the binary.
var Version = "0.0.0"

var (
	cfgFile string
	logger  = zap.NewNop()
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "bittester",
	Short: "Exercise and inspect bit serialized data",
	Long: `bittester writes a fixed mix of values through every kind of bit sink,
reads it back through every kind of bit source and reports the first
difference. It can also dump the bits of a file.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	rootCmd.Version = Version

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	cobra.CheckErr(viper.BindPFlags(rootCmd.PersistentFlags()))
}

// setup loads the configuration and builds the logger. Flags win over
// BITTESTER_* environment variables, which win over the config file.
func setup(cmd *cobra.Command, args []string) (err error) {
	viper.SetEnvPrefix("bittester")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	err = viper.BindPFlags(cmd.Flags())
	if err != nil {
		return oops.Trace(err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)

		err = viper.ReadInConfig()
		if err != nil {
			return oops.Trace(err)
		}
	}

	level, err := zapcore.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		return oops.Trace(err)
	}

	logger, err = newLogger(level)
	if err != nil {
		return oops.Trace(err)
	}

	if cfgFile != "" {
		logger.Debug("loaded config", zap.String("file", viper.ConfigFileUsed()))
	}

	return nil
}

func newLogger(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.Config{
		Level:    zap.NewAtomicLevelAt(level),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "T",
			LevelKey:       "L",
			NameKey:        "N",
			MessageKey:     "M",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize zap logger: %w", err)
	}

	return logger, nil
}
