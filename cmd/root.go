package cmd

import (
	"errors"
	"time"

	"github.com/gnolang/lessp/check"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultTimeout = 5 * time.Minute

// ErrIssuesFound is returned by Execute when a check reported issues.
var ErrIssuesFound = errors.New("issues found")

var (
	cfgFile string
	timeout time.Duration
	verbose bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:              "lessp [paths...]",
	Short:            "lessp - a parser and syntax checker for LESS stylesheets",
	SilenceUsage:     true,
	SilenceErrors:    true,
	TraverseChildren: true, // Prioritize subcommands
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		// lessp [path1 path2 ...] behaves like the check subcommand
		return checkCmd.RunE(cmd, args)
	},
}

func Execute() error {
	defer func() { _ = logger.Sync() }()
	return rootCmd.Execute()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return config.Build()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", check.DefaultConfigFile, "Path to the configuration file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", defaultTimeout, "Abort after this duration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}
