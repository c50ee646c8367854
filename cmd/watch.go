package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnolang/lessp/check"
	"github.com/gnolang/lessp/internal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Re-check stylesheets whenever they change",
	Long: `Watches the given directories (the current one by default) and
reports the issues of every stylesheet that is written.
Example) lessp watch styles/`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			args = []string{"."}
		}

		engine, err := check.New(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to initialize engine: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runWatch(ctx, logger, engine, args, cmd.OutOrStdout())
	},
}

func runWatch(ctx context.Context, logger *zap.Logger, engine *internal.Engine, dirs []string, out io.Writer) error {
	watcher, err := internal.NewWatcher(engine, logger, reportOutcome(logger, out))
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dirs...); err != nil {
		return err
	}
	logger.Info("Watching", zap.Strings("dirs", dirs))

	err = watcher.Start(ctx)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func reportOutcome(logger *zap.Logger, out io.Writer) internal.ReportFunc {
	return func(outcome *internal.Outcome) {
		if len(outcome.Issues) == 0 {
			fmt.Fprintf(out, "%s: ok\n", outcome.Filename)
			return
		}
		if err := printIssues(logger, out, outcome.Issues, nil, false, ""); err != nil {
			logger.Error("Error printing issues", zap.Error(err))
		}
	}
}
