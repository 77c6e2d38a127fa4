package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/leapstack-labs/st4conv/internal/convert"
	"github.com/leapstack-labs/st4conv/internal/export"
	"github.com/leapstack-labs/st4conv/internal/watch"
	"github.com/spf13/cobra"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <input.st4> <output>",
		Short: "Re-convert a file whenever it changes",
		Long: `Convert the input once, then watch it and convert again after every save.
Bursts of file events are coalesced using the debounce interval.

Conversion errors are reported and watching continues. Stop with Ctrl+C.`,
		Example: `  st4conv watch building.st4 building.json
  st4conv watch building.st4 building.xlsx --format xlsx --debounce 1s`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, args[0], args[1])
		},
	}

	cmd.Flags().Duration("debounce", 0, "Quiet period before converting (default from config)")
	cmd.Flags().Bool("allow-empty", false, "Accept files that produce no floors and no axes")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, input, target string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	format, err := export.ParseFormat(cmdCtx.Cfg.Format)
	if err != nil {
		return err
	}

	onChange := func(ctx context.Context) error {
		res, err := convert.ConvertFile(ctx, input, cmdCtx.PipelineOptions())
		if err != nil {
			r.Error(err.Error())
			return err
		}
		if err := writeProjectFile(target, res.Project, format, cmdCtx.ExportOptions()); err != nil {
			r.Error(err.Error())
			return err
		}
		r.Success(fmt.Sprintf("Wrote %s (%d diagnostics) in %s",
			target, len(res.Diagnostics), res.Duration.Round(time.Millisecond)))
		return nil
	}

	r.Muted(fmt.Sprintf("Watching %s", input))
	return watch.Watch(ctx, watch.Config{
		Path:       input,
		Debounce:   cmdCtx.Cfg.Watch.Debounce,
		RunOnStart: true,
		OnChange:   onChange,
		Logger:     cmdCtx.Logger,
	})
}
