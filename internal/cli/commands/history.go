package commands

import (
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/st4conv/internal/cli/output"
	"github.com/leapstack-labs/st4conv/internal/export"
	"github.com/leapstack-labs/st4conv/internal/store"
	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List conversions saved in the store",
		Long: `List conversions saved with --store, newest first.

Use "history show <id>" to export a saved model again.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of conversions to list (0 for all)")
	cmd.AddCommand(newHistoryShowCommand())

	return cmd
}

func runHistory(cmd *cobra.Command, limit int) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	ctx := cmd.Context()

	s, err := cmdCtx.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	convs, err := s.ListConversions(ctx, limit)
	if err != nil {
		return err
	}

	mode := r.EffectiveMode()
	if mode == output.ModeJSON {
		if convs == nil {
			convs = []store.Conversion{}
		}
		return r.JSON(convs)
	}
	if len(convs) == 0 {
		r.Muted("No conversions saved in " + cmdCtx.Cfg.StorePath)
		return nil
	}

	markdown := mode == output.ModeMarkdown
	t := newTable(r, markdown)
	t.AppendHeader(table.Row{"ID", "File", "Title", "Saved", "Floors", "Columns", "Beams", "Diagnostics"})
	for _, c := range convs {
		t.AppendRow(table.Row{
			c.ID, c.FileName, c.Title, c.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			c.Stats.Floors, c.Stats.Columns, c.Stats.Beams, c.Diagnostics,
		})
	}
	render(t, markdown)
	return nil
}

func newHistoryShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id> [output]",
		Short: "Export a saved conversion",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)
			ctx := cmd.Context()

			format, err := export.ParseFormat(cmdCtx.Cfg.Format)
			if err != nil {
				return err
			}
			if len(args) < 2 && format.Binary() {
				return fmt.Errorf("%s output needs an output file", format)
			}

			s, err := cmdCtx.OpenStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			p, err := s.LoadProject(ctx, args[0])
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no conversion with id %s", args[0])
			}
			if err != nil {
				return err
			}

			if len(args) == 2 {
				return writeProjectFile(args[1], p, format, cmdCtx.ExportOptions())
			}
			return export.Write(cmdCtx.Renderer.Writer(), p, format, cmdCtx.ExportOptions())
		},
	}
}
