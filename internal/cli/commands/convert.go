package commands

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/st4conv/internal/convert"
	"github.com/leapstack-labs/st4conv/internal/export"
	"github.com/spf13/cobra"
)

// ConvertOptions holds options for the convert command.
type ConvertOptions struct {
	Store bool
}

// NewConvertCommand creates the convert command.
func NewConvertCommand() *cobra.Command {
	opts := &ConvertOptions{}

	cmd := &cobra.Command{
		Use:   "convert <input.st4> [output]",
		Short: "Convert an ST4 file into a structural model",
		Long: `Convert an ST4 export into a structural model of floors, axes, columns,
beams, panels, slabs and foundation slabs.

The model is written to the output path when given, to <output-dir>/<name>.<ext>
when --output-dir is set, and to stdout otherwise. Spreadsheet output (xlsx)
always needs a file.

Malformed lines are skipped and reported as warnings on stderr.`,
		Example: `  # Convert to JSON on stdout
  st4conv convert building.st4

  # Convert a Turkish-locale export to YAML
  st4conv convert building.st4 building.yaml --format yaml --encoding windows-1254

  # Write schedules to a spreadsheet and keep a copy in the local store
  st4conv convert building.st4 building.xlsx --format xlsx --store`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Store, "store", false, "Also save the model in the SQLite store")
	cmd.Flags().Bool("allow-empty", false, "Accept files that produce no floors and no axes")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string, opts *ConvertOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer
	ctx := cmd.Context()

	format, err := export.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	explicit := ""
	if len(args) > 1 {
		explicit = args[1]
	}
	toStdout := explicit == "" && cfg.OutputDir == ""
	if toStdout && format.Binary() {
		return fmt.Errorf("%s output needs an output file or --output-dir", format)
	}

	res, err := convert.ConvertFile(ctx, args[0], cmdCtx.PipelineOptions())
	if err != nil {
		if errors.Is(err, convert.ErrEmptyModel) {
			return fmt.Errorf("%s: %w (use --allow-empty to accept it)", args[0], err)
		}
		return err
	}

	if toStdout {
		if err := export.Write(r.Writer(), res.Project, format, cmdCtx.ExportOptions()); err != nil {
			return fmt.Errorf("failed to write model: %w", err)
		}
	} else {
		path := outputPath(args[0], explicit, cfg.OutputDir, format)
		if err := writeProjectFile(path, res.Project, format, cmdCtx.ExportOptions()); err != nil {
			return err
		}
		stats := res.Project.Stats()
		r.Success(fmt.Sprintf("Wrote %s (%d floors, %d columns, %d beams)",
			path, stats.Floors, stats.Columns, stats.Beams))
	}

	if n := len(res.Diagnostics); n > 0 {
		r.Warning(fmt.Sprintf("%d diagnostics (%d malformed lines)", n, res.Malformed()))
	}

	if opts.Store {
		s, err := cmdCtx.OpenStore(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		id, err := s.SaveProject(ctx, res.Project, len(res.Diagnostics))
		if err != nil {
			return err
		}
		cmdCtx.Logger.Info("saved conversion", "id", id, "store", cfg.StorePath)
		_, _ = fmt.Fprintf(r.ErrWriter(), "Saved conversion %s\n", id)
	}

	return nil
}
