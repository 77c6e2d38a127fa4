package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/st4conv/internal/cli/output"
	"github.com/leapstack-labs/st4conv/internal/convert"
	"github.com/leapstack-labs/st4conv/internal/export"
	"github.com/leapstack-labs/st4conv/internal/store"
	"github.com/spf13/cobra"
)

// BatchOptions holds options for the batch command.
type BatchOptions struct {
	Store bool
}

// BatchOutput is the JSON shape of one batch entry.
type BatchOutput struct {
	Input       string   `json:"input"`
	Outputs     []string `json:"outputs"`
	Floors      int      `json:"floors"`
	Columns     int      `json:"columns"`
	Beams       int      `json:"beams"`
	Diagnostics int      `json:"diagnostics"`
	ID          string   `json:"conversionId,omitempty"`
}

// NewBatchCommand creates the batch command.
func NewBatchCommand() *cobra.Command {
	opts := &BatchOptions{}

	cmd := &cobra.Command{
		Use:   "batch <inputs...>",
		Short: "Convert many ST4 files in parallel",
		Long: `Convert every input in parallel with a bounded number of workers.

Directories are expanded to the .st4 files they contain. Each input is written
once per format to --output-dir, or next to the input when no directory is set.
The first failure stops the remaining conversions.`,
		Example: `  # Convert a folder to JSON and YAML with 8 workers
  st4conv batch exports/ --output-dir models --formats json,yaml --workers 8`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args, opts)
		},
	}

	cmd.Flags().Int("workers", 0, "Number of parallel conversions (default from config)")
	cmd.Flags().StringSlice("formats", nil, "Output formats (json, yaml, xlsx)")
	cmd.Flags().BoolVar(&opts.Store, "store", false, "Also save every model in the SQLite store")
	cmd.Flags().Bool("allow-empty", false, "Accept files that produce no floors and no axes")

	return cmd
}

func runBatch(cmd *cobra.Command, args []string, opts *BatchOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer
	ctx := cmd.Context()

	formats := make([]export.Format, 0, len(cfg.Batch.Formats))
	for _, name := range cfg.Batch.Formats {
		f, err := export.ParseFormat(name)
		if err != nil {
			return err
		}
		formats = append(formats, f)
	}
	if len(formats) == 0 {
		return fmt.Errorf("no output formats configured")
	}

	inputs, err := expandInputs(args)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no .st4 files found in %s", strings.Join(args, ", "))
	}

	var s *store.SQLiteStore
	if opts.Store {
		s, err = cmdCtx.OpenStore(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()
	}

	results := make([]BatchOutput, len(inputs))
	index := make(map[string]int, len(inputs))
	for i, in := range inputs {
		index[in] = i
		results[i].Input = in
	}

	sink := func(ctx context.Context, input string, res *convert.Result) error {
		entry := &results[index[input]]
		for _, f := range formats {
			path := outputPath(input, "", cfg.OutputDir, f)
			if err := writeProjectFile(path, res.Project, f, cmdCtx.ExportOptions()); err != nil {
				return err
			}
			entry.Outputs = append(entry.Outputs, path)
		}
		if s != nil {
			id, err := s.SaveProject(ctx, res.Project, len(res.Diagnostics))
			if err != nil {
				return err
			}
			entry.ID = id
		}
		stats := res.Project.Stats()
		entry.Floors = stats.Floors
		entry.Columns = stats.Columns
		entry.Beams = stats.Beams
		entry.Diagnostics = len(res.Diagnostics)
		return nil
	}

	cmdCtx.Logger.Info("batch started", "inputs", len(inputs), "workers", cfg.Batch.Workers)
	if _, err := convert.Batch(ctx, inputs, cfg.Batch.Workers, cmdCtx.PipelineOptions(), sink); err != nil {
		return err
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(results)
	default:
		markdown := r.EffectiveMode() == output.ModeMarkdown
		t := newTable(r, markdown)
		t.AppendHeader(table.Row{"Input", "Floors", "Columns", "Beams", "Diagnostics", "Outputs"})
		for _, e := range results {
			t.AppendRow(table.Row{e.Input, e.Floors, e.Columns, e.Beams, e.Diagnostics, strings.Join(e.Outputs, ", ")})
		}
		render(t, markdown)
		r.Success(fmt.Sprintf("Converted %d files", len(results)))
	}
	return nil
}

// expandInputs replaces each directory argument with the .st4 files directly
// inside it, sorted by name. Duplicates are dropped.
func expandInputs(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var inputs []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			inputs = append(inputs, p)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to stat input: %w", err)
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", arg, err)
		}
		var files []string
		for _, e := range entries {
			if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".st4") {
				files = append(files, filepath.Join(arg, e.Name()))
			}
		}
		sort.Strings(files)
		for _, f := range files {
			add(f)
		}
	}
	return inputs, nil
}
