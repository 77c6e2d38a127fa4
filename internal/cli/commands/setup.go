package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/st4conv/internal/cli/config"
	"github.com/leapstack-labs/st4conv/internal/cli/output"
	"github.com/leapstack-labs/st4conv/internal/convert"
	"github.com/leapstack-labs/st4conv/internal/export"
	"github.com/leapstack-labs/st4conv/internal/store"
	"github.com/leapstack-labs/st4conv/pkg/core"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the loaded configuration.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// PipelineOptions returns pipeline options for the loaded configuration.
func (c *CommandContext) PipelineOptions() convert.Options {
	return convert.Options{
		Encoding:   c.Cfg.Encoding,
		AllowEmpty: c.Cfg.AllowEmpty,
		Logger:     c.Logger,
	}
}

// ExportOptions returns serializer options for the loaded configuration.
func (c *CommandContext) ExportOptions() export.Options {
	return export.Options{Indent: c.Cfg.Indent}
}

// OpenStore opens the SQLite store at the configured path.
// The caller must close it.
func (c *CommandContext) OpenStore(ctx context.Context) (*store.SQLiteStore, error) {
	s := store.NewSQLiteStore(c.Logger)
	if err := s.Open(ctx, c.Cfg.StorePath); err != nil {
		return nil, fmt.Errorf("failed to open store %s: %w", c.Cfg.StorePath, err)
	}
	return s, nil
}

// getConfig returns the current configuration, or defaults when none was loaded.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}

// outputPath names the file a project is written to. An explicit path wins;
// otherwise the input's base name gets the format's extension, inside dir
// when set or next to the input.
func outputPath(input, explicit, dir string, f export.Format) string {
	if explicit != "" {
		return explicit
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + "." + f.Extension()
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, base)
}

// writeProjectFile serializes p to path, creating parent directories.
func writeProjectFile(path string, p *core.Project, f export.Format, opts export.Options) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output: %w", cerr)
		}
	}()

	if err := export.Write(out, p, f, opts); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
