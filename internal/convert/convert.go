// Package convert runs the ST4 conversion pipeline: decode the stream,
// scan it, assemble the project and report diagnostics.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/leapstack-labs/st4conv/pkg/assembler"
	"github.com/leapstack-labs/st4conv/pkg/core"
	"github.com/leapstack-labs/st4conv/pkg/st4"
)

// ErrEmptyModel is returned when a conversion yields no floors and no axes.
var ErrEmptyModel = errors.New("conversion produced no floors and no axes")

// Options controls one conversion.
type Options struct {
	// Encoding names the input character set (default utf-8).
	Encoding string
	// AllowEmpty accepts a project with no floors and no axes.
	AllowEmpty bool
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Result is the outcome of a conversion.
type Result struct {
	Project     *core.Project
	Diagnostics []st4.Diagnostic
	Lines       int
	Duration    time.Duration
}

// Malformed returns the number of skipped lines.
func (r *Result) Malformed() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Kind == st4.KindMalformed {
			n++
		}
	}
	return n
}

// Convert reads an ST4 stream and builds its project. name tags the
// project. Read and decode failures abort the conversion. When the model
// is empty and opts.AllowEmpty is false the result is returned together
// with ErrEmptyModel.
func Convert(ctx context.Context, r io.Reader, name string, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("file", name)
	start := time.Now()

	decoded, err := NewDecodingReader(r, opts.Encoding)
	if err != nil {
		return nil, err
	}

	scan, err := st4.Scan(ctx, decoded)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", name, err)
	}
	for _, d := range scan.Diagnostics {
		logger.Warn("skipped malformed line",
			"line", d.Line,
			"section", d.Section.String(),
			"content", d.Content,
			"error", d.Message,
		)
	}

	project, diags := assembler.New(logger).Assemble(name, scan)
	res := &Result{
		Project:     project,
		Diagnostics: diags,
		Lines:       scan.Lines,
		Duration:    time.Since(start),
	}

	stats := project.Stats()
	logger.Info("converted",
		"lines", res.Lines,
		"floors", stats.Floors,
		"axes", stats.Axes,
		"columns", stats.Columns,
		"beams", stats.Beams,
		"panels", stats.Panels,
		"slabs", stats.Slabs,
		"foundation_slabs", stats.FoundationSlabs,
		"diagnostics", len(diags),
		"duration", res.Duration,
	)

	if project.IsEmpty() && !opts.AllowEmpty {
		return res, ErrEmptyModel
	}
	return res, nil
}

// ConvertFile converts the file at path. The project is tagged with the
// file's base name.
func ConvertFile(ctx context.Context, path string, opts Options) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer func() { _ = f.Close() }()

	res, err := Convert(ctx, f, filepath.Base(path), opts)
	if err != nil && !errors.Is(err, ErrEmptyModel) {
		return nil, err
	}
	return res, err
}
