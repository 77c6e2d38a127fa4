package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/st4conv/internal/cli/output"
	"github.com/leapstack-labs/st4conv/internal/convert"
	"github.com/leapstack-labs/st4conv/pkg/core"
	"github.com/leapstack-labs/st4conv/pkg/st4"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// InspectOutput is the JSON shape of the inspect command.
type InspectOutput struct {
	FileName    string            `json:"fileName"`
	Title       string            `json:"projectTitle"`
	Lines       int               `json:"lines"`
	Stats       core.Stats        `json:"stats"`
	Floors      []core.FloorStats `json:"floors"`
	Diagnostics []st4.Diagnostic  `json:"diagnostics"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <input.st4>",
		Short: "Show what an ST4 file contains",
		Long: `Convert an ST4 file without writing it and report entity counts per floor
together with every skipped line and unresolved reference.

Output adapts to environment:
  - Terminal: Styled tables
  - Piped/Scripted: Markdown format

Use --output to override: auto, text, markdown, json`,
		Example: `  # Inspect a file
  st4conv inspect building.st4

  # Machine-readable report
  st4conv inspect building.st4 --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0])
		},
	}
	return cmd
}

func runInspect(cmd *cobra.Command, input string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	opts := cmdCtx.PipelineOptions()
	opts.AllowEmpty = true
	res, err := convert.ConvertFile(cmd.Context(), input, opts)
	if err != nil {
		return err
	}

	out := InspectOutput{
		FileName:    res.Project.FileName,
		Title:       res.Project.Title,
		Lines:       res.Lines,
		Stats:       res.Project.Stats(),
		Floors:      res.Project.FloorStats(),
		Diagnostics: res.Diagnostics,
	}
	if out.Diagnostics == nil {
		out.Diagnostics = []st4.Diagnostic{}
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeMarkdown:
		inspectReport(r, out, true)
	default:
		inspectReport(r, out, false)
	}
	return nil
}

func inspectReport(r *output.Renderer, out InspectOutput, markdown bool) {
	title := out.Title
	if title == "" {
		title = out.FileName
	}
	r.Header(1, title)
	r.KeyValue("File", out.FileName)
	r.KeyValue("Lines", out.Lines)
	r.KeyValue("Axes", out.Stats.Axes)
	r.KeyValue("Foundation slabs", out.Stats.FoundationSlabs)
	if out.Stats.OrphanBeams > 0 || out.Stats.OrphanPanels > 0 {
		r.KeyValue("Without floor", fmt.Sprintf("%d beams, %d panels", out.Stats.OrphanBeams, out.Stats.OrphanPanels))
	}
	r.Println()

	r.Header(2, "Floors")
	floors := newTable(r, markdown)
	floors.AppendHeader(table.Row{"Floor", "Number", "Columns", "Beams", "Panels", "Slabs"})
	for _, f := range out.Floors {
		floors.AppendRow(table.Row{f.Name, f.OriginalNumber, f.Columns, f.Beams, f.Panels, f.Slabs})
	}
	floors.AppendFooter(table.Row{"Total", "", out.Stats.Columns, out.Stats.Beams, out.Stats.Panels, out.Stats.Slabs})
	render(floors, markdown)
	r.Println()

	r.Header(2, fmt.Sprintf("Diagnostics (%d)", len(out.Diagnostics)))
	if len(out.Diagnostics) == 0 {
		r.Success("No diagnostics")
		return
	}
	titleCaser := cases.Title(language.English)
	diags := newTable(r, markdown)
	diags.AppendHeader(table.Row{"Line", "Kind", "Section", "Message", "Content"})
	for _, d := range out.Diagnostics {
		line := ""
		if d.Line > 0 {
			line = fmt.Sprint(d.Line)
		}
		diags.AppendRow(table.Row{line, titleCaser.String(d.Kind.String()), d.Section.String(), d.Message, d.Content})
	}
	if !markdown {
		diags.SetColumnConfigs([]table.ColumnConfig{
			{Number: 4, WidthMax: 60},
			{Number: 5, WidthMax: 40},
		})
	}
	render(diags, markdown)
}

func newTable(r *output.Renderer, markdown bool) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	if !markdown {
		t.SetStyle(table.StyleLight)
	}
	return t
}

func render(t table.Writer, markdown bool) {
	if markdown {
		t.RenderMarkdown()
		return
	}
	t.Render()
}
