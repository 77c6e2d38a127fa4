package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/leapstack-labs/st4conv/pkg/core"
)

type sheet struct {
	name    string
	headers []string
	widths  []float64
	rows    [][]any
}

// WriteXLSX writes element schedules, one worksheet per entity type.
func WriteXLSX(w io.Writer, p *core.Project) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheets := schedules(p)
	for _, s := range sheets {
		if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", s.name, err)
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to delete default sheet: %w", err)
	}
	index, err := f.GetSheetIndex(sheets[0].name)
	if err != nil {
		return fmt.Errorf("failed to find sheet %s: %w", sheets[0].name, err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for _, s := range sheets {
		if err := writeSheet(f, s, headerStyle); err != nil {
			return err
		}
	}

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   p.Title,
		Subject: p.FileName,
	}); err != nil {
		return fmt.Errorf("failed to set document properties: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, s sheet, headerStyle int) error {
	for col, header := range s.headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(s.name, cell, header); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
	}
	last, err := excelize.CoordinatesToCellName(len(s.headers), 1)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetCellStyle(s.name, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to set header style: %w", err)
	}

	for i, width := range s.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(s.name, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for r, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", s.name, r+2, err)
		}
	}

	return f.SetPanes(s.name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func schedules(p *core.Project) []sheet {
	floorName := func(id int64) string {
		if f := p.FloorByID(id); f != nil {
			return f.Name
		}
		return ""
	}

	floors := sheet{
		name:    "Floors",
		headers: []string{"ID", "Name", "Story", "Elevation (m)", "Height (m)", "Columns", "Beams", "Panels", "Slabs"},
		widths:  []float64{8, 24, 8, 14, 12, 10, 10, 10, 10},
	}
	for _, f := range p.Floors {
		floors.rows = append(floors.rows, []any{
			f.ID, f.Name, f.OriginalNumber, f.Elevation, f.Height,
			len(f.Columns), len(f.Beams), len(f.Panels), len(f.Slabs),
		})
	}

	axes := sheet{
		name:    "Axes",
		headers: []string{"ID", "Label", "Type", "Coordinate (m)"},
		widths:  []float64{8, 10, 8, 16},
	}
	for _, a := range p.Axes {
		axes.rows = append(axes.rows, []any{a.ID, a.Label, string(a.Type), a.Coordinate})
	}

	columns := sheet{
		name: "Columns",
		headers: []string{"ID", "Floor", "Type", "Width (cm)", "Height (cm)",
			"X (m)", "Y (m)", "X Axis", "Y Axis", "Offset X (mm)", "Offset Y (mm)"},
		widths: []float64{8, 24, 10, 12, 12, 10, 10, 10, 10, 14, 14},
	}
	for _, c := range p.Columns {
		columns.rows = append(columns.rows, []any{
			c.ID, floorName(c.FloorID), c.TypeLabel, c.DimensionWidthCm, c.DimensionHeightCm,
			c.PositionXMetre, c.PositionYMetre, c.XAxisLabel, c.YAxisLabel, c.OffsetXmm, c.OffsetYmm,
		})
	}

	beams := sheet{
		name: "Beams",
		headers: []string{"ID", "Floor", "Label", "Width (cm)", "Height (cm)", "Property",
			"Start X (m)", "Start Y (m)", "End X (m)", "End Y (m)", "Start Z (cm)", "End Z (cm)", "Axis Refs"},
		widths: []float64{8, 24, 12, 12, 12, 10, 12, 12, 12, 12, 12, 12, 16},
	}
	for _, b := range p.Beams {
		beams.rows = append(beams.rows, []any{
			b.ID, floorName(b.FloorID), b.Label, b.WidthCm, b.HeightCm, b.PropertyCode,
			b.StartXMetre, b.StartYMetre, b.EndXMetre, b.EndYMetre, b.StartZOffsetCm, b.EndZOffsetCm,
			strings.Join([]string{b.PlaneAxisRef, b.StartSpanAxisRef, b.EndSpanAxisRef}, " "),
		})
	}

	panels := sheet{
		name: "Panels",
		headers: []string{"ID", "Floor", "Label", "Width (cm)", "Height (cm)", "Property",
			"Start X (m)", "Start Y (m)", "End X (m)", "End Y (m)", "Start Z (cm)", "End Z (cm)"},
		widths: []float64{8, 24, 12, 12, 12, 10, 12, 12, 12, 12, 12, 12},
	}
	for _, pn := range p.Panels {
		panels.rows = append(panels.rows, []any{
			pn.ID, floorName(pn.FloorID), pn.Label, pn.WidthCm, pn.HeightCm, pn.PropertyCode,
			pn.StartXMetre, pn.StartYMetre, pn.EndXMetre, pn.EndYMetre, pn.StartZOffsetCm, pn.EndZOffsetCm,
		})
	}

	slabs := sheet{
		name:    "Slabs",
		headers: []string{"ID", "Floor", "Label", "Thickness (cm)", "Boundary"},
		widths:  []float64{8, 24, 12, 14, 24},
	}
	for _, f := range p.Floors {
		for _, s := range f.Slabs {
			slabs.rows = append(slabs.rows, []any{
				s.ID, f.Name, s.Label, s.ThicknessCm, strings.Join(s.BoundaryAxisRefs, " "),
			})
		}
	}

	foundations := sheet{
		name:    "Foundations",
		headers: []string{"ID", "Label", "Thickness (cm)", "Top Elevation (m)", "Boundary"},
		widths:  []float64{8, 12, 14, 18, 24},
	}
	for _, fs := range p.FoundationSlabs {
		foundations.rows = append(foundations.rows, []any{
			fs.ID, fs.Label, fs.ThicknessCm, fs.ElevationMetre, strings.Join(fs.BoundaryAxisRefs, " "),
		})
	}

	return []sheet{floors, axes, columns, beams, panels, slabs, foundations}
}
