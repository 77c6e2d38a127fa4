package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/st4conv/pkg/core"
)

func sampleProject() *core.Project {
	p := core.NewProject("tower.st4")
	p.Title = "Tower"
	ground := core.NewFloor(1, "Ground", 1, 0, 3)
	p.AddFloor(ground)
	p.AddAxis(&core.Axis{ID: 1, Type: core.AxisX, Label: "X0", Coordinate: 0})
	p.AddAxis(&core.Axis{ID: 2, Type: core.AxisY, Label: "Y0", Coordinate: 0})

	col := &core.StructuralColumn{ID: 1, TypeLabel: "101", DimensionWidthCm: 40, DimensionHeightCm: 40, XAxisLabel: "X0", YAxisLabel: "Y0"}
	ground.AddColumn(col)
	p.AddColumn(col)

	beam := &core.Beam{ID: 1, Label: "101", WidthCm: 30, HeightCm: 60, EndXMetre: 5}
	ground.AddBeam(beam)
	p.AddBeam(beam)
	p.AddBeam(&core.Beam{ID: 2, Label: "K9"})

	ground.AddSlab(&core.Slab{ID: 1, Label: "1D1", ThicknessCm: 15, BoundaryAxisRefs: []string{"11", "12", "21", "22"}})
	p.AddFoundationSlab(&core.FoundationSlab{ID: 1, Label: "PL1", ThicknessCm: 60, ElevationMetre: -0.9, BoundaryAxisRefs: []string{"11", "12", "21", "22"}})
	return p
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"yaml", FormatYAML, false},
		{"xlsx", FormatXLSX, false},
		{"excel", FormatXLSX, false},
		{"csv", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "json, yaml, xlsx")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteJSONShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleProject(), DefaultOptions()))
	assert.True(t, strings.HasPrefix(buf.String(), "{\n  \"id\": 1"))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "Tower", doc["projectTitle"])
	assert.NotContains(t, doc, "columns")
	assert.NotContains(t, doc, "beams")

	floors := doc["floors"].([]any)
	floor := floors[0].(map[string]any)
	cols := floor["columns"].([]any)
	col := cols[0].(map[string]any)
	assert.Equal(t, "101", col["typeLabel"])
	assert.NotContains(t, col, "XAxisLabel")
	assert.Contains(t, col, "st4Sid")

	beam := floor["beams"].([]any)[0].(map[string]any)
	assert.Nil(t, beam["wallThicknessCm"])
	assert.Contains(t, beam, "wallThicknessCm")
}

func TestWriteJSONCompact(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleProject(), Options{}))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleProject(), FormatYAML, DefaultOptions()))

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "tower.st4", doc["fileName"])
	assert.Len(t, doc["axes"], 2)
	assert.NotContains(t, doc, "columns")
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleProject(), FormatXLSX, DefaultOptions()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Floors", "Axes", "Columns", "Beams", "Panels", "Slabs", "Foundations"}, f.GetSheetList())

	rows, err := f.GetRows("Columns")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Floor", rows[0][1])
	assert.Equal(t, "Ground", rows[1][1])
	assert.Equal(t, "101", rows[1][2])

	rows, err = f.GetRows("Beams")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "", rows[2][1], "orphan beam has no floor")

	rows, err = f.GetRows("Foundations")
	require.NoError(t, err)
	assert.Equal(t, "11 12 21 22", rows[1][4])
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, sampleProject(), Format("csv"), DefaultOptions())
	assert.Error(t, err)
}

func TestFormatAttributes(t *testing.T) {
	assert.Equal(t, "yaml", FormatYAML.Extension())
	assert.Equal(t, "application/json", FormatJSON.ContentType())
	assert.True(t, FormatXLSX.Binary())
	assert.False(t, FormatJSON.Binary())
}
