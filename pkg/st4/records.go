package st4

import "github.com/leapstack-labs/st4conv/pkg/core"

// StoryRecord is one three-line story block.
type StoryRecord struct {
	Line      int
	Name      string
	Number    int
	Elevation float64
	Height    float64
}

// AxisRecord is one labeled grid line.
type AxisRecord struct {
	Line       int
	Type       core.AxisType
	Label      string
	Coordinate float64
}

// ColumnType is a column cross-section definition from the type catalog.
type ColumnType struct {
	Line     int
	Label    string
	WidthCm  float64
	HeightCm float64
}

// ColumnPlacement is a column position relative to two axes.
type ColumnPlacement struct {
	Line        int
	FloorNumber int
	SRef        string
	ARef        string
	OffsetXmm   float64
	OffsetYmm   float64
}

// BeamRecord is one beam or panel line.
type BeamRecord struct {
	Line             int
	Label            string
	WidthCm          float64
	HeightCm         float64
	PropertyCode     string
	PlaneAxisRef     string
	StartSpanAxisRef string
	EndSpanAxisRef   string
	Eccentricity     float64
	StartZOffsetCm   float64
	EndZOffsetCm     float64
	IsPanel          bool
}

// SlabRecord is one slab outline.
type SlabRecord struct {
	Line             int
	Label            string
	ThicknessCm      float64
	BoundaryAxisRefs []string
}

// FoundationRecord is one foundation slab: a PL label line followed by its
// data line.
type FoundationRecord struct {
	Line                 int
	Label                string
	ThicknessCm          float64
	BottomElevationMetre float64
	BoundaryAxisRefs     []string
}

// ColumnCatalog holds column types in file order and by label.
type ColumnCatalog struct {
	entries []ColumnType
	byLabel map[string]int
}

// NewColumnCatalog creates a catalog from types in file order.
func NewColumnCatalog(types ...ColumnType) *ColumnCatalog {
	c := &ColumnCatalog{byLabel: make(map[string]int)}
	for _, t := range types {
		c.Add(t)
	}
	return c
}

// Add appends a type. A later type with the same label shadows the earlier
// one in Lookup but both keep their positions.
func (c *ColumnCatalog) Add(t ColumnType) {
	if c.byLabel == nil {
		c.byLabel = make(map[string]int)
	}
	c.byLabel[t.Label] = len(c.entries)
	c.entries = append(c.entries, t)
}

// Len returns the number of types in file order.
func (c *ColumnCatalog) Len() int { return len(c.entries) }

// At returns the i-th type in file order.
func (c *ColumnCatalog) At(i int) (ColumnType, bool) {
	if i < 0 || i >= len(c.entries) {
		return ColumnType{}, false
	}
	return c.entries[i], true
}

// Lookup returns the type registered under label.
func (c *ColumnCatalog) Lookup(label string) (ColumnType, bool) {
	i, ok := c.byLabel[label]
	if !ok {
		return ColumnType{}, false
	}
	return c.entries[i], true
}

// ScanResult holds everything a scan produced.
type ScanResult struct {
	// Title is the project title captured from the third line.
	Title string
	// Lines is the number of physical lines read.
	Lines int

	Stories     []StoryRecord
	Axes        []AxisRecord
	ColumnTypes *ColumnCatalog
	Placements  []ColumnPlacement
	Beams       []BeamRecord
	Slabs       []SlabRecord
	Foundations []FoundationRecord

	Diagnostics []Diagnostic
}
