package core

// Floor is one building story.
type Floor struct {
	ID             int64   `json:"id" yaml:"id"`
	Name           string  `json:"name" yaml:"name"`
	OriginalNumber int     `json:"originalNumber" yaml:"originalNumber"`
	Elevation      float64 `json:"elevation" yaml:"elevation"`
	Height         float64 `json:"height" yaml:"height"`

	Columns []*StructuralColumn `json:"columns" yaml:"columns"`
	Beams   []*Beam             `json:"beams" yaml:"beams"`
	Slabs   []*Slab             `json:"slabs" yaml:"slabs"`
	Panels  []*Panel            `json:"panels" yaml:"panels"`
}

// NewFloor creates a floor with empty element lists.
func NewFloor(id int64, name string, number int, elevation, height float64) *Floor {
	return &Floor{
		ID:             id,
		Name:           name,
		OriginalNumber: number,
		Elevation:      elevation,
		Height:         height,
		Columns:        []*StructuralColumn{},
		Beams:          []*Beam{},
		Slabs:          []*Slab{},
		Panels:         []*Panel{},
	}
}

// Equal reports whether two floors are the same story of a project.
// Floors are keyed by name and original number.
func (f *Floor) Equal(other *Floor) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.Name == other.Name && f.OriginalNumber == other.OriginalNumber
}

// AddColumn places a column on this floor.
func (f *Floor) AddColumn(c *StructuralColumn) {
	f.Columns = append(f.Columns, c)
	c.FloorID = f.ID
}

// AddBeam places a beam on this floor.
func (f *Floor) AddBeam(b *Beam) {
	f.Beams = append(f.Beams, b)
	b.FloorID = f.ID
}

// AddSlab places a slab on this floor.
func (f *Floor) AddSlab(s *Slab) {
	f.Slabs = append(f.Slabs, s)
	s.FloorID = f.ID
}

// AddPanel places a panel on this floor.
func (f *Floor) AddPanel(p *Panel) {
	f.Panels = append(f.Panels, p)
	p.FloorID = f.ID
}
