package core

// ProjectID is the identifier every converted project carries.
const ProjectID int64 = 1

// Project is the root of a converted model.
type Project struct {
	ID              int64             `json:"id" yaml:"id"`
	FileName        string            `json:"fileName" yaml:"fileName"`
	Title           string            `json:"projectTitle" yaml:"projectTitle"`
	Floors          []*Floor          `json:"floors" yaml:"floors"`
	Axes            []*Axis           `json:"axes" yaml:"axes"`
	FoundationSlabs []*FoundationSlab `json:"foundationSlabs" yaml:"foundationSlabs"`

	// Flat indexes of floor-level elements. Beams and panels whose floor
	// could not be resolved live only here.
	Columns []*StructuralColumn `json:"-" yaml:"-"`
	Beams   []*Beam             `json:"-" yaml:"-"`
	Panels  []*Panel            `json:"-" yaml:"-"`
}

// NewProject creates an empty project for the named source file.
func NewProject(fileName string) *Project {
	return &Project{
		ID:              ProjectID,
		FileName:        fileName,
		Floors:          []*Floor{},
		Axes:            []*Axis{},
		FoundationSlabs: []*FoundationSlab{},
		Columns:         []*StructuralColumn{},
		Beams:           []*Beam{},
		Panels:          []*Panel{},
	}
}

// AddFloor attaches a floor.
func (p *Project) AddFloor(f *Floor) { p.Floors = append(p.Floors, f) }

// AddAxis attaches a grid line.
func (p *Project) AddAxis(a *Axis) { p.Axes = append(p.Axes, a) }

// AddColumn indexes a column.
func (p *Project) AddColumn(c *StructuralColumn) { p.Columns = append(p.Columns, c) }

// AddBeam indexes a beam.
func (p *Project) AddBeam(b *Beam) { p.Beams = append(p.Beams, b) }

// AddPanel indexes a panel.
func (p *Project) AddPanel(pn *Panel) { p.Panels = append(p.Panels, pn) }

// AddFoundationSlab attaches a foundation slab.
func (p *Project) AddFoundationSlab(fs *FoundationSlab) {
	p.FoundationSlabs = append(p.FoundationSlabs, fs)
}

// FloorByNumber returns the last floor registered with the given source
// story number, or nil.
func (p *Project) FloorByNumber(number int) *Floor {
	var found *Floor
	for _, f := range p.Floors {
		if f.OriginalNumber == number {
			found = f
		}
	}
	return found
}

// FloorByID returns the floor with the given identifier, or nil.
func (p *Project) FloorByID(id int64) *Floor {
	for _, f := range p.Floors {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// AxisByLabel returns the axis with the given synthetic label, or nil.
func (p *Project) AxisByLabel(label string) *Axis {
	for _, a := range p.Axes {
		if a.Label == label {
			return a
		}
	}
	return nil
}

// IsEmpty reports whether the conversion produced no floors and no axes.
func (p *Project) IsEmpty() bool {
	return len(p.Floors) == 0 && len(p.Axes) == 0
}
