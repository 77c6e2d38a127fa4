package core

// AxisType is the direction of a reference grid line.
type AxisType string

// Axis directions.
const (
	AxisX AxisType = "X"
	AxisY AxisType = "Y"
)

// Axis is a reference grid line with a coordinate in meters.
type Axis struct {
	ID         int64    `json:"id" yaml:"id"`
	Type       AxisType `json:"type" yaml:"type"`
	Label      string   `json:"label" yaml:"label"`
	Coordinate float64  `json:"coordinate" yaml:"coordinate"`
}

// Equal reports whether two axes denote the same grid line of a project.
// Axes are keyed by label.
func (a *Axis) Equal(other *Axis) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.Label == other.Label
}
