// Package geometry derives real-world element coordinates from axis
// coordinates, cross-section sizes and the exporter's signed offset codes.
//
// Every function is pure. Coordinates are in meters, cross sections in
// centimeters, column offsets in millimeters.
package geometry

// Offset sentinels shared by columns and beams. They are compared with
// exact floating equality: a literal 1 mm offset cannot be expressed.
const (
	SnapMinus = 1.0  // align the element's plus edge on the axis
	SnapPlus  = -1.0 // align the element's minus edge on the axis
	Centered  = 0.0
)

// CmToMetre converts centimeters to meters.
func CmToMetre(cm float64) float64 { return cm / 100.0 }

// MmToMetre converts millimeters to meters.
func MmToMetre(mm float64) float64 { return mm / 1000.0 }

// ColumnPosition computes one coordinate of a column from its axis
// coordinate, half of its dimension along that axis (meters) and the
// offset code (millimeters).
//
// A genuine offset shifts the column by the offset and then pulls it back
// by half its size toward the axis, so a positive offset puts the plus face
// at axis+offset and a negative one puts the minus face at axis+offset.
func ColumnPosition(axisCoord, halfDim, offsetMm float64) float64 {
	switch offsetMm {
	case SnapMinus:
		return axisCoord - halfDim
	case SnapPlus:
		return axisCoord + halfDim
	case Centered:
		return axisCoord
	}
	offset := MmToMetre(offsetMm)
	if offset > 0 {
		return axisCoord + offset - halfDim
	}
	return axisCoord + offset + halfDim
}

// ColumnCenter returns the X/Y position of a column whose cross section is
// widthCm along X and heightCm along Y.
func ColumnCenter(xAxis, yAxis, widthCm, heightCm, offsetXmm, offsetYmm float64) (x, y float64) {
	x = ColumnPosition(xAxis, CmToMetre(widthCm)/2.0, offsetXmm)
	y = ColumnPosition(yAxis, CmToMetre(heightCm)/2.0, offsetYmm)
	return x, y
}

// PlaneOffset computes the perpendicular coordinate of a beam or panel
// lying on a plane axis. widthMetre is the element's full cross-section
// width; only the ±1 eccentricity codes move the element off the axis.
func PlaneOffset(axisCoord, widthMetre, eccentricity float64) float64 {
	switch eccentricity {
	case SnapMinus:
		return axisCoord - widthMetre/2.0
	case SnapPlus:
		return axisCoord + widthMetre/2.0
	}
	return axisCoord
}

// Direction is the orientation of a plane axis.
type Direction int

// Plane axis orientations.
const (
	// AlongX means the plane axis is an X grid line; the element runs along Y.
	AlongX Direction = iota
	// AlongY means the plane axis is a Y grid line; the element runs along X.
	AlongY
)

// Segment is a planar element centerline.
type Segment struct {
	StartX, StartY float64
	EndX, EndY     float64
}

// SpanEndpoints places a linear element between two span axes on a plane
// axis. The perpendicular coordinate is constant along the element.
func SpanEndpoints(plane Direction, planeCoord, startSpan, endSpan, widthCm, eccentricity float64) Segment {
	fixed := PlaneOffset(planeCoord, CmToMetre(widthCm), eccentricity)
	if plane == AlongY {
		return Segment{StartX: startSpan, StartY: fixed, EndX: endSpan, EndY: fixed}
	}
	return Segment{StartX: fixed, StartY: startSpan, EndX: fixed, EndY: endSpan}
}
