package core

// StructuralColumn is a column placed on one floor.
// Dimensions are in centimeters, positions in meters, offsets in millimeters.
type StructuralColumn struct {
	ID                int64   `json:"id" yaml:"id"`
	SourceSID         string  `json:"st4Sid" yaml:"st4Sid"`
	SourceAID         string  `json:"st4Aid" yaml:"st4Aid"`
	TypeLabel         string  `json:"typeLabel" yaml:"typeLabel"`
	DimensionWidthCm  float64 `json:"dimensionWidthCm" yaml:"dimensionWidthCm"`
	DimensionHeightCm float64 `json:"dimensionHeightCm" yaml:"dimensionHeightCm"`
	PositionXMetre    float64 `json:"positionXMetre" yaml:"positionXMetre"`
	PositionYMetre    float64 `json:"positionYMetre" yaml:"positionYMetre"`
	OffsetXmm         float64 `json:"offsetXmm" yaml:"offsetXmm"`
	OffsetYmm         float64 `json:"offsetYmm" yaml:"offsetYmm"`

	FloorID    int64  `json:"-" yaml:"-"`
	XAxisID    int64  `json:"-" yaml:"-"`
	YAxisID    int64  `json:"-" yaml:"-"`
	XAxisLabel string `json:"-" yaml:"-"`
	YAxisLabel string `json:"-" yaml:"-"`
}

// Beam is a linear element spanning two axes on a plane axis.
type Beam struct {
	ID               int64   `json:"id" yaml:"id"`
	Label            string  `json:"label" yaml:"label"`
	WidthCm          float64 `json:"widthCm" yaml:"widthCm"`
	HeightCm         float64 `json:"heightCm" yaml:"heightCm"`
	PropertyCode     string  `json:"propertyCode" yaml:"propertyCode"`
	PlaneAxisRef     string  `json:"planeAxisRef" yaml:"planeAxisRef"`
	StartSpanAxisRef string  `json:"startSpanAxisRef" yaml:"startSpanAxisRef"`
	EndSpanAxisRef   string  `json:"endSpanAxisRef" yaml:"endSpanAxisRef"`
	StartXMetre      float64 `json:"startXMetre" yaml:"startXMetre"`
	StartYMetre      float64 `json:"startYMetre" yaml:"startYMetre"`
	EndXMetre        float64 `json:"endXMetre" yaml:"endXMetre"`
	EndYMetre        float64 `json:"endYMetre" yaml:"endYMetre"`
	StartZOffsetCm   float64 `json:"startZOffsetCm" yaml:"startZOffsetCm"`
	EndZOffsetCm     float64 `json:"endZOffsetCm" yaml:"endZOffsetCm"`

	// Wall fields are carried by the format but not derived yet.
	WallThicknessCm *float64 `json:"wallThicknessCm" yaml:"wallThicknessCm"`
	WallHeightCm    *float64 `json:"wallHeightCm" yaml:"wallHeightCm"`

	// FloorID is 0 when the label did not resolve to a floor.
	FloorID int64 `json:"-" yaml:"-"`
	// Reserved for column framing; zero until derived.
	StartColumnID int64 `json:"-" yaml:"-"`
	EndColumnID   int64 `json:"-" yaml:"-"`
}

// Panel is a wall-like element with fully resolved endpoints.
type Panel struct {
	ID             int64   `json:"id" yaml:"id"`
	Label          string  `json:"label" yaml:"label"`
	WidthCm        float64 `json:"widthCm" yaml:"widthCm"`
	HeightCm       float64 `json:"heightCm" yaml:"heightCm"`
	PropertyCode   string  `json:"propertyCode" yaml:"propertyCode"`
	StartXMetre    float64 `json:"startXMetre" yaml:"startXMetre"`
	StartYMetre    float64 `json:"startYMetre" yaml:"startYMetre"`
	EndXMetre      float64 `json:"endXMetre" yaml:"endXMetre"`
	EndYMetre      float64 `json:"endYMetre" yaml:"endYMetre"`
	StartZOffsetCm float64 `json:"startZOffsetCm" yaml:"startZOffsetCm"`
	EndZOffsetCm   float64 `json:"endZOffsetCm" yaml:"endZOffsetCm"`

	FloorID int64 `json:"-" yaml:"-"`
}

// Slab is a floor plate outlined by four axis references.
// The references are kept as exported by the source tool.
type Slab struct {
	ID               int64    `json:"id" yaml:"id"`
	Label            string   `json:"label" yaml:"label"`
	ThicknessCm      float64  `json:"thicknessCm" yaml:"thicknessCm"`
	BoundaryAxisRefs []string `json:"boundaryAxisRefs" yaml:"boundaryAxisRefs"`

	FloorID int64 `json:"-" yaml:"-"`
}

// FoundationSlab is a site-wide raft. ElevationMetre is its top elevation.
type FoundationSlab struct {
	ID               int64    `json:"id" yaml:"id"`
	Label            string   `json:"label" yaml:"label"`
	ThicknessCm      float64  `json:"thicknessCm" yaml:"thicknessCm"`
	ElevationMetre   float64  `json:"elevationMetre" yaml:"elevationMetre"`
	BoundaryAxisRefs []string `json:"boundaryAxisRefs" yaml:"boundaryAxisRefs"`
}
