package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumnPosition(t *testing.T) {
	tests := []struct {
		name     string
		axis     float64
		half     float64
		offsetMm float64
		want     float64
	}{
		{name: "centered", axis: 5.0, half: 0.2, offsetMm: 0, want: 5.0},
		{name: "snap minus sentinel", axis: 5.0, half: 0.2, offsetMm: 1.0, want: 4.8},
		{name: "snap plus sentinel", axis: 5.0, half: 0.2, offsetMm: -1.0, want: 5.2},
		{name: "positive offset", axis: 5.0, half: 0.2, offsetMm: 150, want: 4.95},
		{name: "negative offset", axis: 5.0, half: 0.2, offsetMm: -150, want: 5.05},
		{name: "near sentinel is physical", axis: 5.0, half: 0.2, offsetMm: 1.5, want: 5.0 + 0.0015 - 0.2},
		{name: "near minus sentinel is physical", axis: 5.0, half: 0.2, offsetMm: -0.999, want: 5.0 - 0.000999 + 0.2},
		{name: "two mm", axis: 0, half: 0.25, offsetMm: 2, want: 0.002 - 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ColumnPosition(tt.axis, tt.half, tt.offsetMm)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestColumnPositionIsPure(t *testing.T) {
	first := ColumnPosition(3.25, 0.15, -275)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ColumnPosition(3.25, 0.15, -275))
	}
}

func TestColumnCenter(t *testing.T) {
	x, y := ColumnCenter(5.0, 3.0, 40, 60, 1.0, -1.0)
	assert.InDelta(t, 4.8, x, 1e-12)
	assert.InDelta(t, 3.3, y, 1e-12)

	x, y = ColumnCenter(5.0, 3.0, 40, 40, 0, 0)
	assert.Equal(t, 5.0, x)
	assert.Equal(t, 3.0, y)
}

func TestPlaneOffset(t *testing.T) {
	assert.InDelta(t, 2.875, PlaneOffset(3.0, 0.25, 1.0), 1e-12)
	assert.InDelta(t, 3.125, PlaneOffset(3.0, 0.25, -1.0), 1e-12)
	assert.Equal(t, 3.0, PlaneOffset(3.0, 0.25, 0))
	assert.Equal(t, 3.0, PlaneOffset(3.0, 0.25, 2.0), "only the ±1 codes move the element")
	assert.Equal(t, 3.0, PlaneOffset(3.0, 0.25, 0.5))
}

func TestSpanEndpoints(t *testing.T) {
	t.Run("Y plane runs along X", func(t *testing.T) {
		seg := SpanEndpoints(AlongY, 4.0, 0.0, 6.0, 30, 1.0)
		assert.Equal(t, 0.0, seg.StartX)
		assert.Equal(t, 6.0, seg.EndX)
		assert.InDelta(t, 3.85, seg.StartY, 1e-12)
		assert.Equal(t, seg.StartY, seg.EndY)
	})

	t.Run("X plane runs along Y", func(t *testing.T) {
		seg := SpanEndpoints(AlongX, 2.0, 1.0, 5.0, 20, -1.0)
		assert.InDelta(t, 2.1, seg.StartX, 1e-12)
		assert.Equal(t, seg.StartX, seg.EndX)
		assert.Equal(t, 1.0, seg.StartY)
		assert.Equal(t, 5.0, seg.EndY)
	})
}
