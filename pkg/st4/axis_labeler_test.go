package st4

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/st4conv/pkg/core"
)

func labels(coords ...float64) []string {
	var l AxisLabeler
	out := make([]string, 0, len(coords))
	for _, c := range coords {
		_, label := l.Next(c)
		out = append(out, label)
	}
	return out
}

func TestAxisLabeler(t *testing.T) {
	tests := []struct {
		name   string
		coords []float64
		want   []string
	}{
		{"single zero", []float64{0}, []string{"X0"}},
		{"increasing without flip", []float64{0, 5}, []string{"X0", "X1"}},
		{"zero after zero does not flip", []float64{0, 0}, []string{"X0", "X1"}},
		{"zero after nonzero flips", []float64{5, 0}, []string{"X0", "Y0"}},
		{"flip then stay in Y", []float64{3, 0, 0}, []string{"X0", "Y0", "Y1"}},
		{
			"typical grid",
			[]float64{0, 4, 8, 0, 5, 10},
			[]string{"X0", "X1", "X2", "Y0", "Y1", "Y2"},
		},
		{"flip is one way", []float64{0, 4, 0, 6, 0}, []string{"X0", "X1", "Y0", "Y1", "Y2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, labels(tt.coords...))
		})
	}
}

func TestAxisLabelerShouldFlip(t *testing.T) {
	var l AxisLabeler
	assert.False(t, l.ShouldFlip(0), "no X axis emitted yet")

	l.Next(2)
	assert.False(t, l.ShouldFlip(1), "nonzero coordinate")
	assert.True(t, l.ShouldFlip(0))

	typ, label := l.Next(0)
	assert.Equal(t, core.AxisY, typ)
	assert.Equal(t, "Y0", label)
	assert.Equal(t, ScanningY, l.State())

	l.Next(3)
	assert.False(t, l.ShouldFlip(0), "already scanning Y")
}

func TestAxisLabelerReset(t *testing.T) {
	var l AxisLabeler
	l.Next(2)
	l.Next(0)
	l.Reset()

	assert.Equal(t, ScanningX, l.State())
	typ, label := l.Next(0)
	assert.Equal(t, core.AxisX, typ)
	assert.Equal(t, "X0", label)
}
