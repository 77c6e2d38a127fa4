package st4

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/st4conv/pkg/core"
)

func TestResolveAxisLabel(t *testing.T) {
	tests := []struct {
		ref    string
		want   string
		wantOK bool
	}{
		{"11", "X0", true},
		{"13", "X2", true},
		{"21", "Y0", true},
		{"210", "Y9", true},
		{"10", "X-1", true},
		{"", "", false},
		{"   ", "", false},
		{"1", "", false},
		{"31", "", false},
		{"1a", "", false},
		{"2 1", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, ok := ResolveAxisLabel(tt.ref)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAxisResolver(t *testing.T) {
	x0 := &core.Axis{ID: 1, Type: core.AxisX, Label: "X0", Coordinate: 0}
	x1 := &core.Axis{ID: 2, Type: core.AxisX, Label: "X1", Coordinate: 4}
	y0 := &core.Axis{ID: 3, Type: core.AxisY, Label: "Y0", Coordinate: 0}
	r := NewAxisResolver([]*core.Axis{x0, x1, y0})

	got, ok := r.Resolve("12")
	require.True(t, ok)
	assert.Same(t, x1, got)

	got, ok = r.Resolve("21")
	require.True(t, ok)
	assert.Same(t, y0, got)

	_, ok = r.Resolve("22")
	assert.False(t, ok, "label not in the axis set")

	_, ok = r.Resolve("x")
	assert.False(t, ok)
}

func TestAxisResolverLastDuplicateWins(t *testing.T) {
	first := &core.Axis{ID: 1, Label: "X0", Coordinate: 1}
	second := &core.Axis{ID: 2, Label: "X0", Coordinate: 2}
	r := NewAxisResolver([]*core.Axis{first, second})

	got, ok := r.Resolve("11")
	require.True(t, ok)
	assert.Same(t, second, got)
}
