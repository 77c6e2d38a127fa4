package st4

import (
	"strconv"

	"github.com/leapstack-labs/st4conv/pkg/core"
)

// AxisState is the state of the axis type inference.
type AxisState int

// The exporter writes every X axis before every Y axis without marking the
// boundary. Labeling starts in ScanningX and moves to ScanningY at most once
// per Axis data section.
const (
	ScanningX AxisState = iota
	ScanningY
)

// AxisLabeler assigns synthetic labels ("X0", "X1", ..., "Y0", ...) to axis
// coordinates in file order.
type AxisLabeler struct {
	state   AxisState
	xCount  int
	yCount  int
	prev    float64
	hasPrev bool
}

// Reset returns the labeler to its initial state.
func (l *AxisLabeler) Reset() {
	*l = AxisLabeler{}
}

// State returns the current state.
func (l *AxisLabeler) State() AxisState { return l.state }

// ShouldFlip reports whether coord starts the Y block: a zero coordinate
// that follows a non-zero one after at least one X axis was emitted.
func (l *AxisLabeler) ShouldFlip(coord float64) bool {
	return l.state == ScanningX &&
		coord == 0 &&
		l.xCount > 0 &&
		l.hasPrev && l.prev != 0
}

// Next labels the next axis.
func (l *AxisLabeler) Next(coord float64) (core.AxisType, string) {
	if l.ShouldFlip(coord) {
		l.state = ScanningY
	}
	l.prev, l.hasPrev = coord, true

	if l.state == ScanningX {
		label := "X" + strconv.Itoa(l.xCount)
		l.xCount++
		return core.AxisX, label
	}
	label := "Y" + strconv.Itoa(l.yCount)
	l.yCount++
	return core.AxisY, label
}
