package st4

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/st4conv/pkg/core"
)

// ResolveAxisLabel converts an exporter axis reference into a synthetic
// axis label. The first character is the type digit ('1' for X, '2' for
// Y) and the rest is a 1-based index. Anything else is unresolved.
func ResolveAxisLabel(ref string) (string, bool) {
	if strings.TrimSpace(ref) == "" {
		return "", false
	}
	runes := []rune(ref)
	if len(runes) < 2 {
		return "", false
	}

	var prefix string
	switch runes[0] {
	case '1':
		prefix = string(core.AxisX)
	case '2':
		prefix = string(core.AxisY)
	default:
		return "", false
	}

	index, err := strconv.Atoi(string(runes[1:]))
	if err != nil {
		return "", false
	}
	return prefix + strconv.Itoa(index-1), true
}

// AxisResolver looks axis references up in a fixed axis set.
type AxisResolver struct {
	byLabel map[string]*core.Axis
}

// NewAxisResolver indexes axes by label. A later axis with a duplicate
// label replaces the earlier one.
func NewAxisResolver(axes []*core.Axis) *AxisResolver {
	r := &AxisResolver{byLabel: make(map[string]*core.Axis, len(axes))}
	for _, a := range axes {
		r.byLabel[a.Label] = a
	}
	return r
}

// Resolve returns the axis an exporter reference points at.
func (r *AxisResolver) Resolve(ref string) (*core.Axis, bool) {
	label, ok := ResolveAxisLabel(ref)
	if !ok {
		return nil, false
	}
	a, ok := r.byLabel[label]
	return a, ok
}
