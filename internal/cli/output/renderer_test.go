package output

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func newBuffered(mode Mode, tty bool) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, tty, mode), out, errOut
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		mode Mode
		tty  bool
		want Mode
	}{
		{ModeAuto, true, ModeText},
		{ModeAuto, false, ModeMarkdown},
		{"", false, ModeMarkdown},
		{ModeJSON, true, ModeJSON},
		{ModeText, false, ModeText},
	}
	for _, tt := range tests {
		r, _, _ := newBuffered(tt.mode, tt.tty)
		assert.Equal(t, tt.want, r.EffectiveMode(), "mode=%q tty=%v", tt.mode, tt.tty)
	}
}

func TestNewRendererDetectsNonTerminal(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, ModeAuto)
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
}

func TestMarkdownOutput(t *testing.T) {
	r, out, errOut := newBuffered(ModeMarkdown, false)

	r.Header(2, "Floors")
	r.KeyValue("Columns", 3)
	r.Success("converted")
	r.Muted("saved")
	r.Warning("2 diagnostics")

	assert.Equal(t, "## Floors\n\n- **Columns**: 3\n**converted**\n_saved_\n", out.String())
	assert.Contains(t, errOut.String(), "2 diagnostics")
	assert.False(t, ansi.MatchString(out.String()+errOut.String()))
}

func TestTextOutputWithoutColor(t *testing.T) {
	r, out, _ := newBuffered(ModeText, false)

	r.Header(1, "Summary")
	r.KeyValue("Floors", 2)
	r.Success("done")

	assert.Contains(t, out.String(), "Summary")
	assert.Contains(t, out.String(), "Floors:")
	assert.Contains(t, out.String(), "✓ done")
	assert.False(t, ansi.MatchString(out.String()))
}

func TestJSON(t *testing.T) {
	r, out, _ := newBuffered(ModeJSON, false)
	require.NoError(t, r.JSON(map[string]int{"floors": 2}))
	assert.JSONEq(t, `{"floors":2}`, out.String())
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "# Title", FormatHeader(0, "Title"))
	assert.Equal(t, "### Sub", FormatHeader(3, "Sub"))
	assert.Equal(t, "- **File**: a.st4", FormatKeyValue("File", "a.st4"))
}
