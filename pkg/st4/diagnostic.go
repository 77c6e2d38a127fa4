package st4

import "fmt"

// Kind classifies a diagnostic.
type Kind int

// Diagnostic kinds.
const (
	// KindMalformed marks a line that could not be parsed and was skipped.
	KindMalformed Kind = iota
	// KindReference marks a record whose axis, floor or type reference did
	// not resolve.
	KindReference
)

func (k Kind) String() string {
	if k == KindReference {
		return "reference"
	}
	return "malformed"
}

// MarshalText renders the kind by name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Diagnostic describes a recovered problem. Line is the physical line of
// the offending record, or 0 when no single line is at fault.
type Diagnostic struct {
	Kind    Kind    `json:"kind"`
	Line    int     `json:"line,omitempty"`
	Section Section `json:"section"`
	Content string  `json:"content,omitempty"`
	Message string  `json:"message"`
}

func (d Diagnostic) Error() string {
	if d.Line > 0 {
		return fmt.Sprintf("line %d: %s", d.Line, d.Message)
	}
	return d.Message
}

// Malformed creates a diagnostic for a rejected line.
func Malformed(line int, section Section, content string, err error) Diagnostic {
	return Diagnostic{
		Kind:    KindMalformed,
		Line:    line,
		Section: section,
		Content: content,
		Message: err.Error(),
	}
}

// Referencef creates a diagnostic for an unresolved reference.
func Referencef(line int, section Section, format string, args ...any) Diagnostic {
	return Diagnostic{
		Kind:    KindReference,
		Line:    line,
		Section: section,
		Message: fmt.Sprintf(format, args...),
	}
}
