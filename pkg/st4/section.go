package st4

import "strings"

// Section identifies the part of an ST4 file a line belongs to.
type Section int

// Sections recognized by the scanner. SectionOther covers every header the
// scanner does not read.
const (
	SectionNone Section = iota
	SectionStory
	SectionAxisData
	SectionColumnAxisData
	SectionColumnsData
	SectionBeamsData
	SectionFloorsData
	SectionSlabFoundations
	SectionOther
)

var sectionHeaders = []struct {
	header  string
	section Section
}{
	{"/Story/", SectionStory},
	{"/Axis data/", SectionAxisData},
	{"/Column axis data/", SectionColumnAxisData},
	{"/Columns Data/", SectionColumnsData},
	{"/Beams Data/", SectionBeamsData},
	{"/Floors Data/", SectionFloorsData},
	{"/Slab foundations/", SectionSlabFoundations},
}

// ClassifyLine reports whether a trimmed line is a section header and, if
// so, which section it opens. Header names match case-insensitively; any
// other line starting with "/" opens SectionOther.
func ClassifyLine(trimmed string) (Section, bool) {
	if !strings.HasPrefix(trimmed, "/") {
		return SectionNone, false
	}
	for _, h := range sectionHeaders {
		if strings.EqualFold(trimmed, h.header) {
			return h.section, true
		}
	}
	return SectionOther, true
}

// String returns the header text of the section without slashes.
func (s Section) String() string {
	switch s {
	case SectionNone:
		return "none"
	case SectionOther:
		return "other"
	}
	for _, h := range sectionHeaders {
		if h.section == s {
			return strings.Trim(h.header, "/")
		}
	}
	return "unknown"
}

// MarshalText renders the section by name.
func (s Section) MarshalText() ([]byte, error) { return []byte(s.String()), nil }
