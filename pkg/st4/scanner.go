package st4

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// titleLine is the physical line that may carry the project title.
const titleLine = 3

// maxLineBytes bounds a single physical line.
const maxLineBytes = 4 * 1024 * 1024

var errStoryIncomplete = errors.New("story block dropped before its third line")

// Scanner drives the section handlers one physical line at a time.
// The zero value is not usable; call NewScanner.
type Scanner struct {
	section Section
	lineNo  int

	storyBuf   []string
	storyStart int
	labeler    AxisLabeler

	pendingFoundation     string
	pendingFoundationLine int
	hasPendingFoundation  bool

	result *ScanResult
}

// NewScanner creates a scanner positioned before the first line.
func NewScanner() *Scanner {
	return &Scanner{
		result: &ScanResult{ColumnTypes: NewColumnCatalog()},
	}
}

// Scan reads r to the end and returns the raw records of the file.
// Only read failures and cancellation are returned as errors; malformed
// lines are reported in ScanResult.Diagnostics.
func Scan(ctx context.Context, r io.Reader) (*ScanResult, error) {
	s := NewScanner()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.Line(strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read line %d: %w", s.lineNo+1, err)
	}
	return s.Finish(), nil
}

// Line consumes one physical line without its terminator.
func (s *Scanner) Line(raw string) {
	s.lineNo++
	trimmed := strings.TrimSpace(raw)

	if s.lineNo == titleLine {
		if before, _, found := strings.Cut(trimmed, "["); found {
			s.result.Title = strings.TrimSpace(before)
		}
	}

	if section, ok := ClassifyLine(trimmed); ok {
		s.enter(section)
		return
	}

	if err := s.dispatch(trimmed); err != nil {
		s.result.Diagnostics = append(s.result.Diagnostics, Malformed(s.lineNo, s.section, trimmed, err))
	}
}

// Finish closes the active section and returns the result.
func (s *Scanner) Finish() *ScanResult {
	s.leave()
	s.result.Lines = s.lineNo
	return s.result
}

// Section returns the active section.
func (s *Scanner) Section() Section { return s.section }

func (s *Scanner) enter(section Section) {
	s.leave()
	s.section = section
	switch section {
	case SectionAxisData:
		s.labeler.Reset()
	case SectionSlabFoundations:
		s.clearPendingFoundation()
	}
}

// leave drops state that must not leak into the next section.
func (s *Scanner) leave() {
	if s.section == SectionStory && len(s.storyBuf) > 0 {
		s.result.Diagnostics = append(s.result.Diagnostics, Diagnostic{
			Kind:    KindMalformed,
			Line:    s.storyStart,
			Section: SectionStory,
			Content: strings.Join(s.storyBuf, " | "),
			Message: errStoryIncomplete.Error(),
		})
	}
	s.storyBuf = s.storyBuf[:0]
}

func (s *Scanner) dispatch(line string) error {
	if line == "" && s.section != SectionStory {
		return nil
	}
	switch s.section {
	case SectionStory:
		return s.scanStory(line)
	case SectionAxisData:
		return s.scanAxis(line)
	case SectionColumnsData:
		return s.scanColumnType(line)
	case SectionColumnAxisData:
		return s.scanPlacement(line)
	case SectionBeamsData:
		return s.scanBeam(line)
	case SectionFloorsData:
		return s.scanSlab(line)
	case SectionSlabFoundations:
		return s.scanFoundation(line)
	}
	return nil
}

// scanStory buffers name, number and data lines. A bad block is dropped
// whole so the next block starts cleanly.
func (s *Scanner) scanStory(line string) error {
	if len(s.storyBuf) == 0 {
		s.storyStart = s.lineNo
	}
	s.storyBuf = append(s.storyBuf, line)
	if len(s.storyBuf) < 3 {
		return nil
	}

	name, numField, dataLine := s.storyBuf[0], s.storyBuf[1], s.storyBuf[2]
	s.storyBuf = s.storyBuf[:0]

	number, err := parseInteger(numField, "story number")
	if err != nil {
		return err
	}
	data := splitFields(dataLine)
	if err := requireFields(data, 3, "story data"); err != nil {
		return err
	}
	elevation, err := parseDecimal(data[0], "elevation")
	if err != nil {
		return err
	}
	height, err := parseDecimal(data[2], "height")
	if err != nil {
		return err
	}

	s.result.Stories = append(s.result.Stories, StoryRecord{
		Line:      s.storyStart,
		Name:      name,
		Number:    number,
		Elevation: elevation,
		Height:    height,
	})
	return nil
}

func (s *Scanner) scanAxis(line string) error {
	if strings.HasPrefix(line, ".") {
		return nil
	}
	fields := splitFields(line)
	if err := requireFields(fields, 2, "axis data"); err != nil {
		return err
	}
	coord, err := parseDecimal(fields[1], "axis coordinate")
	if err != nil {
		return err
	}

	axisType, label := s.labeler.Next(coord)
	s.result.Axes = append(s.result.Axes, AxisRecord{
		Line:       s.lineNo,
		Type:       axisType,
		Label:      label,
		Coordinate: coord,
	})
	return nil
}

func (s *Scanner) scanColumnType(line string) error {
	if strings.HasPrefix(line, "0,") {
		return nil
	}
	fields := splitFields(line)
	if err := requireFields(fields, 3, "column type"); err != nil {
		return err
	}
	width, err := parseDecimal(fields[1], "column width")
	if err != nil {
		return err
	}
	height, err := parseDecimal(fields[2], "column height")
	if err != nil {
		return err
	}

	s.result.ColumnTypes.Add(ColumnType{
		Line:     s.lineNo,
		Label:    strings.TrimSpace(fields[0]),
		WidthCm:  width,
		HeightCm: height,
	})
	return nil
}

func (s *Scanner) scanPlacement(line string) error {
	fields := splitFields(line)
	if err := requireFields(fields, 5, "column placement"); err != nil {
		return err
	}
	floor, err := parseInteger(fields[0], "floor number")
	if err != nil {
		return err
	}
	offsetX, err := parseDecimal(fields[3], "x offset")
	if err != nil {
		return err
	}
	offsetY, err := parseDecimal(fields[4], "y offset")
	if err != nil {
		return err
	}

	s.result.Placements = append(s.result.Placements, ColumnPlacement{
		Line:        s.lineNo,
		FloorNumber: floor,
		SRef:        strings.TrimSpace(fields[1]),
		ARef:        strings.TrimSpace(fields[2]),
		OffsetXmm:   offsetX,
		OffsetYmm:   offsetY,
	})
	return nil
}

func (s *Scanner) scanBeam(line string) error {
	if strings.HasPrefix(line, "0,") {
		return nil
	}
	f := splitFields(line)
	if err := requireFields(f, 15, "beam"); err != nil {
		return err
	}

	rec := BeamRecord{
		Line:             s.lineNo,
		Label:            strings.TrimSpace(f[0]),
		PropertyCode:     strings.TrimSpace(f[3]),
		PlaneAxisRef:     strings.TrimSpace(f[4]),
		StartSpanAxisRef: strings.TrimSpace(f[5]),
		EndSpanAxisRef:   strings.TrimSpace(f[6]),
	}
	var err error
	if rec.WidthCm, err = parseDecimal(f[1], "beam width"); err != nil {
		return err
	}
	if rec.HeightCm, err = parseDecimal(f[2], "beam height"); err != nil {
		return err
	}
	if rec.Eccentricity, err = parseDecimal(f[7], "eccentricity"); err != nil {
		return err
	}
	flag, err := parseInteger(strings.TrimSpace(f[14]), "panel flag")
	if err != nil {
		return err
	}
	rec.IsPanel = flag == 1
	// Z offsets sit in fields 8 and 12, always present on a full record.
	if rec.StartZOffsetCm, err = parseDecimal(f[8], "start z offset"); err != nil {
		return err
	}
	if rec.EndZOffsetCm, err = parseDecimal(f[12], "end z offset"); err != nil {
		return err
	}

	s.result.Beams = append(s.result.Beams, rec)
	return nil
}

func (s *Scanner) scanSlab(line string) error {
	if strings.HasPrefix(line, "0,") {
		return nil
	}
	f := splitFields(line)
	if err := requireFields(f, 12, "slab"); err != nil {
		return err
	}
	thickness, err := parseDecimal(f[1], "slab thickness")
	if err != nil {
		return err
	}

	s.result.Slabs = append(s.result.Slabs, SlabRecord{
		Line:        s.lineNo,
		Label:       strings.TrimSpace(f[0]),
		ThicknessCm: thickness,
		BoundaryAxisRefs: []string{
			strings.TrimSpace(f[8]),
			strings.TrimSpace(f[9]),
			strings.TrimSpace(f[10]),
			strings.TrimSpace(f[11]),
		},
	})
	return nil
}

// scanFoundation pairs a PL label line with the next data line. A short
// data line consumes the label; a line with a bad number leaves it pending.
func (s *Scanner) scanFoundation(line string) error {
	if strings.HasPrefix(line, "PL") {
		s.pendingFoundation = strings.Fields(line)[0]
		s.pendingFoundationLine = s.lineNo
		s.hasPendingFoundation = true
		return nil
	}
	if !s.hasPendingFoundation || !strings.Contains(line, ",") {
		return nil
	}

	label := s.pendingFoundation
	f := splitFields(line)
	if err := requireFields(f, 6, "foundation data"); err != nil {
		s.clearPendingFoundation()
		return err
	}
	thickness, err := parseDecimal(f[0], "foundation thickness")
	if err != nil {
		return err
	}
	bottom, err := parseDecimal(f[5], "foundation bottom elevation")
	if err != nil {
		return err
	}
	s.clearPendingFoundation()

	s.result.Foundations = append(s.result.Foundations, FoundationRecord{
		Line:                 s.lineNo,
		Label:                label,
		ThicknessCm:          thickness,
		BottomElevationMetre: bottom,
		BoundaryAxisRefs:     []string{f[1], f[2], f[3], f[4]},
	})
	return nil
}

func (s *Scanner) clearPendingFoundation() {
	s.pendingFoundation = ""
	s.pendingFoundationLine = 0
	s.hasPendingFoundation = false
}
