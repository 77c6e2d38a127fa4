// Package assembler turns the raw records of an ST4 scan into a
// cross-referenced project.
//
// Assembly runs strictly after the scan. It attaches floors and axes,
// expands column placements across floors, derives beam and panel
// geometry, places slabs on their floors and computes foundation
// elevations. Reference misses never fail the pass; they are returned as
// diagnostics.
package assembler

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/leapstack-labs/st4conv/pkg/core"
	"github.com/leapstack-labs/st4conv/pkg/geometry"
	"github.com/leapstack-labs/st4conv/pkg/st4"
)

// Assembler builds projects. Identifier sequences start at 1 for every
// entity type and restart on each Assemble call.
// An Assembler is not safe for concurrent use.
type Assembler struct {
	logger *slog.Logger
	seq    sequences
	diags  []st4.Diagnostic
}

type sequences struct {
	floor, axis, column, beam, panel, slab, foundation int64
}

func next(n *int64) int64 {
	*n++
	return *n
}

// New creates an assembler. A nil logger discards output.
func New(logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Assembler{logger: logger}
}

// Assemble builds the project for one scan. The returned diagnostics list
// the scan's own diagnostics followed by the reference misses found here.
func (a *Assembler) Assemble(fileName string, scan *st4.ScanResult) (*core.Project, []st4.Diagnostic) {
	a.seq = sequences{}
	a.diags = append([]st4.Diagnostic(nil), scan.Diagnostics...)

	p := core.NewProject(fileName)
	p.Title = scan.Title

	a.attachFloors(p, scan.Stories)
	a.attachAxes(p, scan.Axes)
	resolver := st4.NewAxisResolver(p.Axes)

	a.placeColumns(p, resolver, scan.Placements, scan.ColumnTypes)
	a.placeBeams(p, resolver, scan.Beams)
	a.placeSlabs(p, scan.Slabs)
	a.placeFoundations(p, scan.Foundations)

	a.logger.Debug("project assembled",
		"file", fileName,
		"floors", len(p.Floors),
		"axes", len(p.Axes),
		"columns", len(p.Columns),
		"beams", len(p.Beams),
		"panels", len(p.Panels),
		"foundation_slabs", len(p.FoundationSlabs),
	)

	diags := a.diags
	a.diags = nil
	return p, diags
}

func (a *Assembler) attachFloors(p *core.Project, stories []st4.StoryRecord) {
	for _, s := range stories {
		p.AddFloor(core.NewFloor(next(&a.seq.floor), s.Name, s.Number, s.Elevation, s.Height))
	}
}

func (a *Assembler) attachAxes(p *core.Project, axes []st4.AxisRecord) {
	for _, r := range axes {
		p.AddAxis(&core.Axis{
			ID:         next(&a.seq.axis),
			Type:       r.Type,
			Label:      r.Label,
			Coordinate: r.Coordinate,
		})
	}
}

// placeColumns pairs the i-th placement with the i-th catalog entry and
// generates one column per floor whose own type label exists.
func (a *Assembler) placeColumns(p *core.Project, resolver *st4.AxisResolver, placements []st4.ColumnPlacement, catalog *st4.ColumnCatalog) {
	for i, rec := range placements {
		base, ok := catalog.At(i)
		if !ok {
			a.reference(rec.Line, st4.SectionColumnAxisData, slog.LevelDebug,
				"column placement %d has no type catalog entry", i+1)
			continue
		}
		if base.Label == "" {
			a.reference(rec.Line, st4.SectionColumnAxisData, slog.LevelWarn,
				"column type at position %d has an empty label", i+1)
			continue
		}

		xAxis, okX := resolver.Resolve(rec.SRef)
		yAxis, okY := resolver.Resolve(rec.ARef)
		if !okX || !okY {
			a.reference(rec.Line, st4.SectionColumnAxisData, slog.LevelDebug,
				"column placement %s/%s: axis not resolved", rec.SRef, rec.ARef)
			continue
		}

		suffix := string([]rune(base.Label)[1:])
		for _, floor := range p.Floors {
			if floor.OriginalNumber == 0 {
				continue
			}
			typ, ok := catalog.Lookup(strconv.Itoa(floor.OriginalNumber) + suffix)
			if !ok {
				continue
			}

			x, y := geometry.ColumnCenter(xAxis.Coordinate, yAxis.Coordinate,
				typ.WidthCm, typ.HeightCm, rec.OffsetXmm, rec.OffsetYmm)
			col := &core.StructuralColumn{
				ID:                next(&a.seq.column),
				SourceSID:         rec.SRef,
				SourceAID:         rec.ARef,
				TypeLabel:         typ.Label,
				DimensionWidthCm:  typ.WidthCm,
				DimensionHeightCm: typ.HeightCm,
				PositionXMetre:    x,
				PositionYMetre:    y,
				OffsetXmm:         rec.OffsetXmm,
				OffsetYmm:         rec.OffsetYmm,
				XAxisID:           xAxis.ID,
				YAxisID:           yAxis.ID,
				XAxisLabel:        xAxis.Label,
				YAxisLabel:        yAxis.Label,
			}
			floor.AddColumn(col)
			p.AddColumn(col)
		}
	}
}

// placeBeams builds beams and panels. Elements keep zero coordinates when
// any of their three axes is missing, and stay on the project alone when
// their floor is unknown.
func (a *Assembler) placeBeams(p *core.Project, resolver *st4.AxisResolver, beams []st4.BeamRecord) {
	for _, rec := range beams {
		seg, resolved := a.segment(resolver, rec)
		if !resolved {
			a.reference(rec.Line, st4.SectionBeamsData, slog.LevelDebug,
				"element %q: axis not resolved, geometry left at zero", rec.Label)
		}

		floor := a.floorOf(p, rec.Label)
		if floor == nil {
			a.reference(rec.Line, st4.SectionBeamsData, slog.LevelDebug,
				"element %q: no floor matches its label", rec.Label)
		}

		if rec.IsPanel {
			panel := &core.Panel{
				ID:             next(&a.seq.panel),
				Label:          rec.Label,
				WidthCm:        rec.WidthCm,
				HeightCm:       rec.HeightCm,
				PropertyCode:   rec.PropertyCode,
				StartXMetre:    seg.StartX,
				StartYMetre:    seg.StartY,
				EndXMetre:      seg.EndX,
				EndYMetre:      seg.EndY,
				StartZOffsetCm: rec.StartZOffsetCm,
				EndZOffsetCm:   rec.EndZOffsetCm,
			}
			p.AddPanel(panel)
			if floor != nil {
				floor.AddPanel(panel)
			}
			continue
		}

		beam := &core.Beam{
			ID:               next(&a.seq.beam),
			Label:            rec.Label,
			WidthCm:          rec.WidthCm,
			HeightCm:         rec.HeightCm,
			PropertyCode:     rec.PropertyCode,
			PlaneAxisRef:     rec.PlaneAxisRef,
			StartSpanAxisRef: rec.StartSpanAxisRef,
			EndSpanAxisRef:   rec.EndSpanAxisRef,
			StartXMetre:      seg.StartX,
			StartYMetre:      seg.StartY,
			EndXMetre:        seg.EndX,
			EndYMetre:        seg.EndY,
			StartZOffsetCm:   rec.StartZOffsetCm,
			EndZOffsetCm:     rec.EndZOffsetCm,
		}
		p.AddBeam(beam)
		if floor != nil {
			floor.AddBeam(beam)
		}
	}
}

func (a *Assembler) segment(resolver *st4.AxisResolver, rec st4.BeamRecord) (geometry.Segment, bool) {
	plane, ok1 := resolver.Resolve(rec.PlaneAxisRef)
	start, ok2 := resolver.Resolve(rec.StartSpanAxisRef)
	end, ok3 := resolver.Resolve(rec.EndSpanAxisRef)
	if !ok1 || !ok2 || !ok3 {
		return geometry.Segment{}, false
	}

	dir := geometry.AlongX
	if plane.Type == core.AxisY {
		dir = geometry.AlongY
	}
	return geometry.SpanEndpoints(dir, plane.Coordinate, start.Coordinate, end.Coordinate,
		rec.WidthCm, rec.Eccentricity), true
}

// placeSlabs drops every slab whose label does not lead to a floor. Every
// scanned slab takes an id, so dropped slabs leave gaps in the sequence.
func (a *Assembler) placeSlabs(p *core.Project, slabs []st4.SlabRecord) {
	for _, rec := range slabs {
		id := next(&a.seq.slab)
		floor := a.floorOf(p, rec.Label)
		if floor == nil {
			a.reference(rec.Line, st4.SectionFloorsData, slog.LevelWarn,
				"slab %q dropped: no floor matches its label", rec.Label)
			continue
		}
		floor.AddSlab(&core.Slab{
			ID:               id,
			Label:            rec.Label,
			ThicknessCm:      rec.ThicknessCm,
			BoundaryAxisRefs: append([]string(nil), rec.BoundaryAxisRefs...),
		})
	}
}

func (a *Assembler) placeFoundations(p *core.Project, foundations []st4.FoundationRecord) {
	for _, rec := range foundations {
		p.AddFoundationSlab(&core.FoundationSlab{
			ID:               next(&a.seq.foundation),
			Label:            rec.Label,
			ThicknessCm:      rec.ThicknessCm,
			ElevationMetre:   rec.BottomElevationMetre + geometry.CmToMetre(rec.ThicknessCm),
			BoundaryAxisRefs: append([]string(nil), rec.BoundaryAxisRefs...),
		})
	}
}

// floorOf resolves the floor named by the leading digit of an element label.
func (a *Assembler) floorOf(p *core.Project, label string) *core.Floor {
	number, ok := st4.LeadingFloorNumber(label)
	if !ok {
		return nil
	}
	return p.FloorByNumber(number)
}

func (a *Assembler) reference(line int, section st4.Section, level slog.Level, format string, args ...any) {
	d := st4.Referencef(line, section, format, args...)
	a.diags = append(a.diags, d)
	a.logger.Log(context.Background(), level, d.Message, "line", line, "section", section.String())
}
