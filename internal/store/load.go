package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/leapstack-labs/st4conv/pkg/core"
)

// LoadProject rebuilds a saved project with its floors and elements.
func (s *SQLiteStore) LoadProject(ctx context.Context, id string) (*core.Project, error) {
	c, err := s.GetConversion(ctx, id)
	if err != nil {
		return nil, err
	}

	p := core.NewProject(c.FileName)
	p.Title = c.Title

	loaders := []func(context.Context, string, *core.Project) error{
		s.loadFloors,
		s.loadAxes,
		s.loadColumns,
		s.loadBeams,
		s.loadPanels,
		s.loadSlabs,
		s.loadFoundations,
	}
	for _, load := range loaders {
		if err := load(ctx, id, p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (s *SQLiteStore) query(ctx context.Context, what, q, id string, scan func(*sql.Rows) error) error {
	rows, err := s.db.QueryContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", what, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("failed to scan %s: %w", what, err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to load %s: %w", what, err)
	}
	return nil
}

func (s *SQLiteStore) loadFloors(ctx context.Context, id string, p *core.Project) error {
	return s.query(ctx, "floors",
		`SELECT id, name, original_number, elevation, height FROM floors WHERE conversion_id = ? ORDER BY id`, id,
		func(rows *sql.Rows) error {
			var (
				fid          int64
				name         string
				number       int
				elev, height float64
			)
			if err := rows.Scan(&fid, &name, &number, &elev, &height); err != nil {
				return err
			}
			p.AddFloor(core.NewFloor(fid, name, number, elev, height))
			return nil
		})
}

func (s *SQLiteStore) loadAxes(ctx context.Context, id string, p *core.Project) error {
	return s.query(ctx, "axes",
		`SELECT id, type, label, coordinate FROM axes WHERE conversion_id = ? ORDER BY id`, id,
		func(rows *sql.Rows) error {
			var a core.Axis
			var typ string
			if err := rows.Scan(&a.ID, &typ, &a.Label, &a.Coordinate); err != nil {
				return err
			}
			a.Type = core.AxisType(typ)
			p.AddAxis(&a)
			return nil
		})
}

func (s *SQLiteStore) loadColumns(ctx context.Context, id string, p *core.Project) error {
	return s.query(ctx, "columns",
		`SELECT id, floor_id, st4_sid, st4_aid, type_label, width_cm, height_cm, position_x, position_y,
		        offset_x_mm, offset_y_mm, x_axis_label, y_axis_label
		   FROM columns WHERE conversion_id = ? ORDER BY id`, id,
		func(rows *sql.Rows) error {
			var c core.StructuralColumn
			var floorID int64
			if err := rows.Scan(&c.ID, &floorID, &c.SourceSID, &c.SourceAID, &c.TypeLabel,
				&c.DimensionWidthCm, &c.DimensionHeightCm, &c.PositionXMetre, &c.PositionYMetre,
				&c.OffsetXmm, &c.OffsetYmm, &c.XAxisLabel, &c.YAxisLabel); err != nil {
				return err
			}
			if x := p.AxisByLabel(c.XAxisLabel); x != nil {
				c.XAxisID = x.ID
			}
			if y := p.AxisByLabel(c.YAxisLabel); y != nil {
				c.YAxisID = y.ID
			}
			if f := p.FloorByID(floorID); f != nil {
				f.AddColumn(&c)
			}
			p.AddColumn(&c)
			return nil
		})
}

func (s *SQLiteStore) loadBeams(ctx context.Context, id string, p *core.Project) error {
	return s.query(ctx, "beams",
		`SELECT id, floor_id, label, width_cm, height_cm, property_code, plane_axis_ref, start_span_axis_ref,
		        end_span_axis_ref, start_x, start_y, end_x, end_y, start_z_offset_cm, end_z_offset_cm
		   FROM beams WHERE conversion_id = ? ORDER BY id`, id,
		func(rows *sql.Rows) error {
			var b core.Beam
			var floorID sql.NullInt64
			if err := rows.Scan(&b.ID, &floorID, &b.Label, &b.WidthCm, &b.HeightCm, &b.PropertyCode,
				&b.PlaneAxisRef, &b.StartSpanAxisRef, &b.EndSpanAxisRef,
				&b.StartXMetre, &b.StartYMetre, &b.EndXMetre, &b.EndYMetre,
				&b.StartZOffsetCm, &b.EndZOffsetCm); err != nil {
				return err
			}
			if f := p.FloorByID(floorID.Int64); floorID.Valid && f != nil {
				f.AddBeam(&b)
			}
			p.AddBeam(&b)
			return nil
		})
}

func (s *SQLiteStore) loadPanels(ctx context.Context, id string, p *core.Project) error {
	return s.query(ctx, "panels",
		`SELECT id, floor_id, label, width_cm, height_cm, property_code,
		        start_x, start_y, end_x, end_y, start_z_offset_cm, end_z_offset_cm
		   FROM panels WHERE conversion_id = ? ORDER BY id`, id,
		func(rows *sql.Rows) error {
			var pn core.Panel
			var floorID sql.NullInt64
			if err := rows.Scan(&pn.ID, &floorID, &pn.Label, &pn.WidthCm, &pn.HeightCm, &pn.PropertyCode,
				&pn.StartXMetre, &pn.StartYMetre, &pn.EndXMetre, &pn.EndYMetre,
				&pn.StartZOffsetCm, &pn.EndZOffsetCm); err != nil {
				return err
			}
			if f := p.FloorByID(floorID.Int64); floorID.Valid && f != nil {
				f.AddPanel(&pn)
			}
			p.AddPanel(&pn)
			return nil
		})
}

func (s *SQLiteStore) loadSlabs(ctx context.Context, id string, p *core.Project) error {
	return s.query(ctx, "slabs",
		`SELECT id, floor_id, label, thickness_cm, boundary_refs FROM slabs WHERE conversion_id = ? ORDER BY id`, id,
		func(rows *sql.Rows) error {
			var sl core.Slab
			var floorID int64
			var refs string
			if err := rows.Scan(&sl.ID, &floorID, &sl.Label, &sl.ThicknessCm, &refs); err != nil {
				return err
			}
			if err := json.Unmarshal([]byte(refs), &sl.BoundaryAxisRefs); err != nil {
				return fmt.Errorf("invalid boundary refs for slab %s: %w", sl.Label, err)
			}
			if f := p.FloorByID(floorID); f != nil {
				f.AddSlab(&sl)
			}
			return nil
		})
}

func (s *SQLiteStore) loadFoundations(ctx context.Context, id string, p *core.Project) error {
	return s.query(ctx, "foundation slabs",
		`SELECT id, label, thickness_cm, elevation_metre, boundary_refs FROM foundation_slabs WHERE conversion_id = ? ORDER BY id`, id,
		func(rows *sql.Rows) error {
			var fs core.FoundationSlab
			var refs string
			if err := rows.Scan(&fs.ID, &fs.Label, &fs.ThicknessCm, &fs.ElevationMetre, &refs); err != nil {
				return err
			}
			if err := json.Unmarshal([]byte(refs), &fs.BoundaryAxisRefs); err != nil {
				return fmt.Errorf("invalid boundary refs for foundation %s: %w", fs.Label, err)
			}
			p.AddFoundationSlab(&fs)
			return nil
		})
}
