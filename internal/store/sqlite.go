package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/leapstack-labs/st4conv/pkg/core"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
	now    func() time.Time
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a store. Call Open before use.
// A nil logger discards output.
func NewSQLiteStore(logger *slog.Logger) *SQLiteStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLiteStore{logger: logger, now: time.Now}
}

// NewWithDB wraps an existing connection. The schema is not migrated.
func NewWithDB(db *sql.DB, logger *slog.Logger) *SQLiteStore {
	s := NewSQLiteStore(logger)
	s.db = db
	return s
}

// Open opens the database at path, creating its directory, and migrates
// the schema. Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(ctx context.Context, path string) error {
	dsn := ":memory:?_pragma=foreign_keys(1)"
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return fmt.Errorf("failed to create store directory: %w", err)
			}
		}
		dsn = path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if path == ":memory:" {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	s.path = path
	s.logger.Debug("store opened", "path", path)
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveProject writes a project and its elements in one transaction and
// returns the new conversion ID.
func (s *SQLiteStore) SaveProject(ctx context.Context, p *core.Project, diagnostics int) (string, error) {
	if s.db == nil {
		return "", errNotOpened
	}

	id := uuid.NewString()
	stats := p.Stats()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO conversions (`+conversionColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.FileName, p.Title, s.now().UTC().Format(time.RFC3339Nano),
		stats.Floors, stats.Axes, stats.Columns, stats.Beams, stats.Panels, stats.Slabs, stats.FoundationSlabs,
		stats.OrphanBeams, stats.OrphanPanels, diagnostics,
	); err != nil {
		return "", fmt.Errorf("failed to insert conversion: %w", err)
	}

	if err := insertElements(ctx, tx, id, p); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit conversion: %w", err)
	}

	s.logger.Info("conversion saved", "id", id, "file", p.FileName)
	return id, nil
}

func insertElements(ctx context.Context, tx *sql.Tx, id string, p *core.Project) error {
	for _, f := range p.Floors {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO floors (conversion_id, id, name, original_number, elevation, height) VALUES (?, ?, ?, ?, ?, ?)`,
			id, f.ID, f.Name, f.OriginalNumber, f.Elevation, f.Height,
		); err != nil {
			return fmt.Errorf("failed to insert floor %s: %w", f.Name, err)
		}
		for _, sl := range f.Slabs {
			refs, err := json.Marshal(sl.BoundaryAxisRefs)
			if err != nil {
				return fmt.Errorf("failed to encode slab refs: %w", err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO slabs (conversion_id, id, floor_id, label, thickness_cm, boundary_refs) VALUES (?, ?, ?, ?, ?, ?)`,
				id, sl.ID, f.ID, sl.Label, sl.ThicknessCm, string(refs),
			); err != nil {
				return fmt.Errorf("failed to insert slab %s: %w", sl.Label, err)
			}
		}
	}

	for _, a := range p.Axes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO axes (conversion_id, id, type, label, coordinate) VALUES (?, ?, ?, ?, ?)`,
			id, a.ID, string(a.Type), a.Label, a.Coordinate,
		); err != nil {
			return fmt.Errorf("failed to insert axis %s: %w", a.Label, err)
		}
	}

	for _, c := range p.Columns {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO columns (conversion_id, id, floor_id, st4_sid, st4_aid, type_label, width_cm, height_cm,
			   position_x, position_y, offset_x_mm, offset_y_mm, x_axis_label, y_axis_label)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, c.ID, c.FloorID, c.SourceSID, c.SourceAID, c.TypeLabel, c.DimensionWidthCm, c.DimensionHeightCm,
			c.PositionXMetre, c.PositionYMetre, c.OffsetXmm, c.OffsetYmm, c.XAxisLabel, c.YAxisLabel,
		); err != nil {
			return fmt.Errorf("failed to insert column %d: %w", c.ID, err)
		}
	}

	for _, b := range p.Beams {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO beams (conversion_id, id, floor_id, label, width_cm, height_cm, property_code,
			   plane_axis_ref, start_span_axis_ref, end_span_axis_ref, start_x, start_y, end_x, end_y,
			   start_z_offset_cm, end_z_offset_cm)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, b.ID, nullableID(b.FloorID), b.Label, b.WidthCm, b.HeightCm, b.PropertyCode,
			b.PlaneAxisRef, b.StartSpanAxisRef, b.EndSpanAxisRef, b.StartXMetre, b.StartYMetre, b.EndXMetre, b.EndYMetre,
			b.StartZOffsetCm, b.EndZOffsetCm,
		); err != nil {
			return fmt.Errorf("failed to insert beam %s: %w", b.Label, err)
		}
	}

	for _, pn := range p.Panels {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO panels (conversion_id, id, floor_id, label, width_cm, height_cm, property_code,
			   start_x, start_y, end_x, end_y, start_z_offset_cm, end_z_offset_cm)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, pn.ID, nullableID(pn.FloorID), pn.Label, pn.WidthCm, pn.HeightCm, pn.PropertyCode,
			pn.StartXMetre, pn.StartYMetre, pn.EndXMetre, pn.EndYMetre, pn.StartZOffsetCm, pn.EndZOffsetCm,
		); err != nil {
			return fmt.Errorf("failed to insert panel %s: %w", pn.Label, err)
		}
	}

	for _, fs := range p.FoundationSlabs {
		refs, err := json.Marshal(fs.BoundaryAxisRefs)
		if err != nil {
			return fmt.Errorf("failed to encode foundation refs: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO foundation_slabs (conversion_id, id, label, thickness_cm, elevation_metre, boundary_refs) VALUES (?, ?, ?, ?, ?, ?)`,
			id, fs.ID, fs.Label, fs.ThicknessCm, fs.ElevationMetre, string(refs),
		); err != nil {
			return fmt.Errorf("failed to insert foundation slab %s: %w", fs.Label, err)
		}
	}
	return nil
}

func nullableID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}

const conversionColumns = `id, file_name, title, created_at, floors, axes, columns, beams, panels, slabs,
	foundation_slabs, orphan_beams, orphan_panels, diagnostics`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConversion(row rowScanner) (*Conversion, error) {
	var c Conversion
	var created string
	if err := row.Scan(&c.ID, &c.FileName, &c.Title, &created,
		&c.Stats.Floors, &c.Stats.Axes, &c.Stats.Columns, &c.Stats.Beams, &c.Stats.Panels,
		&c.Stats.Slabs, &c.Stats.FoundationSlabs, &c.Stats.OrphanBeams, &c.Stats.OrphanPanels,
		&c.Diagnostics); err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at %q: %w", created, err)
	}
	c.CreatedAt = t
	return &c, nil
}

// ListConversions returns saved conversions, newest first. A limit of 0
// or less returns all of them.
func (s *SQLiteStore) ListConversions(ctx context.Context, limit int) ([]Conversion, error) {
	if s.db == nil {
		return nil, errNotOpened
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+conversionColumns+` FROM conversions ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Conversion
	for rows.Next() {
		c, err := scanConversion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conversion: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// GetConversion returns one conversion summary.
func (s *SQLiteStore) GetConversion(ctx context.Context, id string) (*Conversion, error) {
	if s.db == nil {
		return nil, errNotOpened
	}

	c, err := scanConversion(s.db.QueryRowContext(ctx,
		`SELECT `+conversionColumns+` FROM conversions WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversion: %w", err)
	}
	return c, nil
}
