// Package store persists converted projects in SQLite.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/leapstack-labs/st4conv/pkg/core"
)

var errNotOpened = errors.New("database not opened")

// ErrNotFound is returned when a conversion does not exist.
var ErrNotFound = errors.New("conversion not found")

// Conversion summarizes one saved project.
type Conversion struct {
	ID          string     `json:"id"`
	FileName    string     `json:"fileName"`
	Title       string     `json:"title"`
	CreatedAt   time.Time  `json:"createdAt"`
	Stats       core.Stats `json:"stats"`
	Diagnostics int        `json:"diagnostics"`
}

// Store saves and loads converted projects.
type Store interface {
	SaveProject(ctx context.Context, p *core.Project, diagnostics int) (string, error)
	ListConversions(ctx context.Context, limit int) ([]Conversion, error)
	GetConversion(ctx context.Context, id string) (*Conversion, error)
	LoadProject(ctx context.Context, id string) (*core.Project, error)
	Close() error
}
