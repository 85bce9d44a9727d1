// Package store persists the flattened point catalog to a relational
// database, either SQLite for local use or PostgreSQL for shared deployments.
package store

import (
	"context"
	"time"
)

// PointRow is the flattened relational form of one dive point, denormalized
// with its ancestor names so rows are self-describing.
type PointRow struct {
	ID           string    `json:"id"`
	NodeID       string    `json:"node_id"`
	Region       string    `json:"region"`
	Zone         string    `json:"zone"`
	Area         string    `json:"area"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Level        string    `json:"level,omitempty"`
	MaxDepth     int       `json:"max_depth,omitempty"`
	EntryType    string    `json:"entry_type,omitempty"`
	Current      string    `json:"current,omitempty"`
	Topography   []string  `json:"topography,omitempty"`
	Features     []string  `json:"features,omitempty"`
	Latitude     float64   `json:"latitude,omitempty"`
	Longitude    float64   `json:"longitude,omitempty"`
	ImageKeyword string    `json:"image_keyword,omitempty"`
	Method       string    `json:"method"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// Store defines the persistence interface for the point catalog. Rows are
// keyed by their tree position (region, zone, area, name); re-loading the
// same catalog updates in place.
type Store interface {
	// Points
	UpsertPoints(ctx context.Context, rows []PointRow) (int64, error)
	CountPoints(ctx context.Context) (int, error)
	ListMethods(ctx context.Context) (map[string]int, error)

	// Cleanup
	StaleIDs(ctx context.Context, keepMethod string) ([]string, error)
	DeletePoints(ctx context.Context, ids []string) (int64, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
