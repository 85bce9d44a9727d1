package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/reefatlas/reefatlas-cli/internal/db"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `mapstructure:"max_conns"`
	MinConns int32 `mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresWithPool wraps an existing pool. Test seam for pgxmock.
func NewPostgresWithPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS dive_points (
	id            TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	node_id       TEXT NOT NULL,
	region        TEXT NOT NULL,
	zone          TEXT NOT NULL,
	area          TEXT NOT NULL,
	name          TEXT NOT NULL,
	description   TEXT,
	level         TEXT,
	max_depth     INTEGER,
	entry_type    TEXT,
	current       TEXT,
	topography    JSONB,
	features      JSONB,
	latitude      DOUBLE PRECISION,
	longitude     DOUBLE PRECISION,
	image_keyword TEXT,
	method        TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE(region, zone, area, name)
);

CREATE INDEX IF NOT EXISTS idx_dive_points_method ON dive_points(method);
CREATE INDEX IF NOT EXISTS idx_dive_points_region ON dive_points(region);
CREATE INDEX IF NOT EXISTS idx_dive_points_area ON dive_points(region, zone, area);
`

var pointColumns = []string{
	"id", "node_id", "region", "zone", "area", "name", "description", "level",
	"max_depth", "entry_type", "current", "topography", "features",
	"latitude", "longitude", "image_keyword", "method", "created_at", "updated_at",
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) UpsertPoints(ctx context.Context, rows []PointRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	values := make([][]any, 0, len(rows))
	for _, r := range rows {
		id := r.ID
		if id == "" {
			id = uuid.New().String()
		}
		topoJSON, err := json.Marshal(orEmpty(r.Topography))
		if err != nil {
			return 0, eris.Wrapf(err, "postgres: marshal topography for %s", r.Name)
		}
		featJSON, err := json.Marshal(orEmpty(r.Features))
		if err != nil {
			return 0, eris.Wrapf(err, "postgres: marshal features for %s", r.Name)
		}
		values = append(values, []any{
			id, r.NodeID, r.Region, r.Zone, r.Area, r.Name, r.Description,
			r.Level, r.MaxDepth, r.EntryType, r.Current, topoJSON, featJSON,
			r.Latitude, r.Longitude, r.ImageKeyword, r.Method, now, now,
		})
	}

	return db.BulkUpsert(ctx, s.pool, db.UpsertConfig{
		Table:        "dive_points",
		Columns:      pointColumns,
		ConflictKeys: []string{"region", "zone", "area", "name"},
		// The original id and created_at survive an update.
		UpdateCols: []string{
			"node_id", "description", "level", "max_depth", "entry_type",
			"current", "topography", "features", "latitude", "longitude",
			"image_keyword", "method", "updated_at",
		},
	}, values)
}

func (s *PostgresStore) CountPoints(ctx context.Context) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM dive_points`).Scan(&count)
	return count, eris.Wrap(err, "postgres: count points")
}

func (s *PostgresStore) ListMethods(ctx context.Context) (map[string]int, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT method, COUNT(*) FROM dive_points GROUP BY method`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list methods")
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var method string
		var n int
		if err := rows.Scan(&method, &n); err != nil {
			return nil, eris.Wrap(err, "postgres: scan method")
		}
		counts[method] = n
	}
	return counts, eris.Wrap(rows.Err(), "postgres: list methods iterate")
}

func (s *PostgresStore) StaleIDs(ctx context.Context, keepMethod string) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id FROM dive_points WHERE method != $1 ORDER BY id`,
		keepMethod,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: stale ids")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, eris.Wrap(err, "postgres: scan id")
		}
		ids = append(ids, id)
	}
	return ids, eris.Wrap(rows.Err(), "postgres: stale ids iterate")
}

func (s *PostgresStore) DeletePoints(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM dive_points WHERE id = ANY($1)`,
		ids,
	)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: delete points")
	}
	return tag.RowsAffected(), nil
}
