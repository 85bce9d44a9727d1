package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS dive_points (
	id            TEXT PRIMARY KEY,
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
	topography    TEXT,
	features      TEXT,
	latitude      REAL,
	longitude     REAL,
	image_keyword TEXT,
	method        TEXT NOT NULL,
	created_at    DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at    DATETIME NOT NULL DEFAULT (datetime('now')),
	UNIQUE(region, zone, area, name)
);

CREATE INDEX IF NOT EXISTS idx_dive_points_method ON dive_points(method);
CREATE INDEX IF NOT EXISTS idx_dive_points_region ON dive_points(region);
CREATE INDEX IF NOT EXISTS idx_dive_points_area ON dive_points(region, zone, area);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) UpsertPoints(ctx context.Context, rows []PointRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback()

	const upsert = `
INSERT INTO dive_points
	(id, node_id, region, zone, area, name, description, level, max_depth,
	 entry_type, current, topography, features, latitude, longitude,
	 image_keyword, method, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(region, zone, area, name) DO UPDATE SET
	node_id = excluded.node_id,
	description = excluded.description,
	level = excluded.level,
	max_depth = excluded.max_depth,
	entry_type = excluded.entry_type,
	current = excluded.current,
	topography = excluded.topography,
	features = excluded.features,
	latitude = excluded.latitude,
	longitude = excluded.longitude,
	image_keyword = excluded.image_keyword,
	method = excluded.method,
	updated_at = excluded.updated_at`

	stmt, err := tx.PrepareContext(ctx, upsert)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare upsert")
	}
	defer stmt.Close()

	now := time.Now().UTC()
	var total int64
	for _, r := range rows {
		id := r.ID
		if id == "" {
			id = uuid.New().String()
		}
		topoJSON, featJSON, err := marshalLists(r)
		if err != nil {
			return total, err
		}

		res, err := stmt.ExecContext(ctx,
			id, r.NodeID, r.Region, r.Zone, r.Area, r.Name, r.Description,
			r.Level, r.MaxDepth, r.EntryType, r.Current, topoJSON, featJSON,
			r.Latitude, r.Longitude, r.ImageKeyword, r.Method, now, now,
		)
		if err != nil {
			return total, eris.Wrapf(err, "sqlite: upsert point %s", r.Name)
		}
		n, _ := res.RowsAffected()
		total += n
	}

	if err := tx.Commit(); err != nil {
		return total, eris.Wrap(err, "sqlite: commit upsert")
	}
	return total, nil
}

func (s *SQLiteStore) CountPoints(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM dive_points`).Scan(&count)
	return count, eris.Wrap(err, "sqlite: count points")
}

func (s *SQLiteStore) ListMethods(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT method, COUNT(*) FROM dive_points GROUP BY method`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list methods")
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var method string
		var n int
		if err := rows.Scan(&method, &n); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan method")
		}
		counts[method] = n
	}
	return counts, eris.Wrap(rows.Err(), "sqlite: list methods iterate")
}

func (s *SQLiteStore) StaleIDs(ctx context.Context, keepMethod string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM dive_points WHERE method != ? ORDER BY id`,
		keepMethod,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: stale ids")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan id")
		}
		ids = append(ids, id)
	}
	return ids, eris.Wrap(rows.Err(), "sqlite: stale ids iterate")
}

func (s *SQLiteStore) DeletePoints(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM dive_points WHERE id IN (`+placeholders+`)`,
		args...,
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: delete points")
	}
	n, err := res.RowsAffected()
	return n, eris.Wrap(err, "sqlite: rows affected")
}

func marshalLists(r PointRow) (string, string, error) {
	topo, err := json.Marshal(orEmpty(r.Topography))
	if err != nil {
		return "", "", eris.Wrapf(err, "sqlite: marshal topography for %s", r.Name)
	}
	feat, err := json.Marshal(orEmpty(r.Features))
	if err != nil {
		return "", "", eris.Wrapf(err, "sqlite: marshal features for %s", r.Name)
	}
	return string(topo), string(feat), nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
