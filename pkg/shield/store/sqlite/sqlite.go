// Package sqlite implements store.Store on an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/shieldsna/shield/pkg/shield/internalerr"
	"github.com/shieldsna/shield/pkg/shield/store"
)

type sqliteStore struct {
	db *sql.DB
}

// Open opens (creating if needed) a SQLite database at path with WAL mode
// and foreign keys enabled, and migrates the schema.
func Open(ctx context.Context, path string) (store.Store, error) {
	// DSN pragmas apply to every pooled connection, unlike PRAGMA
	// statements executed after open.
	dsn := "file:" + path + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	posts INTEGER NOT NULL,
	excluded_rows INTEGER NOT NULL,
	accuracy REAL NOT NULL,
	communities INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS models (
	run_id TEXT PRIMARY KEY,
	blob BLOB NOT NULL,
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS run_keywords (
	run_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	keyword TEXT NOT NULL,
	PRIMARY KEY(run_id, position),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS centrality (
	run_id TEXT NOT NULL,
	user TEXT NOT NULL,
	degree REAL NOT NULL,
	betweenness REAL NOT NULL,
	community INTEGER NOT NULL,
	PRIMARY KEY(run_id, user),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS trend (
	run_id TEXT NOT NULL,
	subreddit TEXT NOT NULL,
	month TEXT NOT NULL,
	hoax_posts INTEGER NOT NULL,
	PRIMARY KEY(run_id, subreddit, month),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS correlation (
	run_id TEXT NOT NULL,
	event_id TEXT NOT NULL,
	event_time TEXT NOT NULL,
	total_posts INTEGER NOT NULL,
	hoax_posts INTEGER NOT NULL,
	PRIMARY KEY(run_id, event_id),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);
`
	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO runs (id, created_at, posts, excluded_rows, accuracy, communities)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	created_at = excluded.created_at,
	posts = excluded.posts,
	excluded_rows = excluded.excluded_rows,
	accuracy = excluded.accuracy,
	communities = excluded.communities`,
		r.ID, r.CreatedAt.UTC().Format(time.RFC3339Nano),
		r.Posts, r.Excluded, r.Accuracy, r.Communities)
	return err
}

func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, error) {
	var r store.Run
	var createdAt string
	err := s.db.QueryRowContext(ctx, `
SELECT id, created_at, posts, excluded_rows, accuracy, communities
FROM runs WHERE id = ?`, id).Scan(
		&r.ID, &createdAt, &r.Posts, &r.Excluded, &r.Accuracy, &r.Communities)
	if err == sql.ErrNoRows {
		return store.Run{}, internalerr.ErrNotFound
	}
	if err != nil {
		return store.Run{}, err
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return r, nil
}

func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, created_at, posts, excluded_rows, accuracy, communities
FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []store.Run
	for rows.Next() {
		var r store.Run
		var createdAt string
		if err := rows.Scan(&r.ID, &createdAt, &r.Posts, &r.Excluded, &r.Accuracy, &r.Communities); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *sqliteStore) SaveModel(ctx context.Context, runID string, blob []byte) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO models (run_id, blob) VALUES (?, ?)
ON CONFLICT(run_id) DO UPDATE SET blob = excluded.blob`, runID, blob)
	return err
}

func (s *sqliteStore) GetModel(ctx context.Context, runID string) ([]byte, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT blob FROM models WHERE run_id = ?`, runID).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, internalerr.ErrMissingArtifact
	}
	return blob, err
}

func (s *sqliteStore) SaveKeywords(ctx context.Context, runID string, keywords []string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM run_keywords WHERE run_id = ?`, runID); err != nil {
			return err
		}
		for i, kw := range keywords {
			if _, err := tx.ExecContext(ctx, `
INSERT INTO run_keywords (run_id, position, keyword) VALUES (?, ?, ?)`,
				runID, i, kw); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *sqliteStore) GetKeywords(ctx context.Context, runID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT keyword FROM run_keywords WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keywords []string
	for rows.Next() {
		var kw string
		if err := rows.Scan(&kw); err != nil {
			return nil, err
		}
		keywords = append(keywords, kw)
	}
	return keywords, rows.Err()
}

func (s *sqliteStore) SaveCentrality(ctx context.Context, runID string, rows []store.CentralityRow) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM centrality WHERE run_id = ?`, runID); err != nil {
			return err
		}
		for _, row := range rows {
			if _, err := tx.ExecContext(ctx, `
INSERT INTO centrality (run_id, user, degree, betweenness, community)
VALUES (?, ?, ?, ?, ?)`,
				runID, row.User, row.Degree, row.Betweenness, row.Community); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *sqliteStore) GetCentrality(ctx context.Context, runID string) ([]store.CentralityRow, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT user, degree, betweenness, community
FROM centrality WHERE run_id = ? ORDER BY user`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.CentralityRow
	for rows.Next() {
		var row store.CentralityRow
		if err := rows.Scan(&row.User, &row.Degree, &row.Betweenness, &row.Community); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *sqliteStore) SaveTrend(ctx context.Context, runID string, rows []store.TrendRow) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM trend WHERE run_id = ?`, runID); err != nil {
			return err
		}
		for _, row := range rows {
			if _, err := tx.ExecContext(ctx, `
INSERT INTO trend (run_id, subreddit, month, hoax_posts) VALUES (?, ?, ?, ?)`,
				runID, row.Subreddit, row.Month, row.HoaxPosts); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *sqliteStore) GetTrend(ctx context.Context, runID string) ([]store.TrendRow, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT subreddit, month, hoax_posts
FROM trend WHERE run_id = ? ORDER BY subreddit, month`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.TrendRow
	for rows.Next() {
		var row store.TrendRow
		if err := rows.Scan(&row.Subreddit, &row.Month, &row.HoaxPosts); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *sqliteStore) SaveCorrelation(ctx context.Context, runID string, rows []store.CorrelationRow) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM correlation WHERE run_id = ?`, runID); err != nil {
			return err
		}
		for _, row := range rows {
			if _, err := tx.ExecContext(ctx, `
INSERT INTO correlation (run_id, event_id, event_time, total_posts, hoax_posts)
VALUES (?, ?, ?, ?, ?)`,
				runID, row.EventID, row.EventTime.UTC().Format(time.RFC3339),
				row.TotalPosts, row.HoaxPosts); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *sqliteStore) GetCorrelation(ctx context.Context, runID string) ([]store.CorrelationRow, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT event_id, event_time, total_posts, hoax_posts
FROM correlation WHERE run_id = ? ORDER BY event_time`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.CorrelationRow
	for rows.Next() {
		var row store.CorrelationRow
		var eventTime string
		if err := rows.Scan(&row.EventID, &eventTime, &row.TotalPosts, &row.HoaxPosts); err != nil {
			return nil, err
		}
		row.EventTime, _ = time.Parse(time.RFC3339, eventTime)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *sqliteStore) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
