// Package sqlite keeps derived pair collections in a single SQLite file so
// several relation types can be exported and queried together.
package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/agentstation/fiwdb/pkg/constants"
	"github.com/agentstation/fiwdb/pkg/errors"
	"github.com/agentstation/fiwdb/pkg/kinship"
)

const schema = `CREATE TABLE IF NOT EXISTS pairs (
	kind TEXT NOT NULL,
	seq  INTEGER NOT NULL,
	fid  TEXT NOT NULL,
	mid0 INTEGER NOT NULL,
	mid1 INTEGER NOT NULL,
	p1   TEXT NOT NULL,
	p2   TEXT NOT NULL,
	PRIMARY KEY (kind, seq)
)`

// Store is a pair database.
type Store struct {
	db   *sql.DB
	path string
}

// KindCount is the number of stored pairs of one kind.
type KindCount struct {
	Kind  string `json:"kind" yaml:"kind"`
	Pairs int    `json:"pairs" yaml:"pairs"`
}

// Open opens (creating if needed) the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, errors.NewValidationError("path", path, "sqlite path is required")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
			return nil, errors.WrapIO("mkdir", filepath.Dir(path), err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.WrapResource("open", "sqlite", path, err)
	}
	// One connection keeps ":memory:" databases coherent.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, errors.WrapResource("create", "table", "pairs", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close releases the database.
func (s *Store) Close() error { return s.db.Close() }

// Path returns the database path.
func (s *Store) Path() string { return s.path }

// SavePairs replaces every stored pair of c.Kind() with c, keeping its order.
// Pairs are stored under the collection's kind, so a collection holding a
// pair of another kind is rejected before anything is written.
func (s *Store) SavePairs(ctx context.Context, c *kinship.PairCollection) (retErr error) {
	pairs := c.Pairs()
	for _, p := range pairs {
		if p.Kind() != c.Kind() {
			return errors.NewValidationError("kind", p.Kind(),
				"pair "+p.String()+" does not match collection kind "+c.Kind())
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.WrapResource("begin", "sqlite", s.path, err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pairs WHERE kind = ?`, c.Kind()); err != nil {
		return errors.WrapResource("delete", "pairs", c.Kind(), err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO pairs(kind, seq, fid, mid0, mid1, p1, p2) VALUES(?,?,?,?,?,?,?)`)
	if err != nil {
		return errors.WrapResource("prepare", "pairs", c.Kind(), err)
	}
	defer func() { _ = stmt.Close() }()

	rows := c.Rows()
	for i, p := range pairs {
		m0, m1 := p.MIDs()
		if _, err := stmt.ExecContext(ctx, c.Kind(), i, string(p.FID()), int(m0), int(m1), rows[i].P1, rows[i].P2); err != nil {
			return errors.WrapResource("insert", "pairs", p.String(), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.WrapResource("commit", "sqlite", s.path, err)
	}
	return nil
}

// LoadPairs returns the stored collection of kind in saved order. An
// unknown kind is a NotFoundError.
func (s *Store) LoadPairs(ctx context.Context, kind string) (*kinship.PairCollection, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT fid, mid0, mid1 FROM pairs WHERE kind = ? ORDER BY seq`, kind)
	if err != nil {
		return nil, errors.WrapResource("select", "pairs", kind, err)
	}
	defer func() { _ = rows.Close() }()

	var pairs []kinship.Pair
	for rows.Next() {
		var (
			fid        string
			mid0, mid1 int
		)
		if err := rows.Scan(&fid, &mid0, &mid1); err != nil {
			return nil, errors.WrapResource("scan", "pairs", kind, err)
		}
		pairs = append(pairs, kinship.NewPairFromMIDs(kinship.MID(mid0), kinship.MID(mid1), kinship.FID(fid), kind))
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapResource("select", "pairs", kind, err)
	}
	if len(pairs) == 0 {
		return nil, errors.NewNotFoundError("pair kind", kind)
	}
	return kinship.NewPairCollection(pairs, kind), nil
}

// Kinds lists stored kinds with their pair counts, ordered by kind.
func (s *Store) Kinds(ctx context.Context) ([]KindCount, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM pairs GROUP BY kind ORDER BY kind`)
	if err != nil {
		return nil, errors.WrapResource("select", "pairs", "", err)
	}
	defer func() { _ = rows.Close() }()

	var out []KindCount
	for rows.Next() {
		var kc KindCount
		if err := rows.Scan(&kc.Kind, &kc.Pairs); err != nil {
			return nil, errors.WrapResource("scan", "pairs", "", err)
		}
		out = append(out, kc)
	}
	return out, rows.Err()
}
