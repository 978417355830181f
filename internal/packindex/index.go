package packindex

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"propmeta/internal/repository"
	"propmeta/internal/resource"
)

// Index is the SQLite pack catalog.
type Index struct {
	db   *sql.DB
	path string
}

// Summary describes one indexed pack.
type Summary struct {
	Key           string
	Name          string
	IndexedAt     time.Time
	ResourceCount int
}

// Open initializes or connects to the catalog at path and applies migrations.
func Open(ctx context.Context, path string) (*Index, error) {
	if path == "" {
		return nil, errors.New("pack index path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create index directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	ix := &Index{db: db, path: path}
	if err := ix.applyMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return ix, nil
}

// Close closes the underlying database connection.
func (ix *Index) Close() error {
	if ix == nil || ix.db == nil {
		return nil
	}
	return ix.db.Close()
}

// Path returns the database file path.
func (ix *Index) Path() string {
	return ix.path
}

// Key identifies a pack in the catalog. Directory packs are keyed by their
// absolute root so two packs with the same base name do not collide.
func Key(pack repository.Pack) string {
	if rooted, ok := pack.(interface{ Root() string }); ok {
		return "dir:" + rooted.Root()
	}
	return "name:" + pack.Name()
}

// Rebuild rescans pack and replaces its catalog rows. It returns the number
// of resources recorded.
func (ix *Index) Rebuild(ctx context.Context, pack repository.Pack) (int, error) {
	locs, err := pack.Locations()
	if err != nil {
		return 0, err
	}
	key := Key(pack)

	tx, err := ix.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin rebuild tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, stmt := range []string{
		"DELETE FROM resources WHERE pack_key = ?",
		"DELETE FROM packs WHERE pack_key = ?",
	} {
		if _, err := tx.ExecContext(ctx, stmt, key); err != nil {
			return 0, fmt.Errorf("clear pack %s: %w", pack.Name(), err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO packs (pack_key, name, indexed_at, resource_count) VALUES (?, ?, ?, ?)",
		key, pack.Name(), time.Now().UTC().Format(time.RFC3339Nano), len(locs),
	); err != nil {
		return 0, fmt.Errorf("insert pack %s: %w", pack.Name(), err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO resources (pack_key, namespace, path) VALUES (?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("prepare resource insert: %w", err)
	}
	defer stmt.Close()
	for _, loc := range locs {
		if _, err := stmt.ExecContext(ctx, key, loc.Namespace, loc.Path); err != nil {
			return 0, fmt.Errorf("insert resource %s: %w", loc, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit rebuild: %w", err)
	}
	return len(locs), nil
}

// Locations returns the catalogued resources of pack. The boolean is false
// when the pack has never been indexed.
func (ix *Index) Locations(ctx context.Context, pack repository.Pack) ([]resource.Location, bool, error) {
	key := Key(pack)
	var count int
	if err := ix.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM packs WHERE pack_key = ?", key).Scan(&count); err != nil {
		return nil, false, fmt.Errorf("lookup pack %s: %w", pack.Name(), err)
	}
	if count == 0 {
		return nil, false, nil
	}

	rows, err := ix.db.QueryContext(ctx,
		"SELECT namespace, path FROM resources WHERE pack_key = ? ORDER BY namespace, path", key)
	if err != nil {
		return nil, false, fmt.Errorf("query resources: %w", err)
	}
	defer rows.Close()

	var out []resource.Location
	for rows.Next() {
		var loc resource.Location
		if err := rows.Scan(&loc.Namespace, &loc.Path); err != nil {
			return nil, false, fmt.Errorf("scan resource: %w", err)
		}
		out = append(out, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate resources: %w", err)
	}
	return out, true, nil
}

// Summaries lists every indexed pack ordered by name.
func (ix *Index) Summaries(ctx context.Context) ([]Summary, error) {
	rows, err := ix.db.QueryContext(ctx,
		"SELECT pack_key, name, indexed_at, resource_count FROM packs ORDER BY name, pack_key")
	if err != nil {
		return nil, fmt.Errorf("query packs: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			s         Summary
			indexedAt string
		)
		if err := rows.Scan(&s.Key, &s.Name, &indexedAt, &s.ResourceCount); err != nil {
			return nil, fmt.Errorf("scan pack: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, indexedAt); err == nil {
			s.IndexedAt = ts
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Wrap returns a pack whose Locations are served from the catalog. A pack
// that was never indexed is rebuilt on first use.
func (ix *Index) Wrap(ctx context.Context, pack repository.Pack) repository.Pack {
	return &indexedPack{Pack: pack, ix: ix, ctx: ctx}
}

type indexedPack struct {
	repository.Pack
	ix  *Index
	ctx context.Context
}

func (p *indexedPack) Locations() ([]resource.Location, error) {
	locs, ok, err := p.ix.Locations(p.ctx, p.Pack)
	if err != nil {
		return nil, err
	}
	if ok {
		return locs, nil
	}
	if _, err := p.ix.Rebuild(p.ctx, p.Pack); err != nil {
		return nil, err
	}
	locs, _, err = p.ix.Locations(p.ctx, p.Pack)
	return locs, err
}
