// Package store persists built corpora in SQLite. Each entity is kept as a
// single-entity container next to the columns used for listing, and decoded
// entities are cached in memory.
package store

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/maypok86/otter"

	"github.com/wippyai/doccorpus/errors"
	"github.com/wippyai/doccorpus/meta"
)

// DefaultCacheSize is the number of decoded entities kept by a Reader.
const DefaultCacheSize = 1024

// Option configures Open.
type Option func(*options)

type options struct {
	cacheSize int
}

// WithCacheSize sets the entity cache capacity.
func WithCacheSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.cacheSize = n
		}
	}
}

// Store is an open corpus database.
type Store struct {
	db    *sql.DB
	cache otter.Cache[meta.SymbolID, meta.Info]
}

// Open opens or creates the database at path and ensures its schema.
func Open(path string, opts ...Option) (*Store, error) {
	o := options{cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		opt(&o)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.IO(errors.PhaseStore, "open "+path, err)
	}
	// one connection keeps in-memory databases shared across calls
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.IO(errors.PhaseStore, "create schema", err)
	}

	cache, err := otter.MustBuilder[meta.SymbolID, meta.Info](o.cacheSize).Build()
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidInput, err, "build cache")
	}

	return &Store{db: db, cache: cache}, nil
}

// Close releases the database and the cache.
func (s *Store) Close() error {
	s.cache.Close()
	return s.db.Close()
}

// Writer returns the write side of the store.
func (s *Store) Writer() *Writer {
	return &Writer{s: s}
}

// Reader returns the read side of the store.
func (s *Store) Reader() *Reader {
	return &Reader{s: s}
}

func latestBuild(ctx context.Context, q interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
}) (string, error) {
	var id string
	err := q.QueryRowContext(ctx, "SELECT id FROM builds ORDER BY seq DESC LIMIT 1").Scan(&id)
	if err == sql.ErrNoRows {
		return "", errors.NotFound(errors.PhaseStore, "build", "latest")
	}
	if err != nil {
		return "", errors.IO(errors.PhaseStore, "query latest build", err)
	}
	return id, nil
}
