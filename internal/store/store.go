// Package store persists loaded grammars and their compiled LL(1)/LR(1)
// tables in a small on-disk cache keyed by the SHA-256 of the grammar's
// source text (spec.md §6.5), so an unchanged grammar's LL(1) or LR(1)
// table can be reused instead of rebuilt. Each entry holds one table at a
// time; storing the other kind replaces it.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
	"modernc.org/sqlite"
)

var (
	// ErrNotFound is returned when a lookup by ID or hash matches no entry.
	ErrNotFound = errors.New("the requested cache entry was not found")
)

// Entry is one cached analysis artifact: the grammar source that produced it
// and the serialized table bytes built from it.
type Entry struct {
	ID        uuid.UUID
	Hash      string
	Source    string
	TableKind string // "ll1" or "lr1", empty if only the grammar is cached
	TableData []byte
	Created   time.Time
}

// Store is a SQLite-backed cache of loaded grammars and their compiled
// tables.
//
// mu serializes access to db the way a request-serializing embedder would
// (spec.md §5): the analysis core itself never needs a lock, but the cache
// is shared mutable state that a CLI session and a concurrent embedder
// could otherwise hit at once.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens or creates the cache database at file.
func Open(file string) (*Store, error) {
	db, err := sql.Open("sqlite", file)
	if err != nil {
		return nil, wrapDBError(err)
	}

	st := &Store{db: db}
	if err := st.init(); err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}

func (st *Store) init() error {
	stmt := `CREATE TABLE IF NOT EXISTS grammars (
		id TEXT NOT NULL PRIMARY KEY,
		hash TEXT NOT NULL UNIQUE,
		source TEXT NOT NULL,
		table_kind TEXT NOT NULL DEFAULT '',
		table_data TEXT NOT NULL DEFAULT '',
		created INTEGER NOT NULL
	);`
	_, err := st.db.Exec(stmt)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

// Close releases the underlying database connection.
func (st *Store) Close() error {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.db.Close()
}

// HashSource returns the cache key for a grammar's source text.
func HashSource(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// PutGrammar inserts text as a new cache entry, keyed by its hash, and
// returns the new entry's ID. If text has already been cached, the existing
// entry's ID is returned instead of creating a duplicate row.
func (st *Store) PutGrammar(ctx context.Context, text string) (uuid.UUID, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	hash := HashSource(text)

	if existing, ok, err := st.findByHashLocked(ctx, hash); err != nil {
		return uuid.UUID{}, err
	} else if ok {
		return existing.ID, nil
	}

	newID, err := uuid.NewRandom()
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("could not generate ID: %w", err)
	}

	encSource := base64.StdEncoding.EncodeToString(rezi.EncBinary(text))

	stmt, err := st.db.PrepareContext(ctx, `INSERT INTO grammars (id, hash, source, created) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return uuid.UUID{}, wrapDBError(err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, newID.String(), hash, encSource, time.Now().Unix())
	if err != nil {
		return uuid.UUID{}, wrapDBError(err)
	}

	return newID, nil
}

// PutTable attaches a compiled table's serialized bytes to the grammar entry
// identified by id, tagged with kind ("ll1" or "lr1").
func (st *Store) PutTable(ctx context.Context, id uuid.UUID, kind string, data []byte) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	encTable := base64.StdEncoding.EncodeToString(rezi.EncBinary(data))

	stmt, err := st.db.PrepareContext(ctx, `UPDATE grammars SET table_kind = ?, table_data = ? WHERE id = ?`)
	if err != nil {
		return wrapDBError(err)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, kind, encTable, id.String())
	if err != nil {
		return wrapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapDBError(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID fetches the cache entry with the given ID.
func (st *Store) GetByID(ctx context.Context, id uuid.UUID) (Entry, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	row := st.db.QueryRowContext(ctx,
		`SELECT id, hash, source, table_kind, table_data, created FROM grammars WHERE id = ?`, id.String())
	return scanEntry(row)
}

// FindByHash looks up a cache entry by its source hash. The second return
// value is false if no entry matches.
func (st *Store) FindByHash(ctx context.Context, hash string) (Entry, bool, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.findByHashLocked(ctx, hash)
}

// findByHashLocked is FindByHash's body, callable while st.mu is already
// held (PutGrammar needs this to check-then-insert atomically).
func (st *Store) findByHashLocked(ctx context.Context, hash string) (Entry, bool, error) {
	row := st.db.QueryRowContext(ctx,
		`SELECT id, hash, source, table_kind, table_data, created FROM grammars WHERE hash = ?`, hash)
	e, err := scanEntry(row)
	if errors.Is(err, ErrNotFound) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	return e, true, nil
}

func scanEntry(row *sql.Row) (Entry, error) {
	var idStr, hash, encSource, kind, encTable string
	var created int64

	if err := row.Scan(&idStr, &hash, &encSource, &kind, &encTable, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, wrapDBError(err)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return Entry{}, fmt.Errorf("corrupt cache entry ID %q: %w", idStr, err)
	}

	var source string
	if encSource != "" {
		raw, err := base64.StdEncoding.DecodeString(encSource)
		if err != nil {
			return Entry{}, fmt.Errorf("corrupt cache entry %s: %w", idStr, err)
		}
		if _, err := rezi.DecBinary(raw, &source); err != nil {
			return Entry{}, fmt.Errorf("corrupt cache entry %s: %w", idStr, err)
		}
	}

	var tableData []byte
	if encTable != "" {
		raw, err := base64.StdEncoding.DecodeString(encTable)
		if err != nil {
			return Entry{}, fmt.Errorf("corrupt table data for %s: %w", idStr, err)
		}
		if _, err := rezi.DecBinary(raw, &tableData); err != nil {
			return Entry{}, fmt.Errorf("corrupt table data for %s: %w", idStr, err)
		}
	}

	return Entry{
		ID:        id,
		Hash:      hash,
		Source:    source,
		TableKind: kind,
		TableData: tableData,
		Created:   time.Unix(created, 0),
	}, nil
}

func wrapDBError(err error) error {
	if err == nil {
		return nil
	}
	sqliteErr := &sqlite.Error{}
	if errors.As(err, sqliteErr) {
		if sqliteErr.Code() == 19 {
			return fmt.Errorf("constraint violation: %w", err)
		}
		return fmt.Errorf("%s", sqlite.ErrorCodeString[sqliteErr.Code()])
	} else if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
