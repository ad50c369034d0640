package database

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/example/examdesk/internal/kvstore"
)

var _ kvstore.Store = (*KVRepository)(nil)

// KVRepository stores key-value entries in the kv_entries table
type KVRepository struct {
	db *sqlx.DB
}

// NewKVRepository creates a repository over an open connection
func NewKVRepository(db *sqlx.DB) *KVRepository {
	return &KVRepository{db: db}
}

// Open connects to the database and returns a ready store
func Open(driver, dsn string) (*KVRepository, error) {
	db, err := Connect(driver, dsn)
	if err != nil {
		return nil, err
	}
	return NewKVRepository(db), nil
}

// Get returns the value stored under key
func (r *KVRepository) Get(key string) ([]byte, error) {
	return get(r.db, key)
}

// Set inserts or replaces the value under key
func (r *KVRepository) Set(key string, value []byte) error {
	return set(r.db, key, value)
}

// Delete removes key
func (r *KVRepository) Delete(key string) error {
	return del(r.db, key)
}

// Update runs fn inside a database transaction
func (r *KVRepository) Update(fn func(tx kvstore.Tx) error) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}

	if err := fn(&kvTx{tx: tx}); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	return nil
}

// Close closes the database connection
func (r *KVRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Keys returns every stored key in order
func (r *KVRepository) Keys() ([]string, error) {
	var keys []string
	err := r.db.Select(&keys, "SELECT entry_key FROM kv_entries ORDER BY entry_key")
	if err != nil {
		return nil, errors.Wrap(err, "failed to list keys")
	}
	return keys, nil
}

type kvTx struct {
	tx *sqlx.Tx
}

func (t *kvTx) Get(key string) ([]byte, error) {
	return get(t.tx, key)
}

func (t *kvTx) Set(key string, value []byte) error {
	return set(t.tx, key, value)
}

func (t *kvTx) Delete(key string) error {
	return del(t.tx, key)
}

// queryer is satisfied by both *sqlx.DB and *sqlx.Tx
type queryer interface {
	Get(dest interface{}, query string, args ...interface{}) error
	Exec(query string, args ...interface{}) (sql.Result, error)
	Rebind(query string) string
}

func get(q queryer, key string) ([]byte, error) {
	var value string
	err := q.Get(&value, q.Rebind("SELECT entry_value FROM kv_entries WHERE entry_key = ?"), key)
	if err == sql.ErrNoRows {
		return nil, kvstore.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get %q", key)
	}
	return []byte(value), nil
}

func set(q queryer, key string, value []byte) error {
	query := q.Rebind(`
		INSERT INTO kv_entries (entry_key, entry_value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (entry_key) DO UPDATE SET
			entry_value = excluded.entry_value,
			updated_at = CURRENT_TIMESTAMP
	`)
	if _, err := q.Exec(query, key, string(value)); err != nil {
		return errors.Wrapf(err, "failed to set %q", key)
	}
	return nil
}

func del(q queryer, key string) error {
	if _, err := q.Exec(q.Rebind("DELETE FROM kv_entries WHERE entry_key = ?"), key); err != nil {
		return errors.Wrapf(err, "failed to delete %q", key)
	}
	return nil
}
