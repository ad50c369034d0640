package database

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/example/examdesk/internal/kvstore"
)

// newTestRepo creates an in-memory SQLite key-value repository for testing
func newTestRepo(t *testing.T) *KVRepository {
	t.Helper()
	repo, err := Open(DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}
	t.Cleanup(func() {
		repo.Close()
	})
	return repo
}

func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestKVRepositorySetGet(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Get("appData")
	if !kvstore.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	assertNoError(t, repo.Set("appData", []byte(`{"exams":[]}`)))
	got, err := repo.Get("appData")
	assertNoError(t, err)
	if string(got) != `{"exams":[]}` {
		t.Fatalf("unexpected value %q", got)
	}

	// Upsert replaces the value
	assertNoError(t, repo.Set("appData", []byte(`null`)))
	got, err = repo.Get("appData")
	assertNoError(t, err)
	if string(got) != "null" {
		t.Fatalf("expected replaced value, got %q", got)
	}

	assertNoError(t, repo.Delete("appData"))
	if _, err := repo.Get("appData"); !kvstore.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestKVRepositoryUpdateCommit(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.Update(func(tx kvstore.Tx) error {
		if err := tx.Set("appData", []byte("doc")); err != nil {
			return err
		}
		v, err := tx.Get("appData")
		if err != nil {
			return err
		}
		if string(v) != "doc" {
			return errors.New("write not visible inside transaction")
		}
		return tx.Set("currentUser", []byte("null"))
	})
	assertNoError(t, err)

	keys, err := repo.Keys()
	assertNoError(t, err)
	if !reflect.DeepEqual(keys, []string{"appData", "currentUser"}) {
		t.Fatalf("unexpected keys %v", keys)
	}
}

func TestKVRepositoryUpdateRollback(t *testing.T) {
	repo := newTestRepo(t)
	assertNoError(t, repo.Set("appData", []byte("old")))

	boom := errors.New("boom")
	err := repo.Update(func(tx kvstore.Tx) error {
		if err := tx.Set("appData", []byte("new")); err != nil {
			return err
		}
		return boom
	})
	if err != boom {
		t.Fatalf("expected fn error to be returned, got %v", err)
	}

	got, err := repo.Get("appData")
	assertNoError(t, err)
	if string(got) != "old" {
		t.Fatalf("expected rollback to keep old value, got %q", got)
	}
}

func TestConnectCreatesDataDirectory(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "examdesk.db")

	repo, err := Open(DriverSQLite, dsn)
	assertNoError(t, err)
	defer repo.Close()

	assertNoError(t, repo.Set("k", []byte("v")))
	got, err := repo.Get("k")
	assertNoError(t, err)
	if string(got) != "v" {
		t.Fatalf("unexpected value %q", got)
	}
}
