// Package repository is the data-access layer of examdesk. It keeps the whole
// application state as one JSON document in a key-value store and exposes
// the operations the presentation layer needs: accounts, exams, questions,
// submissions with automatic grading, subjects, the login session and
// dashboard statistics.
//
// Every write is a read-modify-write of the full document inside a single
// store transaction. Failures never panic: operations report them as false,
// nil or an empty id, and log the cause.
package repository

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/example/examdesk/internal/grading"
	"github.com/example/examdesk/internal/kvstore"
	"github.com/example/examdesk/pkg/models"
)

// TimeFormat is the layout of every stamped timestamp
const TimeFormat = "2006-01-02T15:04:05.000Z07:00"

var (
	errNoDocument      = errors.New("no document in store")
	errCorruptDocument = errors.New("document cannot be decoded")
	errNoChange        = errors.New("nothing to write")
	errUnknownRole     = errors.New("unknown role")
	errDuplicateUser   = errors.New("user already exists")
	errUserNotFound    = errors.New("user not found")
)

// Repository mediates every access to the persisted document
type Repository struct {
	store       kvstore.Store
	log         logrus.FieldLogger
	now         func() time.Time
	defaultPass float64
}

// Option configures a Repository
type Option func(*Repository)

// WithLogger sets the logger used for failures
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Repository) {
		r.log = l
	}
}

// WithClock replaces time.Now, mostly for tests
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// WithDefaultPassMarks sets the threshold used when a submission's exam is missing
func WithDefaultPassMarks(marks float64) Option {
	return func(r *Repository) {
		r.defaultPass = marks
	}
}

// New creates the repository and initializes the store. Construct it once
// per process and share the instance.
func New(store kvstore.Store, opts ...Option) (*Repository, error) {
	r := &Repository{
		store:       store,
		log:         logrus.StandardLogger(),
		now:         time.Now,
		defaultPass: grading.DefaultPassMarks,
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.Initialize(); err != nil {
		return nil, err
	}
	return r, nil
}

// Initialize writes an empty document and an empty session when they are
// missing or stored as null. Existing entries are never overwritten, so
// calling it again is safe.
func (r *Repository) Initialize() error {
	err := r.store.Update(func(tx kvstore.Tx) error {
		if err := initKey(tx, models.KeyAppData, models.NewAppData()); err != nil {
			return err
		}
		return initKey(tx, models.KeyCurrentUser, nil)
	})
	if err != nil {
		return errors.Wrap(err, "failed to initialize store")
	}
	return nil
}

// initKey writes value under key when the key is missing or holds null.
// Any other stored value, even an undecodable one, is kept.
func initKey(tx kvstore.Tx, key string, value interface{}) error {
	data, err := tx.Get(key)
	if err != nil && !kvstore.IsNotFound(err) {
		return err
	}
	if err == nil && !isNull(data) {
		return nil
	}
	return writeJSON(tx, key, value)
}

func isNull(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) == 0 || bytes.Equal(data, []byte("null"))
}

// Get decodes the value stored under key into dest. It returns false when the
// key is missing or the value cannot be decoded.
func (r *Repository) Get(key string, dest interface{}) bool {
	data, err := r.store.Get(key)
	if err != nil {
		if !kvstore.IsNotFound(err) {
			r.log.WithField("key", key).Errorf("Error reading from store: %v", err)
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		r.log.WithField("key", key).Errorf("Error decoding stored value: %v", err)
		return false
	}
	return true
}

// Set encodes value and stores it under key. It returns false when encoding
// or the write fails, e.g. when the store is full.
func (r *Repository) Set(key string, value interface{}) bool {
	data, err := json.Marshal(value)
	if err != nil {
		r.log.WithField("key", key).Errorf("Error encoding value: %v", err)
		return false
	}
	if err := r.store.Set(key, data); err != nil {
		r.log.WithField("key", key).Errorf("Error writing to store: %v", err)
		return false
	}
	return true
}

// txn is the state handed to a document update
type txn struct {
	kv  kvstore.Tx
	doc *models.AppData
}

// update loads the document, lets fn modify it and writes it back in the same
// store transaction. When fn fails nothing is written.
func (r *Repository) update(fn func(t *txn) error) error {
	return r.store.Update(func(tx kvstore.Tx) error {
		doc, err := readDocument(tx)
		if err != nil {
			return err
		}
		t := &txn{kv: tx, doc: doc}
		if err := fn(t); err != nil {
			return err
		}
		return writeJSON(tx, models.KeyAppData, doc)
	})
}

// load returns a decoded copy of the document
func (r *Repository) load() (*models.AppData, error) {
	return readDocument(r.store)
}

// document is load for read paths; failures are logged and yield nil
func (r *Repository) document(op string) *models.AppData {
	doc, err := r.load()
	if err != nil {
		r.logFailure(op, err)
		return nil
	}
	return doc
}

// sessionUser reads the session pointer inside a transaction. An unreadable
// session counts as no session.
func (r *Repository) sessionUser(tx kvstore.Reader) *models.User {
	data, err := tx.Get(models.KeyCurrentUser)
	if err != nil {
		if !kvstore.IsNotFound(err) {
			r.log.WithField("key", models.KeyCurrentUser).Errorf("Error reading session: %v", err)
		}
		return nil
	}
	var u *models.User
	if err := json.Unmarshal(data, &u); err != nil {
		r.log.WithField("key", models.KeyCurrentUser).Errorf("Error decoding session: %v", err)
		return nil
	}
	return u
}

func (r *Repository) timestamp() string {
	return r.now().UTC().Format(TimeFormat)
}

// logFailure logs err at a level matching its kind
func (r *Repository) logFailure(op string, err error) {
	entry := r.log.WithField("op", op)
	switch errors.Cause(err) {
	case errNoChange:
		return
	case errUnknownRole, errDuplicateUser, errUserNotFound:
		entry.Infof("Operation not applied: %v", err)
	default:
		entry.Errorf("Operation failed: %v", err)
	}
}

// reachedStore reports whether err happened after the document was loaded
func reachedStore(err error) bool {
	switch errors.Cause(err) {
	case errNoDocument, errCorruptDocument:
		return false
	}
	return true
}

func readDocument(rd kvstore.Reader) (*models.AppData, error) {
	data, err := rd.Get(models.KeyAppData)
	if kvstore.IsNotFound(err) {
		return nil, errNoDocument
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read document")
	}

	var doc *models.AppData
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errCorruptDocument, err.Error())
	}
	if doc == nil {
		return nil, errNoDocument
	}
	doc.Normalize()
	return doc, nil
}

func writeJSON(tx kvstore.Tx, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s", key)
	}
	if err := tx.Set(key, data); err != nil {
		return errors.Wrapf(err, "failed to write %s", key)
	}
	return nil
}
