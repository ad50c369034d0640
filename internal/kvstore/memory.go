package kvstore

import (
	"sync"
)

// MemoryStore keeps values in a map. A non-zero quota bounds the total
// number of bytes held, keys included.
type MemoryStore struct {
	mu    sync.Mutex
	data  map[string][]byte
	quota int
}

// NewMemoryStore creates an empty store; quota <= 0 means unlimited
func NewMemoryStore(quota int) *MemoryStore {
	return &MemoryStore{
		data:  make(map[string][]byte),
		quota: quota,
	}
}

// Get returns a copy of the value stored under key
func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(key)
}

// Set stores value under key
func (s *MemoryStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(map[string][]byte{key: value}, nil)
}

// Delete removes key; deleting a missing key is not an error
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Update stages writes and applies them only when fn succeeds
func (s *MemoryStore) Update(fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memoryTx{
		store:   s,
		writes:  make(map[string][]byte),
		deletes: make(map[string]bool),
	}
	if err := fn(tx); err != nil {
		return err
	}
	return s.commit(tx.writes, tx.deletes)
}

// Close is a no-op
func (s *MemoryStore) Close() error {
	return nil
}

// SetQuota changes the capacity; n <= 0 means unlimited
func (s *MemoryStore) SetQuota(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quota = n
}

// Size returns the number of bytes currently held
func (s *MemoryStore) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sizeWith(nil, nil)
}

func (s *MemoryStore) get(key string) ([]byte, error) {
	v, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// commit applies writes and deletes atomically, refusing them all if the
// quota would be exceeded
func (s *MemoryStore) commit(writes map[string][]byte, deletes map[string]bool) error {
	if s.quota > 0 && s.sizeWith(writes, deletes) > s.quota {
		return ErrQuotaExceeded
	}
	for key := range deletes {
		delete(s.data, key)
	}
	for key, value := range writes {
		v := make([]byte, len(value))
		copy(v, value)
		s.data[key] = v
	}
	return nil
}

func (s *MemoryStore) sizeWith(writes map[string][]byte, deletes map[string]bool) int {
	size := 0
	for key, value := range s.data {
		if deletes[key] {
			continue
		}
		if _, replaced := writes[key]; replaced {
			continue
		}
		size += len(key) + len(value)
	}
	for key, value := range writes {
		size += len(key) + len(value)
	}
	return size
}

type memoryTx struct {
	store   *MemoryStore
	writes  map[string][]byte
	deletes map[string]bool
}

func (tx *memoryTx) Get(key string) ([]byte, error) {
	if v, ok := tx.writes[key]; ok {
		out := make([]byte, len(v))
		copy(out, v)
		return out, nil
	}
	if tx.deletes[key] {
		return nil, ErrNotFound
	}
	return tx.store.get(key)
}

func (tx *memoryTx) Set(key string, value []byte) error {
	delete(tx.deletes, key)
	tx.writes[key] = value
	return nil
}

func (tx *memoryTx) Delete(key string) error {
	delete(tx.writes, key)
	tx.deletes[key] = true
	return nil
}
