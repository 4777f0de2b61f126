// Package fallback is a file-backed key-value store holding records that
// could not be written to the backend. Each namespace is one JSON file of
// ordered records; writes go through a read-modify-write under a mutex.
package fallback

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Origin carried by every record written here. Records with this origin are
// eligible for reconciliation.
const OriginLocalFallback = "local-fallback"

// Operations a record can replay against the backend.
const (
	OpCreate = "create"
	OpUpdate = "update"
)

// Record wraps a pending local entity: the payload plus enough metadata to
// replay it once the backend is reachable again.
type Record struct {
	ID        int64           `json:"id"`
	Type      string          `json:"type"` // order, message
	Op        string          `json:"op"`   // create, update
	Payload   json.RawMessage `json:"payload"`
	Origin    string          `json:"origin"`
	CreatedAt time.Time       `json:"created_at"`
}

type Store struct {
	dir string
	mu  sync.Mutex
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create fallback directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(namespace string) string {
	return filepath.Join(s.dir, "burgero_"+namespace+".json")
}

// Append adds record to the end of namespace, assigning a millisecond
// timestamp id (bumped on collision so ids stay unique within one client)
// and the local-fallback origin. Existing records are never overwritten.
func (s *Store) Append(namespace string, record Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.readAll(namespace)

	record.ID = time.Now().UnixMilli()
	if n := len(records); n > 0 && records[n-1].ID >= record.ID {
		record.ID = records[n-1].ID + 1
	}
	record.Origin = OriginLocalFallback
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	records = append(records, record)
	if err := s.write(namespace, records); err != nil {
		return Record{}, err
	}
	return record, nil
}

// ReadAll returns the records under namespace in insertion order. A missing
// or malformed file reads as empty rather than failing.
func (s *Store) ReadAll(namespace string) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll(namespace)
}

// Remove deletes the record with the given id from namespace, if present.
func (s *Store) Remove(namespace string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.readAll(namespace)
	kept := records[:0]
	for _, r := range records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	return s.write(namespace, kept)
}

// Clear drops every record under namespace.
func (s *Store) Clear(namespace string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(namespace))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear namespace %s: %w", namespace, err)
	}
	return nil
}

func (s *Store) readAll(namespace string) []Record {
	data, err := os.ReadFile(s.path(namespace))
	if err != nil {
		return nil
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		// Malformed content is treated as empty, not fatal.
		return nil
	}
	return records
}

func (s *Store) write(namespace string, records []Record) error {
	if len(records) == 0 {
		err := os.Remove(s.path(namespace))
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to write namespace %s: %w", namespace, err)
		}
		return nil
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	if err := os.WriteFile(s.path(namespace), data, 0o644); err != nil {
		return fmt.Errorf("failed to write namespace %s: %w", namespace, err)
	}
	return nil
}
