// Package storage persists evaluated scenarios. It stores the plain data
// envelope (configuration, parameters, overrides, evaluation result) and
// nothing else; serialization here is an adapter concern, not the engine's.
// Backends: memory (tests, embedded use) and file (one JSON document per
// scenario).
package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"chaincost/core/evaluate"
	"chaincost/core/scenario"
	"chaincost/internal/errors"
)

// Backend is a storage backend type
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendFile   Backend = "file"
)

// StoredScenario is the persistence envelope for one evaluated scenario
type StoredScenario struct {
	// ID is the storage key, assigned on first save
	ID string `json:"id"`

	// ScenarioID/VariantID/ProfileID group saved entries for the caller
	ScenarioID string `json:"scenario_id,omitempty"`
	VariantID  string `json:"variant_id,omitempty"`
	ProfileID  string `json:"profile_id,omitempty"`

	// Seed identifies the network the scenario was evaluated against
	Seed int64 `json:"seed"`

	Configuration scenario.Configuration `json:"configuration"`
	Parameters    scenario.Parameters    `json:"parameters"`
	Overrides     scenario.Overrides     `json:"product_overrides,omitempty"`

	// Evaluation is the result at save time; stale after re-evaluation
	Evaluation *evaluate.Result `json:"evaluation_result,omitempty"`

	// CreatedAt is the save timestamp
	CreatedAt time.Time `json:"timestamp"`
}

// Store is the scenario storage interface
type Store interface {
	// Save stores a scenario, assigning ID and CreatedAt if unset
	Save(ctx context.Context, s *StoredScenario) error

	// Get retrieves a scenario by ID
	Get(ctx context.Context, id string) (*StoredScenario, error)

	// List returns all scenarios, oldest first
	List(ctx context.Context) ([]*StoredScenario, error)

	// Delete removes a scenario
	Delete(ctx context.Context, id string) error

	// Close releases backend resources
	Close() error
}

// New creates a store. dir is required for the file backend.
func New(backend Backend, dir string) (Store, error) {
	switch backend {
	case BackendMemory, "":
		return NewMemoryStore(), nil
	case BackendFile:
		return NewFileStore(dir)
	}
	return nil, errors.New(errors.TypeConfig, "unknown storage backend: "+string(backend))
}

func stamp(s *StoredScenario) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
}

// MemoryStore keeps scenarios in process memory
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]*StoredScenario
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]*StoredScenario)}
}

func (m *MemoryStore) Save(_ context.Context, s *StoredScenario) error {
	stamp(s)
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.items[s.ID] = &cp
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*StoredScenario, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.items[id]
	if !ok {
		return nil, errors.NotFound("scenario", id)
	}
	cp := *s
	return &cp, nil
}

func (m *MemoryStore) List(_ context.Context) ([]*StoredScenario, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*StoredScenario, 0, len(m.items))
	for _, s := range m.items {
		cp := *s
		out = append(out, &cp)
	}
	sortScenarios(out)
	return out, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return errors.NotFound("scenario", id)
	}
	delete(m.items, id)
	return nil
}

func (m *MemoryStore) Close() error { return nil }

// FileStore persists one JSON document per scenario under a directory
type FileStore struct {
	mu  sync.Mutex
	dir string
}

// NewFileStore creates the directory if needed
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New(errors.TypeConfig, "file store requires a directory")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.TypeStorage, "create store directory", err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(id string) string {
	return filepath.Join(f.dir, id+".json")
}

func (f *FileStore) Save(_ context.Context, s *StoredScenario) error {
	stamp(s)
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(errors.TypeStorage, "encode scenario", err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.WriteFile(f.path(s.ID), data, 0644); err != nil {
		return errors.Wrap(errors.TypeStorage, "write scenario", err)
	}
	return nil
}

func (f *FileStore) Get(_ context.Context, id string) (*StoredScenario, error) {
	data, err := os.ReadFile(f.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("scenario", id)
		}
		return nil, errors.Wrap(errors.TypeStorage, "read scenario", err)
	}
	var s StoredScenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(errors.TypeStorage, "decode scenario", err)
	}
	return &s, nil
}

func (f *FileStore) List(ctx context.Context) ([]*StoredScenario, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, errors.Wrap(errors.TypeStorage, "list scenarios", err)
	}
	var out []*StoredScenario
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		s, err := f.Get(ctx, strings.TrimSuffix(e.Name(), ".json"))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	sortScenarios(out)
	return out, nil
}

func (f *FileStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path(id)); err != nil {
		if os.IsNotExist(err) {
			return errors.NotFound("scenario", id)
		}
		return errors.Wrap(errors.TypeStorage, "delete scenario", err)
	}
	return nil
}

func (f *FileStore) Close() error { return nil }

func sortScenarios(s []*StoredScenario) {
	sort.SliceStable(s, func(i, j int) bool {
		if !s[i].CreatedAt.Equal(s[j].CreatedAt) {
			return s[i].CreatedAt.Before(s[j].CreatedAt)
		}
		return s[i].ID < s[j].ID
	})
}
