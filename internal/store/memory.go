package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-process Store used by tests and the `memory` backend.
// Documents are flattened through JSON so equality lookups see the same
// field names the durable store would.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]any
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{collections: make(map[string]map[string]map[string]any)}
}

// Insert adds a document and returns a generated ID.
func (m *Memory) Insert(ctx context.Context, collection string, doc any) (string, error) {
	data, err := toMap(doc)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	coll, ok := m.collections[collection]
	if !ok {
		coll = make(map[string]map[string]any)
		m.collections[collection] = coll
	}

	id := uuid.NewString()
	coll[id] = data
	return id, nil
}

// ExistsByField reports whether any document carries the value in the field.
func (m *Memory) ExistsByField(ctx context.Context, collection, field, value string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, data := range m.collections[collection] {
		if s, ok := data[field].(string); ok && s == value {
			return true, nil
		}
	}
	return false, nil
}

// List returns every document in the collection.
func (m *Memory) List(ctx context.Context, collection string) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := make([]Document, 0, len(m.collections[collection]))
	for id, data := range m.collections[collection] {
		docs = append(docs, Document{ID: id, Data: data})
	}
	return docs, nil
}

// Delete removes a document by ID; unknown IDs are a no-op.
func (m *Memory) Delete(ctx context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if coll, ok := m.collections[collection]; ok {
		delete(coll, id)
	}
	return nil
}

func toMap(doc any) (map[string]any, error) {
	if data, ok := doc.(map[string]any); ok {
		return data, nil
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return data, nil
}
