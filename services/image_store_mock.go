package services

import (
	"fmt"
	"sync"
)

// MockImageStore is an in-memory ImageStore implementation for testing
type MockImageStore struct {
	images map[string][]byte
	mu     sync.RWMutex

	// FailReads makes Read return an error for every key, to exercise
	// degradation paths
	FailReads bool
}

// NewMockImageStore creates a new in-memory image store
func NewMockImageStore() *MockImageStore {
	return &MockImageStore{
		images: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global image store instance
func (m *MockImageStore) SetAsMockForTesting() {
	SetImageStore(m)
}

// Save stores the image bytes in memory
func (m *MockImageStore) Save(data []byte, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	m.images[key] = stored
	return nil
}

// Read returns the stored image bytes
func (m *MockImageStore) Read(key string) ([]byte, error) {
	if m.FailReads {
		return nil, fmt.Errorf("mock read failure for %s", key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, exists := m.images[key]
	if !exists {
		return nil, fmt.Errorf("image not found in mock store: %s", key)
	}
	return data, nil
}

// Exists reports whether the key is present
func (m *MockImageStore) Exists(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.images[key]
	return exists
}

// Delete removes the key from the store
func (m *MockImageStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.images[key]; !exists {
		return fmt.Errorf("image not found in mock store: %s", key)
	}
	delete(m.images, key)
	return nil
}

// Keys returns all stored keys (for testing assertions)
func (m *MockImageStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.images))
	for k := range m.images {
		keys = append(keys, k)
	}
	return keys
}

// Clear removes all images from the store
func (m *MockImageStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.images = make(map[string][]byte)
}
