package services

import (
	"fmt"
	"os"
	"path/filepath"
)

// ImageStore abstracts where uploaded motorcycle images live. Paths are
// relative keys; the backend decides what they map to (a directory on disk,
// an S3 bucket, ...).
type ImageStore interface {
	// Save writes the image bytes under the given key
	Save(data []byte, key string) error

	// Read returns the image bytes stored under the key
	Read(key string) ([]byte, error)

	// Exists reports whether the key currently resolves to a stored image
	Exists(key string) bool

	// Delete removes the image stored under the key
	Delete(key string) error
}

var imageStoreInstance ImageStore

// InitImageStore initializes the package-level image store instance
func InitImageStore(store ImageStore) ImageStore {
	imageStoreInstance = store
	return store
}

// GetImageStore returns the initialized image store instance
func GetImageStore() ImageStore {
	return imageStoreInstance
}

// SetImageStore sets the image store instance (primarily for testing)
func SetImageStore(store ImageStore) {
	imageStoreInstance = store
}

// LocalImageStore stores images on the local filesystem under a root
// directory, which is also where the HTTP layer serves them from.
type LocalImageStore struct {
	Root string
}

// NewLocalImageStore creates a store rooted at the given directory
func NewLocalImageStore(root string) *LocalImageStore {
	return &LocalImageStore{Root: root}
}

func (s *LocalImageStore) fullPath(key string) string {
	return filepath.Join(s.Root, filepath.FromSlash(key))
}

// Save writes the image bytes, creating the root directory if needed
func (s *LocalImageStore) Save(data []byte, key string) error {
	full := s.fullPath(key)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0644); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// Read returns the stored image bytes
func (s *LocalImageStore) Read(key string) ([]byte, error) {
	data, err := os.ReadFile(s.fullPath(key))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return data, nil
}

// Exists reports whether the image file is present on disk
func (s *LocalImageStore) Exists(key string) bool {
	info, err := os.Stat(s.fullPath(key))
	return err == nil && !info.IsDir()
}

// Delete removes the image file
func (s *LocalImageStore) Delete(key string) error {
	if err := os.Remove(s.fullPath(key)); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}
