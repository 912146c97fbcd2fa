// mock_storage.go - Mock storage implementation for testing
package testutil

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/agrodetect/backend/internal/models"
	"github.com/agrodetect/backend/internal/storage"
)

// MockStorage implements storage.Store in memory for testing
type MockStorage struct {
	files    map[string]*models.FileInfo
	fileData map[string][]byte
	seq      int
	mu       sync.RWMutex

	// Now stamps uploads; defaults to time.Now.
	Now     func() time.Time
	// SaveErr, when set, makes every Save fail.
	SaveErr error
}

var _ storage.Store = (*MockStorage)(nil)

// NewMockStorage creates a new empty mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		files:    make(map[string]*models.FileInfo),
		fileData: make(map[string][]byte),
		Now:      time.Now,
	}
}

func (m *MockStorage) Save(name string, r io.Reader) (*models.FileInfo, error) {
	if m.SaveErr != nil {
		return nil, m.SaveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return m.SaveBytes(name, data), nil
}

// SaveBytes stores data directly, bypassing SaveErr.
func (m *MockStorage) SaveBytes(name string, data []byte) *models.FileInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	now := m.Now()
	stored := storage.StoredName(now, name)
	file := &models.FileInfo{
		ID:         fmt.Sprintf("test-%d", m.seq),
		Name:       name,
		StoredName: stored,
		Path:       "/mock/uploads/" + stored,
		Size:       int64(len(data)),
		UploadedAt: now,
	}

	m.files[file.ID] = file
	m.fileData[file.ID] = data
	return file
}

// Data returns the bytes stored for id.
func (m *MockStorage) Data(id string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.fileData[id]
	return data, ok
}

func (m *MockStorage) Get(id string) (*models.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	file, ok := m.files[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	return file, nil
}

func (m *MockStorage) List(limit int) ([]*models.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var files []*models.FileInfo
	for _, file := range m.files {
		files = append(files, file)
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].UploadedAt.After(files[j].UploadedAt)
	})
	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}
	return files, nil
}

func (m *MockStorage) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.files[id]; !exists {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}

	delete(m.files, id)
	delete(m.fileData, id)
	return nil
}

func (m *MockStorage) Prune(maxAge time.Duration) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if maxAge <= 0 {
		return 0, errors.New("maxAge must be positive")
	}

	cutoff := m.Now().Add(-maxAge)
	removed := 0
	for id, file := range m.files {
		if file.UploadedAt.Before(cutoff) {
			delete(m.files, id)
			delete(m.fileData, id)
			removed++
		}
	}
	return removed, nil
}

// FileCount returns the number of stored files
func (m *MockStorage) FileCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.files)
}
