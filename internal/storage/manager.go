package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/agrodetect/backend/internal/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned when an upload ID is unknown to the store.
var ErrNotFound = errors.New("file not found")

// Store defines the interface for upload storage.
type Store interface {
	Save(name string, r io.Reader) (*models.FileInfo, error)
	Get(id string) (*models.FileInfo, error)
	List(limit int) ([]*models.FileInfo, error)
	Delete(id string) error
	Prune(maxAge time.Duration) (int, error)
}

// LocalStore implements Store using the local filesystem. Files are
// written once and never modified afterwards.
type LocalStore struct {
	mu        sync.RWMutex
	uploadDir string
	files     map[string]*models.FileInfo
	now       func() time.Time
}

// NewLocalStore creates a new LocalStore.
func NewLocalStore(uploadDir string) (*LocalStore, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}

	return &LocalStore{
		uploadDir: uploadDir,
		files:     make(map[string]*models.FileInfo),
		now:       time.Now,
	}, nil
}

// StoredName returns the on-disk name for an upload received at t:
// the millisecond timestamp followed by the original base name.
func StoredName(t time.Time, name string) string {
	return fmt.Sprintf("%d-%s", t.UnixMilli(), sanitizeName(name))
}

// Save writes r under a unique name derived from the current time and
// the original filename.
func (s *LocalStore) Save(name string, r io.Reader) (*models.FileInfo, error) {
	uploadedAt := s.now()
	f, stored, err := s.createUnique(uploadedAt, name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	path := filepath.Join(s.uploadDir, stored)
	size, err := io.Copy(f, r)
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("writing file: %w", err)
	}

	info := &models.FileInfo{
		ID:         uuid.New().String(),
		Name:       name,
		StoredName: stored,
		Path:       path,
		Size:       size,
		UploadedAt: uploadedAt,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[info.ID] = info

	return info, nil
}

// createUnique opens a new file exclusively. Two uploads of the same name in
// the same millisecond get a random segment inserted after the timestamp.
func (s *LocalStore) createUnique(t time.Time, name string) (*os.File, string, error) {
	stored := StoredName(t, name)
	for attempt := 0; attempt < 5; attempt++ {
		f, err := os.OpenFile(filepath.Join(s.uploadDir, stored), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			return f, stored, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", fmt.Errorf("creating file: %w", err)
		}
		stored = fmt.Sprintf("%d-%s-%s", t.UnixMilli(), uuid.New().String()[:8], sanitizeName(name))
	}
	return nil, "", fmt.Errorf("creating file: no free name for %q", name)
}

// Get retrieves file metadata by ID.
func (s *LocalStore) Get(id string) (*models.FileInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, ok := s.files[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return info, nil
}

// List returns the most recent files.
func (s *LocalStore) List(limit int) ([]*models.FileInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []*models.FileInfo
	for _, info := range s.files {
		list = append(list, info)
	}

	// Sort by UploadedAt desc
	sort.Slice(list, func(i, j int) bool {
		return list[i].UploadedAt.After(list[j].UploadedAt)
	})

	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}

	return list, nil
}

// Delete removes a file from storage.
func (s *LocalStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, ok := s.files[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if err := os.Remove(info.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting file: %w", err)
	}

	delete(s.files, id)
	return nil
}

// Prune deletes every upload older than maxAge and reports how many were
// removed. Files left over from earlier runs are judged by their mtime.
func (s *LocalStore) Prune(maxAge time.Duration) (int, error) {
	cutoff := s.now().Add(-maxAge)

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.uploadDir)
	if err != nil {
		return 0, fmt.Errorf("reading upload directory: %w", err)
	}

	byName := make(map[string]string, len(s.files))
	for id, info := range s.files {
		byName[info.StoredName] = id
	}

	removed := 0
	var errs []error
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}

		modTime := fi.ModTime()
		id, known := byName[entry.Name()]
		if known {
			modTime = s.files[id].UploadedAt
		}
		if !modTime.Before(cutoff) {
			continue
		}

		if err := os.Remove(filepath.Join(s.uploadDir, entry.Name())); err != nil && !os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("removing %s: %w", entry.Name(), err))
			continue
		}
		if known {
			delete(s.files, id)
		}
		removed++
	}

	return removed, errors.Join(errs...)
}

// sanitizeName keeps only the base name so uploads cannot escape the
// upload directory.
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	base := filepath.Base(name)
	if base == "." || base == "/" || base == ".." {
		return "upload"
	}
	return base
}
