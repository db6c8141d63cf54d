// Package store manages session-scoped upload folders for reference
// materials. Each session gets its own directory with one subdirectory per
// category; sessions are throwaway and reaped after a retention window.
package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/hyperifyio/godraft/internal/extract"
)

// Categories are the fixed reference-material pools a session can hold.
var Categories = []string{"style", "past", "competitive"}

// DefaultMaxFilesPerCategory caps uploads per category.
const DefaultMaxFilesPerCategory = 3

var defaultAllowedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".html": true,
	".htm":  true,
}

var (
	ErrInvalidCategory = errors.New("invalid category")
	ErrBadFilename     = errors.New("invalid filename")
	ErrTypeNotAllowed  = errors.New("file type not allowed")
	ErrCategoryFull    = errors.New("category file limit reached")
	ErrNotFound        = errors.New("file not found")
)

// Store is a directory-backed upload store.
type Store struct {
	Root                string
	MaxFilesPerCategory int
	allowedExt          map[string]bool
}

// New creates a store rooted at dir with default limits.
func New(root string) *Store {
	return &Store{
		Root:                root,
		MaxFilesPerCategory: DefaultMaxFilesPerCategory,
		allowedExt:          defaultAllowedExtensions,
	}
}

// NewSessionID mints an opaque session identifier.
func (s *Store) NewSessionID() string {
	return uuid.NewString()
}

// ValidCategory reports whether category is one of the fixed pools.
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// sessionDir resolves and creates the directory tree for a session.
func (s *Store) sessionDir(session string) (string, error) {
	if session == "" || strings.ContainsAny(session, `/\`) || session != filepath.Base(session) {
		return "", fmt.Errorf("%w: bad session id", ErrNotFound)
	}
	dir := filepath.Join(s.Root, session)
	for _, c := range Categories {
		if err := os.MkdirAll(filepath.Join(dir, c), 0o755); err != nil {
			return "", fmt.Errorf("create session dir: %w", err)
		}
	}
	return dir, nil
}

// sanitizeFilename strips any path components and rejects names that would
// escape the category directory.
func sanitizeFilename(name string) (string, error) {
	base := filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	if base == "" || base == "." || base == ".." || strings.HasPrefix(base, ".") {
		return "", ErrBadFilename
	}
	return base, nil
}

// Save writes an uploaded file into the session's category directory. The
// filename is sanitized, the extension checked against the allowlist, and the
// per-category cap enforced.
func (s *Store) Save(session, category, filename string, r io.Reader) (string, error) {
	if !ValidCategory(category) {
		return "", ErrInvalidCategory
	}
	name, err := sanitizeFilename(filename)
	if err != nil {
		return "", err
	}
	if !s.allowedExt[strings.ToLower(filepath.Ext(name))] {
		return "", ErrTypeNotAllowed
	}
	dir, err := s.sessionDir(session)
	if err != nil {
		return "", err
	}
	catDir := filepath.Join(dir, category)

	existing, err := s.List(session, category)
	if err != nil {
		return "", err
	}
	if len(existing) >= s.MaxFilesPerCategory {
		return "", ErrCategoryFull
	}

	f, err := os.Create(filepath.Join(catDir, name))
	if err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	return name, nil
}

// List returns the filenames stored for a session category, sorted.
func (s *Store) List(session, category string) ([]string, error) {
	if !ValidCategory(category) {
		return nil, ErrInvalidCategory
	}
	dir, err := s.sessionDir(session)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(filepath.Join(dir, category))
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes one uploaded file.
func (s *Store) Delete(session, category, filename string) error {
	if !ValidCategory(category) {
		return ErrInvalidCategory
	}
	name, err := sanitizeFilename(filename)
	if err != nil {
		return err
	}
	dir, err := s.sessionDir(session)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, category, name)
	if _, err := os.Stat(path); err != nil {
		return ErrNotFound
	}
	return os.Remove(path)
}

// ExtractCategory pulls the combined plain text for one category, capped at
// maxChars.
func (s *Store) ExtractCategory(session, category string, maxChars int) (string, error) {
	if !ValidCategory(category) {
		return "", ErrInvalidCategory
	}
	dir, err := s.sessionDir(session)
	if err != nil {
		return "", err
	}
	return extract.FromDir(filepath.Join(dir, category), maxChars), nil
}
