package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LocalStorage reads batches from a directory tree. Names are slash
// separated paths relative to the root.
type LocalStorage struct {
	root string
}

// Ensure LocalStorage implements BatchStore
var _ BatchStore = (*LocalStorage)(nil)

// NewLocalStorage opens an existing inbox directory
func NewLocalStorage(root string) (*LocalStorage, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open inbox directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("inbox path %s is not a directory", root)
	}
	return &LocalStorage{root: root}, nil
}

// Retrieve reads one batch file
func (s *LocalStorage) Retrieve(name string) ([]byte, error) {
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("invalid batch name %q", name)
	}

	data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(name)))
	if err != nil {
		return nil, fmt.Errorf("failed to read batch %s: %w", name, err)
	}
	return data, nil
}

// List returns the file names under prefix, sorted
func (s *LocalStorage) List(prefix string) ([]string, error) {
	names := []string{}

	err := fs.WalkDir(os.DirFS(s.root), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasPrefix(path, prefix) {
			names = append(names, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list inbox: %w", err)
	}

	sort.Strings(names)
	return names, nil
}
