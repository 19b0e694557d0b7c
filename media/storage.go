package media

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Target is one storage root for derived media. Several targets may be
// configured to tolerate different deployment filesystem layouts; writes and
// deletes are attempted against every one of them.
type Target interface {
	Name() string
	Save(folder, filename string, data []byte) error
	Remove(rel string) error
	RemoveAll(folder string) error
	Walk(fn func(rel string) error) error
}

// DirTarget stores media under a local directory tree. Missing directories
// are created recursively on write.
type DirTarget struct {
	root string
}

func NewDirTarget(root string) *DirTarget {
	return &DirTarget{root: root}
}

func (t *DirTarget) Name() string {
	return "dir:" + t.root
}

func (t *DirTarget) Save(folder, filename string, data []byte) error {
	dir := filepath.Join(t.root, filepath.FromSlash(folder))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, filename), data, 0o644)
}

// Remove deletes one file by its root-relative path. A file that is already
// gone counts as removed.
func (t *DirTarget) Remove(rel string) error {
	err := os.Remove(filepath.Join(t.root, filepath.FromSlash(rel)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// RemoveAll deletes a whole folder subtree. Absent folders count as removed.
func (t *DirTarget) RemoveAll(folder string) error {
	return os.RemoveAll(filepath.Join(t.root, filepath.FromSlash(folder)))
}

// Walk visits every stored file, passing its root-relative slash path.
func (t *DirTarget) Walk(fn func(rel string) error) error {
	err := filepath.WalkDir(t.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(t.root, path)
		if err != nil {
			return err
		}
		return fn(filepath.ToSlash(rel))
	})
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
