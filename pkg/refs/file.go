package refs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cuemby/hutch/pkg/types"
)

// FileRefs implements Refs on the filesystem. Each ref is a regular file
// at <base>/refs/<name> whose bytes are the hash; the name's /-separated
// segments become directories. The on-disk tree is a faithful projection
// of the mapping: one file per bound name and no empty directories left
// behind by deletes.
//
// Individual operations are not atomic against a concurrent process on
// the same base path; single-writer use is assumed. A runner batch is not
// atomic against filesystem faults either: if a ref write fails partway
// through a batch, the refs written before it stay in place.
type FileRefs struct {
	refsDir string
}

// NewFileRefs creates a filesystem-backed ref mapping rooted at baseDir,
// creating the refs directory if needed.
func NewFileRefs(baseDir string) (*FileRefs, error) {
	refsDir := filepath.Join(baseDir, "refs")
	if err := os.MkdirAll(refsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create refs directory: %w", err)
	}
	return &FileRefs{refsDir: refsDir}, nil
}

func (r *FileRefs) refPath(name string) string {
	return filepath.Join(r.refsDir, filepath.FromSlash(name))
}

func (r *FileRefs) Set(name string, hash types.Hash) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	path := r.refPath(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create ref directories for %q: %w", name, err)
	}
	if err := os.WriteFile(path, []byte(hash), 0644); err != nil {
		return fmt.Errorf("failed to write ref %q: %w", name, err)
	}
	return nil
}

func (r *FileRefs) Get(name string) (types.Hash, bool, error) {
	if err := ValidateName(name); err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(r.refPath(name))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read ref %q: %w", name, err)
	}
	return types.Hash(strings.TrimSpace(string(data))), true, nil
}

func (r *FileRefs) Delete(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	path := r.refPath(name)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete ref %q: %w", name, err)
	}

	// Prune ancestor directories that the delete emptied, stopping at the
	// refs root or the first non-empty directory.
	for dir := filepath.Dir(path); dir != r.refsDir; dir = filepath.Dir(dir) {
		if err := os.Remove(dir); err != nil {
			break
		}
	}
	return nil
}

func (r *FileRefs) List(prefix string) ([]string, error) {
	var names []string
	err := filepath.WalkDir(r.refsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(r.refsDir, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk refs: %w", err)
	}
	sort.Strings(names)
	return names, nil
}
