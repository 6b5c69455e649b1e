package salaryref

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jonathan/catalitium/internal/dataset"
)

// Provider returns the reference index for a dataset path.
type Provider interface {
	Get(path string) (*Index, error)
}

// RowReader reads a dataset file into header-keyed rows.
type RowReader func(path string) ([]map[string]string, error)

// MtimeCache keeps the last built index and rebuilds it when the path or the
// file's modification time changes. It is safe for concurrent use.
type MtimeCache struct {
	read RowReader

	mu    sync.Mutex
	path  string
	mtime time.Time
	index *Index
	built int
}

// NewMtimeCache creates a cache that loads rows with read.
func NewMtimeCache(read RowReader) *MtimeCache {
	return &MtimeCache{read: read}
}

// NewFileCache creates a cache over delimited files on disk, sniffing the
// delimiter and falling back to DefaultDelimiter.
func NewFileCache() *MtimeCache {
	return NewMtimeCache(func(path string) ([]map[string]string, error) {
		return dataset.ReadFile(path, DefaultDelimiter(path))
	})
}

// Get returns the cached index for path, rebuilding it when the file changed.
// A missing file yields an empty index and no error.
func (c *MtimeCache) Get(path string) (*Index, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Index{}, nil
		}
		return nil, fmt.Errorf("failed to stat salary reference %s: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.index != nil && c.path == path && c.mtime.Equal(info.ModTime()) {
		return c.index, nil
	}

	rows, err := c.read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read salary reference %s: %w", path, err)
	}

	c.index = Build(rows)
	c.path = path
	c.mtime = info.ModTime()
	c.built++
	return c.index, nil
}

// Builds reports how many times the index has been rebuilt.
func (c *MtimeCache) Builds() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.built
}

// DefaultDelimiter returns the delimiter reference files use when sniffing is
// inconclusive: TAB for .tsv files, comma otherwise.
func DefaultDelimiter(path string) rune {
	if filepath.Ext(path) == ".tsv" {
		return '\t'
	}
	return ','
}
