package sharecard

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Cache provides file-based caching for generated share cards.
type Cache struct {
	dir    string
	maxAge time.Duration
}

// NewCache creates a card cache in dir, creating the directory if needed.
// Cards go stale after maxAge so repeated shares track the snapshot cadence.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create card cache dir: %w", err)
	}
	return &Cache{
		dir:    dir,
		maxAge: 15 * time.Minute,
	}, nil
}

func (c *Cache) path(location string) string {
	return filepath.Join(c.dir, fmt.Sprintf("card_%s.png", slugify(location)))
}

// Get retrieves a cached card if it exists and is not stale.
func (c *Cache) Get(location string) ([]byte, bool) {
	path := c.path(location)
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}

	if time.Since(info.ModTime()) > c.maxAge {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores a card in the cache.
func (c *Cache) Set(location string, data []byte) error {
	return os.WriteFile(c.path(location), data, 0644)
}

// GetAny returns any cached card as a fallback when generation fails.
func (c *Cache) GetAny() ([]byte, bool) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, false
	}

	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".png" {
			data, err := os.ReadFile(filepath.Join(c.dir, entry.Name()))
			if err == nil {
				return data, true
			}
		}
	}
	return nil, false
}

func slugify(location string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(location) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}
