// Package assets handles asset archive loading and caching.
package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/png" // sprite sheets are stored as PNG
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Faultbox/charlook/pkg/node"
)

// ErrNotFound is returned when no search root holds the requested file.
var ErrNotFound = errors.New("asset not found")

// Manager mounts JSON archives into one node tree and resolves the files
// (images, sounds) that tree references.
type Manager struct {
	root   *node.Dir
	dirs   []string
	cache  *Cache
	images map[string]image.Image
	mu     sync.RWMutex
}

// NewManager creates a new asset manager. File lookups search dirs in
// reverse order (last added = highest priority).
func NewManager(dirs ...string) *Manager {
	return &Manager{
		root:   node.NewDir(""),
		dirs:   dirs,
		cache:  NewCache(),
		images: make(map[string]image.Image),
	}
}

// AddArchive parses a JSON archive and mounts it under its base name without
// extension (Character.json -> "Character").
func (m *Manager) AddArchive(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("opening archive %s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return m.Mount(name, data)
}

// Mount parses data as a JSON archive named name and mounts it.
func (m *Manager) Mount(name string, data []byte) error {
	n, err := node.Parse(name, data)
	if err != nil {
		return fmt.Errorf("parsing archive %s: %w", name, err)
	}

	m.mu.Lock()
	m.root.Mount(n)
	m.mu.Unlock()
	return nil
}

// AddDir adds a search directory for referenced files.
func (m *Manager) AddDir(dir string) {
	m.mu.Lock()
	m.dirs = append(m.dirs, dir)
	m.mu.Unlock()
}

// Root returns the mounted tree.
func (m *Manager) Root() node.Node {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.root
}

// Load reads a referenced file from the search directories.
func (m *Manager) Load(path string) ([]byte, error) {
	// Check cache first
	if data, ok := m.cache.Get(path); ok {
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.dirs) - 1; i >= 0; i-- {
		data, err := os.ReadFile(filepath.Join(m.dirs[i], filepath.FromSlash(path)))
		if err == nil {
			m.cache.Set(path, data)
			return data, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
}

// Image decodes and caches the image at path. It implements sprite.ImageSource.
func (m *Manager) Image(path string) (image.Image, error) {
	m.mu.RLock()
	img, ok := m.images[path]
	m.mu.RUnlock()
	if ok {
		return img, nil
	}

	data, err := m.Load(path)
	if err != nil {
		return nil, err
	}
	img, _, err = image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	m.mu.Lock()
	m.images[path] = img
	m.mu.Unlock()
	return img, nil
}

// Close drops every mounted archive and cached file.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.root = node.NewDir("")
	m.images = make(map[string]image.Image)
	m.cache.Clear()
}

// CacheStats returns hit and miss counts of referenced file lookups.
func (m *Manager) CacheStats() (hits, misses int) {
	return m.cache.Stats()
}

// Cache is a simple in-memory cache for loaded files.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
