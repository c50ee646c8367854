package internal

import (
	"crypto/sha256"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	tt "github.com/gnolang/lessp/internal/types"
)

const (
	cacheFileName = "lessp_cache.gob"
	DefaultMaxAge = 24 * time.Hour
	cacheDirPerm  = 0o755
)

type fileMetadata struct {
	Hash         string
	LastModified time.Time
}

type CacheEntry struct {
	Metadata     fileMetadata
	Issues       []tt.Issue
	CreatedAt    time.Time
	LastAccessed time.Time
}

// Cache remembers the issues found in a file until its content, its
// modification time or one of the dependency files changes.
type Cache struct {
	CacheDir         string
	entries          map[string]CacheEntry
	mutex            sync.RWMutex
	maxAge           time.Duration
	dependencyFiles  []string
	dependencyHashes map[string]string
}

func NewCache(cacheDir string) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, cacheDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	cache := &Cache{
		CacheDir:         cacheDir,
		entries:          make(map[string]CacheEntry),
		maxAge:           DefaultMaxAge,
		dependencyHashes: make(map[string]string),
	}

	if err := cache.load(); err != nil {
		return nil, fmt.Errorf("failed to load cache: %w", err)
	}

	return cache, nil
}

func (c *Cache) path() string {
	return filepath.Join(c.CacheDir, cacheFileName)
}

func (c *Cache) load() error {
	file, err := os.Open(c.path())
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open cache file: %w", err)
	}
	defer file.Close()

	decoder := gob.NewDecoder(file)
	if err := decoder.Decode(&c.entries); err != nil {
		return fmt.Errorf("failed to decode cache file: %w", err)
	}

	return nil
}

func (c *Cache) save() error {
	file, err := os.Create(c.path())
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer file.Close()

	encoder := gob.NewEncoder(file)
	if err := encoder.Encode(c.entries); err != nil {
		return fmt.Errorf("failed to encode cache file: %w", err)
	}

	return nil
}

// SetDependencies registers files, such as the configuration file, whose
// change invalidates every entry.
func (c *Cache) SetDependencies(files ...string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.dependencyFiles = files
	c.dependencyHashes = make(map[string]string, len(files))
	return c.updateDependencyHashes()
}

func (c *Cache) Set(filename string, issues []tt.Issue) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	metadata, err := getFileMetadata(filename)
	if err != nil {
		return fmt.Errorf("failed to get file metadata: %w", err)
	}

	now := time.Now()
	c.entries[filename] = CacheEntry{
		Metadata:     metadata,
		Issues:       issues,
		CreatedAt:    now,
		LastAccessed: now,
	}

	return c.save()
}

func (c *Cache) Get(filename string) ([]tt.Issue, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.entries[filename]
	if !exists {
		return nil, false
	}

	if c.isEntryInvalid(filename, entry) {
		delete(c.entries, filename)
		return nil, false
	}

	entry.LastAccessed = time.Now()
	c.entries[filename] = entry

	return entry.Issues, true
}

// Len returns the number of entries, including stale ones not yet evicted.
func (c *Cache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.entries)
}

func (c *Cache) isEntryInvalid(filename string, entry CacheEntry) bool {
	if c.maxAge > 0 && time.Since(entry.CreatedAt) > c.maxAge {
		return true
	}

	currentMetadata, err := getFileMetadata(filename)
	if err != nil || !currentMetadata.equal(entry.Metadata) {
		return true
	}

	return c.haveDependenciesChanged()
}

func (c *Cache) haveDependenciesChanged() bool {
	for _, file := range c.dependencyFiles {
		hash, err := getFileHash(file)
		if err != nil {
			return true
		}

		if hash != c.dependencyHashes[file] {
			return true
		}
	}

	return false
}

func (c *Cache) updateDependencyHashes() error {
	for _, file := range c.dependencyFiles {
		hash, err := getFileHash(file)
		if err != nil {
			return fmt.Errorf("failed to get hash for %s: %w", file, err)
		}
		c.dependencyHashes[file] = hash
	}
	return nil
}

// SetMaxAge bounds how long an entry stays valid. Zero disables the bound.
func (c *Cache) SetMaxAge(duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.maxAge = duration
}

func (c *Cache) InvalidateAll() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]CacheEntry)
	_ = c.save() // best effort; the in-memory state is already clear
}

func (m fileMetadata) equal(other fileMetadata) bool {
	return m.Hash == other.Hash && m.LastModified.Equal(other.LastModified)
}

func getFileMetadata(filename string) (fileMetadata, error) {
	file, err := os.Open(filename)
	if err != nil {
		return fileMetadata{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return fileMetadata{}, fmt.Errorf("failed to calculate hash: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		return fileMetadata{}, fmt.Errorf("failed to get file info: %w", err)
	}

	return fileMetadata{
		Hash:         fmt.Sprintf("%x", hash.Sum(nil)),
		LastModified: info.ModTime(),
	}, nil
}

func getFileHash(filename string) (string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}
