// Package cache tracks which session/script source files have changed
// since they were last loaded, so cmd/newlang's `repl --watch` loop can
// skip re-parsing and re-evaluating a file whose content hasn't moved.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Cache stores per-source-file content hashes across CLI invocations
// (and, within a single `repl --watch` run, across fsnotify events), plus
// a NewLang-specific annotation: how many macro definitions each file
// declared the last time it was loaded, for `repl --watch`/`:reload` to
// report alongside a plain "file changed" line.
type Cache struct {
	Hashes map[string]string `json:"hashes"`
	Macros map[string]int    `json:"macros"`
	path   string
}

// New builds an empty Cache backed by cachePath.
func New(cachePath string) *Cache {
	return &Cache{
		Hashes: make(map[string]string),
		Macros: make(map[string]int),
		path:   cachePath,
	}
}

// persisted is the on-disk shape of a Cache: the two maps, keyed
// identically by source path, with no other state.
type persisted struct {
	Hashes map[string]string `json:"hashes"`
	Macros map[string]int    `json:"macros"`
}

// Load reads a previously saved Cache from cachePath; a missing file is
// not an error — a fresh run has simply never cached anything yet.
func Load(cachePath string) (*Cache, error) {
	c := New(cachePath)

	data, err := os.ReadFile(cachePath)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("failed to read cache: %w", err)
	}

	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse cache: %w", err)
	}
	if p.Hashes != nil {
		c.Hashes = p.Hashes
	}
	if p.Macros != nil {
		c.Macros = p.Macros
	}

	return c, nil
}

// Save persists the cache to disk, creating its parent directory if
// needed.
func (c *Cache) Save() error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.MarshalIndent(persisted{Hashes: c.Hashes, Macros: c.Macros}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}

	return nil
}

// NeedsReload reports whether srcPath's on-disk content differs from
// what was last cached for it, and records the new hash as a side
// effect (mirroring a watch loop's "check, then remember" usage: the
// caller that decides to skip a reload has already paid for the read).
func (c *Cache) NeedsReload(srcPath string) (bool, error) {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return true, err
	}

	hash := sha256.Sum256(data)
	currentHash := hex.EncodeToString(hash[:])

	cached, exists := c.Hashes[srcPath]
	if !exists || cached != currentHash {
		c.Hashes[srcPath] = currentHash
		return true, nil
	}

	return false, nil
}

// Touch records srcPath's current content hash without reporting
// whether it changed, for callers that already know a reload just
// happened.
func (c *Cache) Touch(srcPath string) error {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}

	hash := sha256.Sum256(data)
	c.Hashes[srcPath] = hex.EncodeToString(hash[:])
	return nil
}

// Invalidate drops srcPath's cached hash, forcing the next NeedsReload
// call to report true regardless of content. `repl --watch` calls this
// on an fsnotify Remove/Rename event, where no post-event read is
// possible to compute a fresh hash.
func (c *Cache) Invalidate(srcPath string) {
	delete(c.Hashes, srcPath)
	delete(c.Macros, srcPath)
}

// Clear drops every cached hash and macro count, used by `repl`'s
// `:reload` command so the next NeedsReload call on any path reports a
// change again.
func (c *Cache) Clear() {
	c.Hashes = make(map[string]string)
	c.Macros = make(map[string]int)
}

// RecordMacros remembers how many macro definitions srcPath declared the
// last time it was successfully loaded (spec §4.2's macro store, counted
// per file rather than kept alive across reloads — see pkg/macro.CountDefs).
func (c *Cache) RecordMacros(srcPath string, n int) {
	c.Macros[srcPath] = n
}

// MacroCount reports how many macro definitions srcPath declared the
// last time RecordMacros was called for it, or 0 if never recorded.
func (c *Cache) MacroCount(srcPath string) int {
	return c.Macros[srcPath]
}
