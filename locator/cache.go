/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/
package locator

import (
	"bytes"
	"context"
	"io"
	"sync"
)

// Cache wraps a Locator and keeps the content of located resources in
// memory. Each URI is loaded at most once, even when requested by several
// goroutines at the same time. Failures are not cached.
type Cache struct {
	next    Locator
	mu      sync.Mutex
	entries map[string]*cacheEntry
	order   []string // insertion order, oldest first
	maxSize int
}

type cacheEntry struct {
	once sync.Once
	data []byte
	err  error
}

// NewCache creates a cache of at most maxSize resources in front of next.
// When full, the oldest entry is evicted.
func NewCache(next Locator, maxSize int) *Cache {
	if maxSize <= 0 {
		maxSize = 256
	}
	return &Cache{
		next:    next,
		entries: make(map[string]*cacheEntry),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
	}
}

// Locate implements Locator.
func (c *Cache) Locate(ctx context.Context, uri string) (io.ReadCloser, error) {
	c.mu.Lock()
	entry, ok := c.entries[uri]
	if !ok {
		entry = &cacheEntry{}
		if len(c.entries) >= c.maxSize {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.entries[uri] = entry
		c.order = append(c.order, uri)
	}
	c.mu.Unlock()

	// Load outside the lock
	entry.once.Do(func() {
		entry.data, entry.err = c.load(ctx, uri)
	})

	if entry.err != nil {
		c.mu.Lock()
		if c.entries[uri] == entry {
			c.removeLocked(uri)
		}
		c.mu.Unlock()
		return nil, entry.err
	}
	return io.NopCloser(bytes.NewReader(entry.data)), nil
}

func (c *Cache) load(ctx context.Context, uri string) ([]byte, error) {
	rc, err := c.next.Locate(ctx, uri)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, &NotFoundError{URI: uri, Err: err}
	}
	return data, nil
}

// Invalidate drops uri from the cache.
func (c *Cache) Invalidate(uri string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(uri)
}

func (c *Cache) removeLocked(uri string) {
	delete(c.entries, uri)
	for i, k := range c.order {
		if k == uri {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Size returns the number of cached resources.
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
