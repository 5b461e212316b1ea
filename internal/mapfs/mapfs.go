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
// Package mapfs provides an in-memory FileSystem for tests.
package mapfs

import (
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"testing/fstest"
	"time"
)

// MapFileSystem is a FileSystem backed by fstest.MapFS.
// Paths are treated as absolute slash paths; "/a/b.css" and "a/b.css" name
// the same file.
type MapFileSystem struct {
	mu      sync.RWMutex
	mapFS   fstest.MapFS
	modTime time.Time
	reads   map[string]int
}

// New creates an empty in-memory filesystem.
func New() *MapFileSystem {
	return &MapFileSystem{
		mapFS:   make(fstest.MapFS),
		modTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		reads:   make(map[string]int),
	}
}

// AddFile adds a file with the given content.
func (mfs *MapFileSystem) AddFile(name string, content string, mode fs.FileMode) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	mfs.mapFS[cleanPath(name)] = &fstest.MapFile{
		Data:    []byte(content),
		Mode:    mode,
		ModTime: mfs.modTime,
	}
}

// WriteFile implements FileSystem.
func (mfs *MapFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	mfs.mapFS[cleanPath(name)] = &fstest.MapFile{
		Data:    append([]byte(nil), data...),
		Mode:    perm,
		ModTime: mfs.modTime,
	}
	return nil
}

// ReadFile implements FileSystem.
func (mfs *MapFileSystem) ReadFile(name string) ([]byte, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	name = cleanPath(name)
	mfs.reads[name]++
	return fs.ReadFile(mfs.mapFS, name)
}

// Stat implements FileSystem.
func (mfs *MapFileSystem) Stat(name string) (fs.FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	return fs.Stat(mfs.mapFS, cleanPath(name))
}

// Exists implements FileSystem.
func (mfs *MapFileSystem) Exists(name string) bool {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	name = cleanPath(name)
	if _, ok := mfs.mapFS[name]; ok {
		return true
	}
	prefix := name + "/"
	for p := range mfs.mapFS {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// Open implements FileSystem.
func (mfs *MapFileSystem) Open(name string) (fs.File, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	name = cleanPath(name)
	mfs.reads[name]++
	return mfs.mapFS.Open(name)
}

// Reads returns how many times name was read through ReadFile or Open.
func (mfs *MapFileSystem) Reads(name string) int {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	return mfs.reads[cleanPath(name)]
}

// ListFiles returns the sorted paths of all files, for debugging.
func (mfs *MapFileSystem) ListFiles() []string {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	files := make([]string, 0, len(mfs.mapFS))
	for p := range mfs.mapFS {
		files = append(files, "/"+p)
	}
	sort.Strings(files)
	return files
}

func cleanPath(p string) string {
	cleaned := path.Clean("/" + p)
	return strings.TrimPrefix(cleaned, "/")
}
