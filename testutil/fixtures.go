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
// Package testutil provides testing utilities for cssimport.
package testutil

import (
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"bennypowers.dev/cssimport/internal/mapfs"
)

// updateGolden rewrites golden files with actual output when -update is set.
var updateGolden = flag.Bool("update", false, "update golden files with actual output")

// fixtureCandidates lists where testdata/<rel> may live relative to the
// package under test.
func fixtureCandidates(rel string) []string {
	return []string{
		filepath.Join("testdata", rel),
		filepath.Join("..", "testdata", rel),
		filepath.Join("..", "..", "testdata", rel),
	}
}

// NewFixtureFS loads every file below testdata/<fixtureDir> into an
// in-memory filesystem, rooted at rootPath.
func NewFixtureFS(t *testing.T, fixtureDir string, rootPath string) *mapfs.MapFileSystem {
	t.Helper()

	var fixturePath string
	for _, p := range fixtureCandidates(fixtureDir) {
		if _, err := os.Stat(p); err == nil {
			fixturePath = p
			break
		}
	}
	if fixturePath == "" {
		t.Fatalf("Could not find fixtures at %s (tried all paths)", fixtureDir)
	}

	mfs := mapfs.New()
	err := filepath.WalkDir(fixturePath, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		content, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(fixturePath, p)
		if err != nil {
			return err
		}
		mfs.AddFile(filepath.ToSlash(filepath.Join(rootPath, rel)), string(content), 0644)
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to load fixtures from %s: %v", fixtureDir, err)
	}
	return mfs
}

// LoadGoldenFile reads testdata/<goldenPath>. It returns nil when -update
// is set so the caller can write the actual output instead.
func LoadGoldenFile(t *testing.T, goldenPath string) []byte {
	t.Helper()
	if *updateGolden {
		return nil
	}
	var err error
	for _, p := range fixtureCandidates(goldenPath) {
		var content []byte
		if content, err = os.ReadFile(p); err == nil {
			return content
		}
	}
	t.Fatalf("Failed to read golden file %s (tried all paths): %v", goldenPath, err)
	return nil
}

// UpdateGoldenFile writes actual to testdata/<goldenPath> when -update is set.
func UpdateGoldenFile(t *testing.T, goldenPath string, actual []byte) {
	t.Helper()
	if !*updateGolden {
		return
	}

	candidates := fixtureCandidates(goldenPath)
	target := candidates[0]
	for _, p := range candidates {
		if _, err := os.Stat(filepath.Dir(p)); err == nil {
			target = p
			break
		}
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		t.Fatalf("Failed to create directory for golden file %s: %v", goldenPath, err)
	}
	if err := os.WriteFile(target, actual, 0644); err != nil {
		t.Fatalf("Failed to write golden file %s: %v", goldenPath, err)
	}
	t.Logf("Updated golden file: %s", target)
}

// ObservedLogger returns a debug-level logger whose entries can be
// inspected through the returned observer.
func ObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}
