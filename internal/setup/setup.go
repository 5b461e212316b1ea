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

// Package setup assembles the logger and locators a cssimport command runs
// with.
package setup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"bennypowers.dev/cssimport/fs"
	"bennypowers.dev/cssimport/internal/config"
	"bennypowers.dev/cssimport/internal/logging"
	"bennypowers.dev/cssimport/locator"
)

// Env holds everything a command needs.
type Env struct {
	Config  config.Config
	FS      fs.FileSystem
	Log     *zap.Logger
	Locator locator.Locator
	// AbsRoot is Config.Root made absolute.
	AbsRoot string
}

// New builds an Env from the global viper configuration.
func New(osfs fs.FileSystem) (*Env, error) {
	c, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}
	log, err := logging.New(c.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}
	absRoot, err := filepath.Abs(c.Root)
	if err != nil {
		return nil, fmt.Errorf("invalid root directory: %w", err)
	}

	files := locator.NewFileLocator(osfs, absRoot)
	remote := locator.NewHTTPLocator(nil, c.Timeout)
	dispatch := locator.NewDispatch().
		With("", files).
		With("file", files).
		With("http", remote).
		With("https", remote)

	return &Env{
		Config:  c,
		FS:      osfs,
		Log:     log,
		Locator: locator.NewCache(dispatch, c.CacheSize),
		AbsRoot: absRoot,
	}, nil
}

// URI converts a command-line argument to a resource URI: URLs are kept,
// files below the root become root-relative web paths, anything else a
// file:// URI.
func (e *Env) URI(arg string) (string, error) {
	if locator.Scheme(arg) != "" {
		return arg, nil
	}
	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", fmt.Errorf("invalid file path %q: %w", arg, err)
	}
	rel, err := filepath.Rel(e.AbsRoot, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "file://" + filepath.ToSlash(abs), nil
	}
	return "/" + filepath.ToSlash(rel), nil
}
