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
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"bennypowers.dev/cssimport/fs"
)

// FileLocator reads local resources below a root directory.
//
// URIs are web-style: "/css/site.css" and "css/site.css" both name
// <root>/css/site.css. "file://" URIs are read from their absolute path and
// must name the local host.
type FileLocator struct {
	fs      fs.FileSystem
	rootDir string
}

// NewFileLocator creates a FileLocator serving files under rootDir.
func NewFileLocator(fsys fs.FileSystem, rootDir string) *FileLocator {
	return &FileLocator{fs: fsys, rootDir: rootDir}
}

// Locate implements Locator.
func (l *FileLocator) Locate(ctx context.Context, uri string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, &NotFoundError{URI: uri, Err: err}
	}
	p, err := l.Path(uri)
	if err != nil {
		return nil, &NotFoundError{URI: uri, Err: err}
	}
	f, err := l.fs.Open(p)
	if err != nil {
		return nil, &NotFoundError{URI: uri, Err: err}
	}
	return f, nil
}

// Path maps uri to the filesystem path it is read from.
func (l *FileLocator) Path(uri string) (string, error) {
	if Scheme(uri) == "file" {
		u, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		if u.Host != "" && u.Host != "localhost" {
			return "", fmt.Errorf("file URI on remote host %q", u.Host)
		}
		return filepath.FromSlash(u.Path), nil
	}
	// Query strings and fragments (cache busters, mostly) are not part of
	// the file name.
	if i := strings.IndexAny(uri, "?#"); i >= 0 {
		uri = uri[:i]
	}
	clean := path.Clean("/" + uri)
	return filepath.Join(l.rootDir, filepath.FromSlash(clean)), nil
}
