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

// Package locator fetches the raw bytes of resources given their URI.
//
// Locators are shared by concurrent bundling of independent groups, so every
// implementation in this package is safe for concurrent use.
package locator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"strings"
)

// Locator opens the content of the resource named by uri.
// Any returned error means the resource cannot be read.
type Locator interface {
	Locate(ctx context.Context, uri string) (io.ReadCloser, error)
}

// Func adapts a function to the Locator interface.
type Func func(ctx context.Context, uri string) (io.ReadCloser, error)

// Locate calls f(ctx, uri).
func (f Func) Locate(ctx context.Context, uri string) (io.ReadCloser, error) {
	return f(ctx, uri)
}

// NotFoundError reports that a URI could not be located or read.
type NotFoundError struct {
	URI string
	Err error
}

func (e *NotFoundError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("locate %s: not found", e.URI)
	}
	return fmt.Sprintf("locate %s: %v", e.URI, e.Err)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// Dispatch routes each URI to the locator registered for its scheme.
// URIs without a scheme use the locator registered for "".
type Dispatch struct {
	byScheme map[string]Locator
}

// NewDispatch creates a Dispatch with no registered locators.
func NewDispatch() *Dispatch {
	return &Dispatch{byScheme: make(map[string]Locator)}
}

// With returns a new Dispatch that also routes scheme to l.
// Schemes are matched case-insensitively.
func (d *Dispatch) With(scheme string, l Locator) *Dispatch {
	next := &Dispatch{byScheme: maps.Clone(d.byScheme)}
	next.byScheme[strings.ToLower(scheme)] = l
	return next
}

// Locate implements Locator.
func (d *Dispatch) Locate(ctx context.Context, uri string) (io.ReadCloser, error) {
	scheme := Scheme(uri)
	l, ok := d.byScheme[scheme]
	if !ok {
		return nil, &NotFoundError{URI: uri, Err: fmt.Errorf("no locator for scheme %q", scheme)}
	}
	return l.Locate(ctx, uri)
}

// Scheme returns the lowercase URI scheme of uri, or "" for plain paths.
// Single-letter schemes are treated as Windows drive letters, not schemes.
func Scheme(uri string) string {
	i := strings.Index(uri, ":")
	if i <= 1 {
		return ""
	}
	for j, c := range uri[:i] {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case j > 0 && ('0' <= c && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return ""
		}
	}
	return strings.ToLower(uri[:i])
}

// IsRemote reports whether uri names a resource fetched over HTTP.
func IsRemote(uri string) bool {
	switch Scheme(uri) {
	case "http", "https":
		return true
	}
	return false
}
