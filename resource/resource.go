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

// Package resource models stylesheets and the ordered groups they are
// bundled in.
package resource

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// Type is the kind of content a resource holds.
type Type int

const (
	// CSS is a stylesheet.
	CSS Type = iota
	// JS is a script.
	JS
)

// String returns the lowercase name of the type.
func (t Type) String() string {
	switch t {
	case CSS:
		return "css"
	case JS:
		return "js"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// ParseType parses a type name as accepted on the command line.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "css":
		return CSS, nil
	case "js":
		return JS, nil
	default:
		return 0, fmt.Errorf("unknown resource type %q", s)
	}
}

// TypeFromURI infers the type from the extension of the URI's path.
// Anything that is not a script is treated as a stylesheet.
func TypeFromURI(uri string) Type {
	p := uri
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".js", ".mjs":
		return JS
	default:
		return CSS
	}
}

// Resource names a single stylesheet or script by URI.
// Resources are values; two resources are equal when URI and Type match.
type Resource struct {
	URI  string `json:"uri"`
	Type Type   `json:"type"`
}

// New returns a resource for uri with the given type.
func New(uri string, t Type) Resource {
	return Resource{URI: uri, Type: t}
}

// CSSResource is shorthand for New(uri, CSS).
func CSSResource(uri string) Resource {
	return Resource{URI: uri, Type: CSS}
}

func (r Resource) String() string {
	return r.Type.String() + ":" + r.URI
}

// ErrNotInGroup is returned when an operation references a resource the
// group does not hold.
var ErrNotInGroup = errors.New("resource not in group")

// Group is an ordered, duplicate-free sequence of resources that are
// concatenated, in order, into one bundle.
//
// A Group belongs to a single bundling invocation and must not be mutated
// from more than one goroutine.
type Group struct {
	name      string
	resources []Resource
}

// NewGroup creates a group holding the given resources in order.
// Repeated resources are kept once, at their first position.
func NewGroup(name string, resources ...Resource) *Group {
	g := &Group{name: name}
	for _, r := range resources {
		g.Add(r)
	}
	return g
}

// Name returns the group's name.
func (g *Group) Name() string {
	return g.name
}

// Len returns the number of resources in the group.
func (g *Group) Len() int {
	return len(g.resources)
}

// Resources returns a copy of the group's resources in bundle order.
func (g *Group) Resources() []Resource {
	return append([]Resource(nil), g.resources...)
}

// Contains reports whether r is in the group.
func (g *Group) Contains(r Resource) bool {
	return g.indexOf(r) >= 0
}

// Add appends r unless the group already holds it.
func (g *Group) Add(r Resource) {
	if g.Contains(r) {
		return
	}
	g.resources = append(g.resources, r)
}

// InsertBefore inserts r immediately before existing.
// Nothing happens when r is already in the group.
func (g *Group) InsertBefore(existing, r Resource) error {
	if g.Contains(r) {
		return nil
	}
	i := g.indexOf(existing)
	if i < 0 {
		return fmt.Errorf("insert %s before %s: %w", r, existing, ErrNotInGroup)
	}
	g.resources = append(g.resources, Resource{})
	copy(g.resources[i+1:], g.resources[i:])
	g.resources[i] = r
	return nil
}

func (g *Group) indexOf(r Resource) int {
	for i, cur := range g.resources {
		if cur == r {
			return i
		}
	}
	return -1
}
