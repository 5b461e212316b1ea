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
package imports

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"bennypowers.dev/cssimport/locator"
	"bennypowers.dev/cssimport/resource"
)

// Result is the outcome of resolving one root resource.
type Result struct {
	// Resources is the root and everything it transitively imports, each
	// once, every resource after all of its imports. The root is last.
	Resources []resource.Resource
	// Issues are the import edges that were dropped, in discovery order.
	Issues []Issue
}

// RootError reports that the resource being resolved could not be read.
type RootError struct {
	Resource resource.Resource
	Err      error
}

func (e *RootError) Error() string {
	return fmt.Sprintf("resolving %s: %v", e.Resource.URI, e.Err)
}

func (e *RootError) Unwrap() error {
	return e.Err
}

// Resolver flattens the import graph below a resource into dependency
// order. It holds no per-call state, so one Resolver can serve concurrent
// resolutions as long as its Locator can.
type Resolver struct {
	locator locator.Locator
	log     *zap.Logger
}

// NewResolver creates a Resolver that reads resources through loc.
func NewResolver(loc locator.Locator, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{locator: loc, log: log.Named("resolver")}
}

// traversal is the state of a single Resolve call.
type traversal struct {
	ctx      context.Context
	stack    []resource.Resource
	active   map[resource.Resource]bool
	resolved map[resource.Resource]bool
	result   *Result
}

// edge is the @import that led the traversal to a resource.
type edge struct {
	from resource.Resource
	imp  Import
}

// Resolve walks the imports of root depth-first and returns root together
// with every resource it transitively imports, dependencies first.
//
// Unreadable imports, self imports, cycles and duplicate imports are
// dropped and reported in Result.Issues. Only a failure to read root itself
// is returned as an error, of type *RootError.
func (r *Resolver) Resolve(ctx context.Context, root resource.Resource) (*Result, error) {
	text, err := locator.ReadText(ctx, r.locator, root.URI)
	if err != nil {
		return nil, &RootError{Resource: root, Err: err}
	}
	return r.ResolveText(ctx, root, text), nil
}

// ResolveText is Resolve for a root whose content has already been read.
// Only the imports are fetched.
func (r *Resolver) ResolveText(ctx context.Context, root resource.Resource, text string) *Result {
	t := &traversal{
		ctx:      ctx,
		active:   make(map[resource.Resource]bool),
		resolved: make(map[resource.Resource]bool),
		result:   &Result{},
	}
	t.push(root)
	r.expand(t, root, text)
	return t.result
}

// walk follows the import edge via to res. Failures drop the branch and are
// recorded as issues.
func (r *Resolver) walk(t *traversal, res resource.Resource, via edge) {
	if t.resolved[res] {
		r.log.Debug("Already resolved", zap.String("uri", res.URI))
		return
	}
	if t.active[res] {
		r.report(t, Issue{
			Importer: via.from.URI,
			URI:      res.URI,
			Line:     via.imp.Line,
			Type:     Cycle,
			Chain:    t.cycle(res),
		})
		return
	}

	t.push(res)
	text, err := locator.ReadText(t.ctx, r.locator, res.URI)
	if err != nil {
		t.pop()
		r.report(t, Issue{
			Importer: via.from.URI,
			URI:      res.URI,
			Line:     via.imp.Line,
			Type:     InvalidImport,
			Err:      err,
		})
		return
	}
	r.expand(t, res, text)
}

// expand walks the imports of res, which is on top of the stack, then moves
// res from the stack to the result.
func (r *Resolver) expand(t *traversal, res resource.Resource, text string) {
	scan := Scan(res, text)
	for _, dup := range scan.Duplicates {
		r.report(t, Issue{
			Importer: res.URI,
			URI:      dup.Resource.URI,
			Line:     dup.Line,
			Type:     DuplicateImport,
		})
	}
	for _, imp := range scan.Imports {
		if imp.Resource == res {
			r.report(t, Issue{
				Importer: res.URI,
				URI:      imp.Resource.URI,
				Line:     imp.Line,
				Type:     SelfImport,
			})
			continue
		}
		r.walk(t, imp.Resource, edge{from: res, imp: imp})
	}

	t.pop()
	t.resolved[res] = true
	t.result.Resources = append(t.result.Resources, res)
	r.log.Debug("Resolved", zap.String("uri", res.URI), zap.Int("imports", len(scan.Imports)))
}

func (r *Resolver) report(t *traversal, issue Issue) {
	fields := []zap.Field{
		zap.String("importer", issue.Importer),
		zap.String("uri", issue.URI),
		zap.Int("line", issue.Line),
	}
	switch issue.Type {
	case InvalidImport:
		r.log.Warn("Invalid import, skipping", append(fields, zap.Error(issue.Err))...)
	case SelfImport:
		r.log.Warn("Resource imports itself, skipping", fields...)
	case Cycle:
		r.log.Warn("Import cycle detected, skipping", append(fields, zap.Strings("chain", issue.Chain))...)
	case DuplicateImport:
		r.log.Warn("Duplicate import", fields...)
	}
	t.result.Issues = append(t.result.Issues, issue)
}

func (t *traversal) push(res resource.Resource) {
	t.stack = append(t.stack, res)
	t.active[res] = true
}

func (t *traversal) pop() {
	res := t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
	delete(t.active, res)
}

// cycle returns the URIs on the stack from res to the top, closed by res.
func (t *traversal) cycle(res resource.Resource) []string {
	var chain []string
	for i := len(t.stack) - 1; i >= 0; i-- {
		if t.stack[i] == res {
			for _, s := range t.stack[i:] {
				chain = append(chain, s.URI)
			}
			break
		}
	}
	return append(chain, res.URI)
}
