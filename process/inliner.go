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
package process

import (
	"context"
	"fmt"

	"bennypowers.dev/cssimport/imports"
	"bennypowers.dev/cssimport/resource"
)

// Inliner inserts the stylesheets a resource imports into its group, ahead
// of the resource, in dependency order.
type Inliner struct {
	resolver *imports.Resolver
	group    *resource.Group
	issues   []imports.Issue
}

// NewInliner creates an Inliner that adds resources to group.
func NewInliner(resolver *imports.Resolver, group *resource.Group) *Inliner {
	return &Inliner{resolver: resolver, group: group}
}

// Process inlines the imports of r, whose content is input, and returns
// input unchanged; the @import statements are removed later by the
// Stripper.
func (in *Inliner) Process(ctx context.Context, r resource.Resource, input string) (string, error) {
	if !in.group.Contains(r) {
		return "", in.notInGroup(r)
	}
	if err := in.insert(r, in.resolver.ResolveText(ctx, r, input)); err != nil {
		return "", err
	}
	return input, nil
}

// Inline reads r through the resolver's locator, resolves its imports and
// inserts each resolved resource immediately before r, skipping any the
// group already holds. r must be in the group.
func (in *Inliner) Inline(ctx context.Context, r resource.Resource) (*imports.Result, error) {
	if !in.group.Contains(r) {
		return nil, in.notInGroup(r)
	}
	result, err := in.resolver.Resolve(ctx, r)
	if err != nil {
		return nil, err
	}
	if err := in.insert(r, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (in *Inliner) insert(r resource.Resource, result *imports.Result) error {
	in.issues = append(in.issues, result.Issues...)

	for _, dep := range result.Resources {
		if dep == r || in.group.Contains(dep) {
			continue
		}
		if err := in.group.InsertBefore(r, dep); err != nil {
			return err
		}
	}
	return nil
}

func (in *Inliner) notInGroup(r resource.Resource) error {
	return fmt.Errorf("inlining %s into group %q: %w", r.URI, in.group.Name(), resource.ErrNotInGroup)
}

// Issues returns the dropped imports of every resource inlined so far.
func (in *Inliner) Issues() []imports.Issue {
	return in.issues
}
