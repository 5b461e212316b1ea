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

// Package process provides the two processors that bundle @imported
// stylesheets: the Inliner, run before concatenation, pulls imported
// resources into the group; the Stripper, run after, removes the @import
// statements that are left in the text.
package process

import (
	"context"

	"bennypowers.dev/cssimport/resource"
)

// PreProcessor transforms a resource's content before the group is
// concatenated. It may change the owning group.
type PreProcessor interface {
	Process(ctx context.Context, r resource.Resource, input string) (string, error)
}

// PostProcessor transforms content without side effects.
type PostProcessor interface {
	Process(input string) (string, error)
}

var (
	_ PreProcessor  = (*Inliner)(nil)
	_ PostProcessor = Stripper{}
)
