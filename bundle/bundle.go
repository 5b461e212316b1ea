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

// Package bundle concatenates resource groups into single stylesheets,
// inlining @imported stylesheets along the way.
package bundle

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"bennypowers.dev/cssimport/imports"
	"bennypowers.dev/cssimport/locator"
	"bennypowers.dev/cssimport/process"
	"bennypowers.dev/cssimport/resource"
)

// Options configures bundling.
type Options struct {
	// Parallel is the number of groups bundled at once by BundleBatch.
	// Defaults to runtime.NumCPU() if <= 0.
	Parallel int
	// Separator is written between resources. Defaults to "\n".
	Separator string
}

// Result is the outcome of bundling one group.
type Result struct {
	Group     string              `json:"group"`
	Resources []string            `json:"resources"`
	CSS       string              `json:"css"`
	Issues    []imports.IssueJSON `json:"issues,omitempty"`
	Error     string              `json:"error,omitempty"`

	issues []imports.Issue
}

// ImportIssues returns the dropped imports found while bundling.
func (r *Result) ImportIssues() []imports.Issue {
	return r.issues
}

// Bundler inlines and concatenates groups.
type Bundler struct {
	locator  locator.Locator
	resolver *imports.Resolver
	opts     Options
	log      *zap.Logger
}

// New creates a Bundler reading resources through loc. Wrapping loc in a
// locator.Cache avoids fetching each resource twice, once to resolve its
// imports and once to concatenate it.
func New(loc locator.Locator, opts Options, log *zap.Logger) *Bundler {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Separator == "" {
		opts.Separator = "\n"
	}
	return &Bundler{
		locator:  loc,
		resolver: imports.NewResolver(loc, log),
		opts:     opts,
		log:      log.Named("bundle"),
	}
}

// Bundle inlines the imports of every stylesheet in g into g, then
// concatenates the group with @import statements removed.
//
// A group item whose own content cannot be read is left out of the bundle
// and reported in the returned error; the rest of the group is still
// bundled. Dropped imports are reported in the result, not as errors.
func (b *Bundler) Bundle(ctx context.Context, g *resource.Group) (*Result, error) {
	result := &Result{Group: g.Name()}
	inliner := process.NewInliner(b.resolver, g)

	var errs error
	texts := make(map[resource.Resource]string)
	unreadable := make(map[resource.Resource]bool)
	for _, r := range g.Resources() {
		if r.Type != resource.CSS {
			continue
		}
		text, err := locator.ReadText(ctx, b.locator, r.URI)
		if err == nil {
			text, err = inliner.Process(ctx, r, text)
		}
		if err != nil {
			b.log.Error("Unable to inline", zap.String("uri", r.URI), zap.Error(err))
			unreadable[r] = true
			errs = multierr.Append(errs, fmt.Errorf("inlining %s: %w", r.URI, err))
			continue
		}
		texts[r] = text
	}
	result.addIssues(inliner.Issues())

	var stripper process.Stripper
	var sb strings.Builder
	for _, r := range g.Resources() {
		if unreadable[r] {
			continue
		}
		text, ok := texts[r]
		if !ok {
			var err error
			if text, err = locator.ReadText(ctx, b.locator, r.URI); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("reading %s: %w", r.URI, err))
				continue
			}
		}
		if r.Type == resource.CSS {
			var err error
			if text, err = stripper.Process(text); err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
		}
		if len(result.Resources) > 0 {
			sb.WriteString(b.opts.Separator)
		}
		sb.WriteString(text)
		result.Resources = append(result.Resources, r.URI)
	}
	result.CSS = sb.String()

	b.log.Debug("Bundled group",
		zap.String("group", g.Name()),
		zap.Int("resources", len(result.Resources)),
		zap.Int("issues", len(result.issues)),
	)
	if errs != nil {
		result.Error = errs.Error()
	}
	return result, errs
}

func (r *Result) addIssues(issues []imports.Issue) {
	for _, issue := range issues {
		r.issues = append(r.issues, issue)
		r.Issues = append(r.Issues, issue.JSON())
	}
}

// BundleBatch bundles independent groups in parallel.
// Returns a channel of Results that is closed when all groups are done.
// Each group is bundled by a single goroutine; the locator is shared.
func (b *Bundler) BundleBatch(ctx context.Context, groups []*resource.Group) <-chan Result {
	results := make(chan Result, len(groups))

	go func() {
		defer close(results)

		parallel := b.opts.Parallel
		if parallel <= 0 {
			parallel = runtime.NumCPU()
		}

		jobs := make(chan *resource.Group, len(groups))

		var wg sync.WaitGroup
		for range parallel {
			wg.Go(func() {
				for g := range jobs {
					// Errors are carried in Result.Error.
					result, _ := b.Bundle(ctx, g)
					results <- *result
				}
			})
		}

		for _, g := range groups {
			if ctx.Err() != nil {
				results <- Result{Group: g.Name(), Error: ctx.Err().Error()}
				continue
			}
			jobs <- g
		}
		close(jobs)

		wg.Wait()
	}()

	return results
}
