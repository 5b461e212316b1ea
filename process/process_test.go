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
	"errors"
	"strings"
	"testing"

	"bennypowers.dev/cssimport/imports"
	"bennypowers.dev/cssimport/internal/mapfs"
	"bennypowers.dev/cssimport/locator"
	"bennypowers.dev/cssimport/resource"
)

func newResolver(files map[string]string) *imports.Resolver {
	mfs := mapfs.New()
	for name, content := range files {
		mfs.AddFile(name, content, 0644)
	}
	return imports.NewResolver(locator.NewFileLocator(mfs, "/"), nil)
}

func groupURIs(g *resource.Group) string {
	var out []string
	for _, r := range g.Resources() {
		out = append(out, r.URI)
	}
	return strings.Join(out, " ")
}

func TestInliner_Process(t *testing.T) {
	resolver := newResolver(map[string]string{
		"/a.css": "@import url(b.css);\na{}",
		"/b.css": "@import url(c.css);\nb{}",
		"/c.css": "c{}",
	})
	a := resource.CSSResource("/a.css")
	g := resource.NewGroup("g", a)

	out, err := NewInliner(resolver, g).Process(context.Background(), a, "@import url(b.css);\na{}")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if out != "@import url(b.css);\na{}" {
		t.Errorf("Expected input to pass through unchanged, got %q", out)
	}
	if got := groupURIs(g); got != "/c.css /b.css /a.css" {
		t.Errorf("Expected group /c.css /b.css /a.css, got %s", got)
	}
}

func TestInliner_InsertsBeforeRootOnly(t *testing.T) {
	resolver := newResolver(map[string]string{
		"/first.css":  "first{}",
		"/site.css":   "@import url(dep.css);",
		"/dep.css":    "dep{}",
		"/footer.css": "footer{}",
	})
	site := resource.CSSResource("/site.css")
	g := resource.NewGroup("g",
		resource.CSSResource("/first.css"),
		site,
		resource.CSSResource("/footer.css"),
	)

	if _, err := NewInliner(resolver, g).Inline(context.Background(), site); err != nil {
		t.Fatalf("Inline failed: %v", err)
	}
	if got := groupURIs(g); got != "/first.css /dep.css /site.css /footer.css" {
		t.Errorf("Unexpected group order: %s", got)
	}
}

func TestInliner_Idempotent(t *testing.T) {
	resolver := newResolver(map[string]string{
		"/a.css": "@import url(b.css);\n@import url(c.css);",
		"/b.css": "b{}",
		"/c.css": "c{}",
	})
	a := resource.CSSResource("/a.css")
	g := resource.NewGroup("g", a)
	inliner := NewInliner(resolver, g)

	for range 2 {
		if _, err := inliner.Process(context.Background(), a, "@import url(b.css);\n@import url(c.css);"); err != nil {
			t.Fatalf("Process failed: %v", err)
		}
	}
	if got := groupURIs(g); got != "/b.css /c.css /a.css" {
		t.Errorf("Expected no duplicate insertions, got %s", got)
	}
}

func TestInliner_SkipsPresentResourcesIndividually(t *testing.T) {
	resolver := newResolver(map[string]string{
		"/one.css":    "@import url(shared.css);",
		"/two.css":    "@import url(shared.css);\n@import url(extra.css);",
		"/shared.css": "shared{}",
		"/extra.css":  "extra{}",
	})
	one := resource.CSSResource("/one.css")
	two := resource.CSSResource("/two.css")
	g := resource.NewGroup("g", one, two)
	inliner := NewInliner(resolver, g)

	for _, r := range []resource.Resource{one, two} {
		if _, err := inliner.Inline(context.Background(), r); err != nil {
			t.Fatalf("Inline %s failed: %v", r.URI, err)
		}
	}
	// shared.css is already in the group when two.css is inlined; extra.css
	// must still be inserted.
	if got := groupURIs(g); got != "/shared.css /one.css /extra.css /two.css" {
		t.Errorf("Unexpected group order: %s", got)
	}
}

func TestInliner_RootUnreadable(t *testing.T) {
	resolver := newResolver(nil)
	missing := resource.CSSResource("/missing.css")
	g := resource.NewGroup("g", missing)

	_, err := NewInliner(resolver, g).Inline(context.Background(), missing)
	var rootErr *imports.RootError
	if !errors.As(err, &rootErr) {
		t.Fatalf("Expected *imports.RootError, got %v", err)
	}
	if g.Len() != 1 {
		t.Errorf("Expected group to be unchanged, got %s", groupURIs(g))
	}
}

func TestInliner_ResourceNotInGroup(t *testing.T) {
	resolver := newResolver(map[string]string{"/a.css": "a{}"})
	g := resource.NewGroup("g")

	_, err := NewInliner(resolver, g).Inline(context.Background(), resource.CSSResource("/a.css"))
	if !errors.Is(err, resource.ErrNotInGroup) {
		t.Errorf("Expected ErrNotInGroup, got %v", err)
	}
}

func TestInliner_ProcessUsesInput(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/a.css", "@import url(stale.css);", 0644)
	mfs.AddFile("/b.css", "b{}", 0644)
	resolver := imports.NewResolver(locator.NewFileLocator(mfs, "/"), nil)
	a := resource.CSSResource("/a.css")
	g := resource.NewGroup("g", a)
	inliner := NewInliner(resolver, g)

	input := "@import url(b.css);\n@import url(gone.css);\na{}"
	out, err := inliner.Process(context.Background(), a, input)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if out != input {
		t.Errorf("Expected input to pass through unchanged, got %q", out)
	}
	if got := groupURIs(g); got != "/b.css /a.css" {
		t.Errorf("Expected imports to come from the input text, got %s", got)
	}
	if n := mfs.Reads("/a.css"); n != 0 {
		t.Errorf("Expected /a.css not to be read, got %d reads", n)
	}

	issues := inliner.Issues()
	if len(issues) != 1 || issues[0].Type != imports.InvalidImport || issues[0].URI != "/gone.css" {
		t.Errorf("Expected one invalid import of /gone.css, got %+v", issues)
	}
}

func TestInliner_ProcessNotInGroup(t *testing.T) {
	g := resource.NewGroup("g")
	_, err := NewInliner(newResolver(nil), g).Process(context.Background(), resource.CSSResource("/a.css"), "a{}")
	if !errors.Is(err, resource.ErrNotInGroup) {
		t.Errorf("Expected ErrNotInGroup, got %v", err)
	}
}

func TestStripper(t *testing.T) {
	out, err := Stripper{}.Process("a{} @import url('x.css'); b{}")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if out != "a{}  b{}" {
		t.Errorf("Expected %q, got %q", "a{}  b{}", out)
	}
}
