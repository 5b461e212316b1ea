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
	"testing"

	"bennypowers.dev/cssimport/resource"
)

func TestScan(t *testing.T) {
	importer := resource.CSSResource("/css/site.css")

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"no imports", "body { color: red; }", nil},
		{"unquoted", "@import url(base.css);", []string{"/css/base.css"}},
		{"single quotes", "@import url('base.css');", []string{"/css/base.css"}},
		{"double quotes", `@import url("base.css");`, []string{"/css/base.css"}},
		{"no semicolon", "@import url(base.css)\nbody{}", []string{"/css/base.css"}},
		{"whitespace inside parens", "@import url(  'base.css'  ) ;", []string{"/css/base.css"}},
		{"no space after keyword", "@importurl(base.css);", []string{"/css/base.css"}},
		{"case insensitive", "@IMPORT URL(base.css);\n@Import Url(other.css);", []string{"/css/base.css", "/css/other.css"}},
		{"parent directory", "@import url(../vendor/reset.css);", []string{"/vendor/reset.css"}},
		{"root relative", "@import url(/theme/dark.css);", []string{"/theme/dark.css"}},
		{"nested directory", "@import url(./parts/./grid.css);", []string{"/css/parts/grid.css"}},
		{"remote", "@import url(https://cdn.example.com/lib/a/../b.css);", []string{"https://cdn.example.com/lib/b.css"}},
		{"protocol relative", "@import url(//cdn.example.com/x.css);", []string{"https://cdn.example.com/x.css"}},
		{"missing closing paren", "@import url(base.css;\nbody{}", nil},
		{"missing url keyword", `@import "base.css";`, nil},
		{"empty url", "@import url();", nil},
		{"document order", "@import url(b.css);\n@import url(a.css);\n@import url(c.css);", []string{"/css/b.css", "/css/a.css", "/css/c.css"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scan(importer, tt.text)
			if len(got.Imports) != len(tt.want) {
				t.Fatalf("Expected %d imports, got %d: %+v", len(tt.want), len(got.Imports), got.Imports)
			}
			for i, want := range tt.want {
				if got.Imports[i].Resource.URI != want {
					t.Errorf("Import %d: expected %q, got %q", i, want, got.Imports[i].Resource.URI)
				}
				if got.Imports[i].Resource.Type != resource.CSS {
					t.Errorf("Import %d: expected type css, got %s", i, got.Imports[i].Resource.Type)
				}
			}
		})
	}
}

func TestScan_Duplicates(t *testing.T) {
	importer := resource.CSSResource("/css/site.css")
	text := "@import url(a.css);\n@import url('a.css');\n@import url(b.css);\n@import url(./a.css);\n"

	got := Scan(importer, text)

	if len(got.Imports) != 2 {
		t.Fatalf("Expected 2 distinct imports, got %d: %+v", len(got.Imports), got.Imports)
	}
	if len(got.Duplicates) != 2 {
		t.Fatalf("Expected 2 duplicates, got %d: %+v", len(got.Duplicates), got.Duplicates)
	}
	if got.Duplicates[0].Line != 2 || got.Duplicates[1].Line != 4 {
		t.Errorf("Expected duplicates on lines 2 and 4, got %d and %d", got.Duplicates[0].Line, got.Duplicates[1].Line)
	}
}

func TestScan_Lines(t *testing.T) {
	importer := resource.CSSResource("/site.css")
	text := "/* header */\n\n@import url(a.css);\nbody {}\n@import url(b.css); @import url(c.css);\n"

	got := Scan(importer, text)

	wantLines := []int{3, 5, 5}
	if len(got.Imports) != len(wantLines) {
		t.Fatalf("Expected %d imports, got %d", len(wantLines), len(got.Imports))
	}
	for i, want := range wantLines {
		if got.Imports[i].Line != want {
			t.Errorf("Import %d: expected line %d, got %d", i, want, got.Imports[i].Line)
		}
	}
}

func TestScan_InheritsType(t *testing.T) {
	importer := resource.New("/js/app.js", resource.JS)
	got := Scan(importer, "@import url(lib.css);")
	if len(got.Imports) != 1 {
		t.Fatalf("Expected 1 import, got %d", len(got.Imports))
	}
	if got.Imports[0].Resource.Type != resource.JS {
		t.Errorf("Expected imported resource to take the importer's type, got %s", got.Imports[0].Resource.Type)
	}
}

func TestResolveURI(t *testing.T) {
	tests := []struct {
		base, ref, want string
	}{
		{"/css/site.css", "base.css", "/css/base.css"},
		{"/css/site.css", "../../x.css", "/x.css"},
		{"/css/site.css", "/abs.css", "/abs.css"},
		{"site.css", "base.css", "base.css"},
		{"https://example.com/css/site.css", "base.css", "https://example.com/css/base.css"},
		{"https://example.com/css/site.css", "../base.css", "https://example.com/base.css"},
		{"https://example.com/css/site.css", "/base.css", "https://example.com/base.css"},
		{"https://example.com/css/site.css", "//cdn.example.org/a.css", "https://cdn.example.org/a.css"},
		{"http://example.com/site.css", "//cdn.example.org/a.css", "http://cdn.example.org/a.css"},
		{"file:///srv/css/site.css", "../base.css", "file:///srv/base.css"},
		{"file:///srv/css/site.css", "//cdn.example.org/a.css", "https://cdn.example.org/a.css"},
		{"/css/site.css", "//cdn.example.org/a.css", "https://cdn.example.org/a.css"},
		{"/css/site.css", "http://other.example/a.css", "http://other.example/a.css"},
	}
	for _, tt := range tests {
		if got := ResolveURI(tt.base, tt.ref); got != tt.want {
			t.Errorf("ResolveURI(%q, %q) = %q, want %q", tt.base, tt.ref, got, tt.want)
		}
	}
}

func TestStrip(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"statement between rules", "a{} @import url('x.css'); b{}", "a{}  b{}"},
		{"no imports", "a { color: red; }\n", "a { color: red; }\n"},
		{"several", "@import url(a.css);\n@IMPORT url(\"b.css\")\nbody{}", "\n\nbody{}"},
		{"malformed left alone", "@import url(a.css;\nbody{}", "@import url(a.css;\nbody{}"},
		{"other at-rules untouched", "@media print { a{} }\n@import url(a.css);", "@media print { a{} }\n"},
		{"semicolon after whitespace kept", "@import url(a.css)\n\n;b{}", "\n\n;b{}"},
		{"space before semicolon kept", "@import url(a.css) ;", " ;"},
		{"later url() untouched", "@import url(a.css) b { background: url(x.png) }", " b { background: url(x.png) }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Strip(tt.in)
			if got != tt.want {
				t.Errorf("Strip(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if again := Strip(got); again != got {
				t.Errorf("Strip is not idempotent: %q then %q", got, again)
			}
		})
	}
}
