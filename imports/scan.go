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

// Package imports discovers, orders and removes CSS @import statements.
//
// Only the `@import url(...)` form is recognized. Everything else in a
// stylesheet is opaque text.
package imports

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"bennypowers.dev/cssimport/locator"
	"bennypowers.dev/cssimport/resource"
)

// importPattern matches `@import url(<url>)` with optional quotes around the
// URL, optional whitespace inside the parentheses and an optional semicolon
// directly after the closing parenthesis. Keywords are case-insensitive. The
// URL may not contain quotes or parentheses, so an unterminated url( never
// matches and a match never runs on into a later url(...).
var importPattern = regexp.MustCompile(`(?i)@import\s*url\(\s*['"]?([^'"()]*?)['"]?\s*\);?`)

// Import is a single @import statement found in a resource.
type Import struct {
	Resource resource.Resource // Imported resource, URI resolved against the importer
	Raw      string            // URL as written
	Line     int               // 1-indexed line of the statement
}

// ScanResult holds the imports of one resource.
type ScanResult struct {
	// Imports are the distinct imports in document order.
	Imports []Import
	// Duplicates are repeated imports of a URI already in Imports.
	Duplicates []Import
}

// Scan extracts the @import statements of importer's text.
// Imported resources take the importer's type.
func Scan(importer resource.Resource, text string) ScanResult {
	var result ScanResult
	seen := make(map[resource.Resource]bool)

	lineStart := 0
	line := 1
	for _, m := range importPattern.FindAllStringSubmatchIndex(text, -1) {
		line += strings.Count(text[lineStart:m[0]], "\n")
		lineStart = m[0]

		raw := strings.TrimSpace(text[m[2]:m[3]])
		if raw == "" {
			continue
		}
		imp := Import{
			Resource: resource.New(ResolveURI(importer.URI, raw), importer.Type),
			Raw:      raw,
			Line:     line,
		}
		if seen[imp.Resource] {
			result.Duplicates = append(result.Duplicates, imp)
			continue
		}
		seen[imp.Resource] = true
		result.Imports = append(result.Imports, imp)
	}
	return result
}

// Strip removes every @import statement from text, leaving everything else
// untouched.
func Strip(text string) string {
	return importPattern.ReplaceAllLiteralString(text, "")
}

// ResolveURI resolves ref against the URI of the resource importing it.
//
// Absolute URLs are kept (with dot segments removed). For remote and file://
// importers ref is resolved as a URL reference. For local web-style paths a
// leading "/" is relative to the root, anything else is relative to the
// importer's directory. A protocol-relative ref keeps the scheme of an
// http or https importer and is fetched over https from anything else.
func ResolveURI(base, ref string) string {
	if strings.HasPrefix(ref, "//") && !locator.IsRemote(base) {
		ref = "https:" + ref
	}
	if locator.Scheme(ref) != "" || locator.Scheme(base) != "" {
		if resolved, ok := resolveURL(base, ref); ok {
			return resolved
		}
		return ref
	}
	if strings.HasPrefix(ref, "/") {
		return path.Clean(ref)
	}
	return path.Join(path.Dir(base), ref)
}

func resolveURL(base, ref string) (string, bool) {
	r, err := url.Parse(ref)
	if err != nil {
		return "", false
	}
	b, err := url.Parse(base)
	if err != nil {
		return "", false
	}
	return b.ResolveReference(r).String(), true
}
