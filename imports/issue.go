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
	"fmt"
	"strings"
)

// IssueType classifies an import that was skipped during resolution.
type IssueType int

const (
	// InvalidImport indicates the imported resource could not be read.
	InvalidImport IssueType = iota
	// SelfImport indicates a resource imports itself.
	SelfImport
	// Cycle indicates the import re-enters a resource still being resolved.
	Cycle
	// DuplicateImport indicates a resource imports the same URI more than once.
	DuplicateImport
)

// String returns a human-readable description of the issue type.
func (t IssueType) String() string {
	switch t {
	case InvalidImport:
		return "invalid import"
	case SelfImport:
		return "self import"
	case Cycle:
		return "import cycle"
	case DuplicateImport:
		return "duplicate import"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t IssueType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Issue is a recovered problem with one import edge. Issues never stop
// resolution; the offending edge is dropped.
type Issue struct {
	Importer string    // URI of the resource containing the @import
	URI      string    // Resolved URI of the imported resource
	Line     int       // Line of the @import in the importer
	Type     IssueType // What went wrong
	Chain    []string  // For cycles, the URIs from the re-entered resource back to it
	Err      error     // For invalid imports, the locator error
}

func (i Issue) String() string {
	switch i.Type {
	case Cycle:
		return fmt.Sprintf("%s:%d: %s: %s", i.Importer, i.Line, i.Type, strings.Join(i.Chain, " -> "))
	case InvalidImport:
		return fmt.Sprintf("%s:%d: %s %q: %v", i.Importer, i.Line, i.Type, i.URI, i.Err)
	default:
		return fmt.Sprintf("%s:%d: %s %q", i.Importer, i.Line, i.Type, i.URI)
	}
}

// IssueJSON is the JSON representation of an Issue.
type IssueJSON struct {
	Importer  string   `json:"importer"`
	URI       string   `json:"uri"`
	Line      int      `json:"line"`
	IssueType string   `json:"issue_type"`
	Chain     []string `json:"chain,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// JSON converts the issue to its JSON representation.
func (i Issue) JSON() IssueJSON {
	j := IssueJSON{
		Importer:  i.Importer,
		URI:       i.URI,
		Line:      i.Line,
		IssueType: i.Type.String(),
		Chain:     i.Chain,
	}
	if i.Err != nil {
		j.Error = i.Err.Error()
	}
	return j
}
