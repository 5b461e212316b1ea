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
package locator

import (
	"context"
	"testing"

	"bennypowers.dev/cssimport/internal/mapfs"
)

func TestReadText(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"plain", "a{}", "a{}"},
		{"byte order mark", "\xEF\xBB\xBFa{}", "a{}"},
		{"latin-1", "@charset \"iso-8859-1\";\nh1::after { content: \"caf\xE9\"; }", "\nh1::after { content: \"café\"; }"},
		{"utf-8 kept", "@charset \"UTF-8\";\na{}", "@charset \"UTF-8\";\na{}"},
		{"unknown label", "@charset \"klingon\";\na{}", "@charset \"klingon\";\na{}"},
		{"not at start", " @charset \"iso-8859-1\";\n\xE9", " @charset \"iso-8859-1\";\n\xE9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mfs := mapfs.New()
			mfs.AddFile("/a.css", tt.content, 0644)

			got, err := ReadText(context.Background(), NewFileLocator(mfs, "/"), "/a.css")
			if err != nil {
				t.Fatalf("ReadText failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestReadText_NotFound(t *testing.T) {
	_, err := ReadText(context.Background(), NewFileLocator(mapfs.New(), "/"), "/missing.css")
	if !IsNotFound(err) {
		t.Errorf("Expected NotFoundError, got %v", err)
	}
}
