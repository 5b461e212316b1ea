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
package version

import (
	"strings"
	"testing"
)

func TestInfoString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"dev build", Info{Version: "dev", GitCommit: "unknown", BuildTime: "unknown", GoVersion: "go1.25.5", Platform: "linux/amd64"},
			"cssimport dev go1.25.5 linux/amd64"},
		{"commit only", Info{Version: "v1.0.0", GitCommit: "abc1234", BuildTime: "unknown", GoVersion: "go1.25.5", Platform: "linux/amd64"},
			"cssimport v1.0.0 (abc1234) go1.25.5 linux/amd64"},
		{"release", Info{Version: "v1.0.0", GitCommit: "abc1234", BuildTime: "2026-01-02T03:04:05Z", GoVersion: "go1.25.5", Platform: "darwin/arm64"},
			"cssimport v1.0.0 (abc1234, 2026-01-02T03:04:05Z) go1.25.5 darwin/arm64"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.String(); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestGet(t *testing.T) {
	info := Get()
	if info.Version == "" {
		t.Error("Expected a version")
	}
	if !strings.HasPrefix(info.GoVersion, "go") {
		t.Errorf("Expected a Go version, got %q", info.GoVersion)
	}
	if !strings.Contains(info.Platform, "/") {
		t.Errorf("Expected GOOS/GOARCH, got %q", info.Platform)
	}
}
