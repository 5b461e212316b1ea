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

// Package output provides shared output utilities for cssimport commands.
package output

import (
	"fmt"
	"io"

	"bennypowers.dev/cssimport/fs"
)

// Write writes content to path, or to w when path is empty.
func Write(osfs fs.FileSystem, w io.Writer, path, content string) error {
	if path != "" {
		if err := osfs.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		return nil
	}
	_, err := io.WriteString(w, content)
	return err
}
