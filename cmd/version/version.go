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
// Package version provides the version command for cssimport.
package version

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"bennypowers.dev/cssimport/internal/version"
)

// Cmd prints the build information of the running binary.
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Example: `  cssimport version
  cssimport version --short
  cssimport version --format json`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
	Cmd.Flags().Bool("short", false, "Print only the version number")
}

func run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	short, _ := cmd.Flags().GetBool("short")
	w := cmd.OutOrStdout()

	info := version.Get()
	switch {
	case short:
		_, err := fmt.Fprintln(w, info.Version)
		return err
	case format == "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case format == "text":
		_, err := fmt.Fprintln(w, info)
		return err
	}
	return fmt.Errorf("invalid format %q: must be one of text, json", format)
}
