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

// Package strip provides the strip command for cssimport.
package strip

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/cssimport/fs"
	"bennypowers.dev/cssimport/internal/config"
	"bennypowers.dev/cssimport/internal/output"
	"bennypowers.dev/cssimport/process"
)

// Cmd is the strip cobra command.
var Cmd = &cobra.Command{
	Use:   "strip [file.css]",
	Short: "Remove @import statements from a stylesheet",
	Long: `Remove every @import url(...) statement from a stylesheet without
resolving anything. Reads standard input when no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	osfs := fs.NewOSFileSystem()

	var input []byte
	var err error
	if len(args) == 1 {
		input, err = osfs.ReadFile(args[0])
	} else {
		input, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	out, err := process.Stripper{}.Process(string(input))
	if err != nil {
		return err
	}
	return output.Write(osfs, cmd.OutOrStdout(), viper.GetString(config.KeyOutput), out)
}
