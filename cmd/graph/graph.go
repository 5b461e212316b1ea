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

// Package graph provides the graph command for cssimport.
package graph

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bennypowers.dev/cssimport/fs"
	"bennypowers.dev/cssimport/imports"
	"bennypowers.dev/cssimport/internal/output"
	"bennypowers.dev/cssimport/internal/setup"
	"bennypowers.dev/cssimport/resource"
)

// Cmd is the graph cobra command that prints the order in which a
// stylesheet's imports are bundled.
var Cmd = &cobra.Command{
	Use:   "graph file.css",
	Short: "Print the resolved import order of a stylesheet",
	Long: `Resolve the @import graph of a stylesheet and print its resources in
bundle order, dependencies first, together with any imports that were
dropped (unreadable, self imports, cycles, duplicates).`,
	Example: `  cssimport graph css/site.css
  cssimport graph https://example.com/site.css --format text`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "json", "Output format (json, text)")
}

// Output is the JSON form of a resolved graph.
type Output struct {
	Root      string              `json:"root"`
	Resources []string            `json:"resources"`
	Issues    []imports.IssueJSON `json:"issues,omitempty"`
}

func run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json", "text":
		// valid
	default:
		return fmt.Errorf("invalid format %q: must be one of json, text", format)
	}

	env, err := setup.New(fs.NewOSFileSystem())
	if err != nil {
		return err
	}
	defer func() { _ = env.Log.Sync() }()

	uri, err := env.URI(args[0])
	if err != nil {
		return err
	}
	root := resource.New(uri, resource.TypeFromURI(uri))

	result, err := imports.NewResolver(env.Locator, env.Log).Resolve(cmd.Context(), root)
	if err != nil {
		return fmt.Errorf("failed to resolve: %w", err)
	}

	out := Format(root, result, format)
	return output.Write(env.FS, cmd.OutOrStdout(), env.Config.Output, out+"\n")
}

// Format renders a resolved graph as "json" or "text".
func Format(root resource.Resource, result *imports.Result, format string) string {
	if format == "text" {
		var sb strings.Builder
		for i, r := range result.Resources {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, r.URI)
		}
		for _, issue := range result.Issues {
			fmt.Fprintf(&sb, "warning: %s\n", issue)
		}
		return strings.TrimSuffix(sb.String(), "\n")
	}

	o := Output{Root: root.URI, Resources: make([]string, 0, len(result.Resources))}
	for _, r := range result.Resources {
		o.Resources = append(o.Resources, r.URI)
	}
	for _, issue := range result.Issues {
		o.Issues = append(o.Issues, issue.JSON())
	}
	data, _ := json.MarshalIndent(o, "", "  ")
	return string(data)
}
