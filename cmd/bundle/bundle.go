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

// Package bundle provides the bundle command for cssimport.
package bundle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"bennypowers.dev/cssimport/bundle"
	"bennypowers.dev/cssimport/fs"
	"bennypowers.dev/cssimport/internal/config"
	"bennypowers.dev/cssimport/internal/output"
	"bennypowers.dev/cssimport/internal/setup"
	"bennypowers.dev/cssimport/resource"
)

// Cmd is the bundle cobra command.
var Cmd = &cobra.Command{
	Use:   "bundle [file.css...]",
	Short: "Bundle stylesheets with their @imports inlined",
	Long: `Bundle stylesheets, inlining everything they @import in dependency order
and removing the @import statements.

Files given as arguments form a single bundle, concatenated in argument order.
With --glob, every matching file is bundled on its own and the results are
written as NDJSON, one object per file.`,
	Example: `  # Bundle one stylesheet and its imports
  cssimport bundle css/site.css

  # Bundle several stylesheets into one file
  cssimport bundle css/reset.css css/site.css -o dist/site.css

  # Bundle every page stylesheet in parallel
  cssimport bundle --glob "pages/**/*.css" -j 8`,
	RunE: run,
}

func init() {
	Cmd.Flags().String("glob", "", "Glob pattern; bundle each matching file separately (e.g., \"css/**/*.css\")")
	Cmd.Flags().IntP(config.KeyJobs, "j", 0, "Number of parallel workers (default: number of CPUs)")
	Cmd.Flags().String("separator", "\n", "Text written between bundled stylesheets")
	_ = viper.BindPFlag(config.KeyJobs, Cmd.Flags().Lookup(config.KeyJobs))
}

func run(cmd *cobra.Command, args []string) error {
	env, err := setup.New(fs.NewOSFileSystem())
	if err != nil {
		return err
	}
	defer func() { _ = env.Log.Sync() }()

	globPattern, _ := cmd.Flags().GetString("glob")
	separator, _ := cmd.Flags().GetString("separator")

	switch {
	case globPattern != "" && len(args) > 0:
		return fmt.Errorf("file arguments and --glob cannot be combined")
	case globPattern == "" && len(args) == 0:
		return fmt.Errorf("no files to bundle: provide file arguments or use --glob")
	}

	bundler := bundle.New(env.Locator, bundle.Options{
		Parallel:  env.Config.Jobs,
		Separator: separator,
	}, env.Log)

	if globPattern == "" {
		return runSingle(cmd, env, bundler, args)
	}
	return runBatch(cmd, env, bundler, globPattern)
}

func runSingle(cmd *cobra.Command, env *setup.Env, bundler *bundle.Bundler, args []string) error {
	g := resource.NewGroup("bundle")
	for _, arg := range args {
		uri, err := env.URI(arg)
		if err != nil {
			return err
		}
		g.Add(resource.New(uri, resource.TypeFromURI(uri)))
	}

	// Dropped imports are logged as warnings by the resolver.
	result, err := bundler.Bundle(cmd.Context(), g)
	if err != nil {
		return fmt.Errorf("failed to bundle: %w", err)
	}

	return output.Write(env.FS, cmd.OutOrStdout(), env.Config.Output, result.CSS)
}

func runBatch(cmd *cobra.Command, env *setup.Env, bundler *bundle.Bundler, pattern string) error {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return fmt.Errorf("invalid glob pattern: %w", err)
	}

	// Deduplicate by absolute path
	seen := make(map[string]struct{})
	var groups []*resource.Group
	for _, match := range matches {
		absPath, err := filepath.Abs(match)
		if err != nil {
			return fmt.Errorf("invalid file path %q: %w", match, err)
		}
		if _, exists := seen[absPath]; exists {
			continue
		}
		seen[absPath] = struct{}{}
		uri, err := env.URI(absPath)
		if err != nil {
			return err
		}
		groups = append(groups, resource.NewGroup(uri, resource.CSSResource(uri)))
	}
	if len(groups) == 0 {
		return fmt.Errorf("no files match %q", pattern)
	}

	var out *os.File
	if env.Config.Output != "" {
		out, err = os.Create(env.Config.Output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", env.Config.Output, err)
		}
		defer out.Close()
	}
	encoder := json.NewEncoder(cmd.OutOrStdout())
	if out != nil {
		encoder = json.NewEncoder(out)
	}

	var errorCount int
	for result := range bundler.BundleBatch(cmd.Context(), groups) {
		if result.Error != "" {
			errorCount++
		}
		if err := encoder.Encode(result); err != nil {
			env.Log.Error("Unable to encode result", zap.String("group", result.Group), zap.Error(err))
		}
	}

	if errorCount == len(groups) {
		return fmt.Errorf("all %d files failed to bundle", errorCount)
	}
	return nil
}
