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

// Command cssimport inlines CSS @import statements into stylesheet bundles.
package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/cssimport/cmd/bundle"
	"bennypowers.dev/cssimport/cmd/graph"
	"bennypowers.dev/cssimport/cmd/strip"
	"bennypowers.dev/cssimport/cmd/version"
	"bennypowers.dev/cssimport/internal/config"
)

var (
	cfgFile        string
	cpuprofile     string
	cpuprofileFile *os.File
	rootCmd        = &cobra.Command{
		Use:           "cssimport",
		Short:         "Inline CSS @import statements into bundles",
		Long:          `cssimport resolves @import url(...) statements in stylesheets, local or remote, and bundles them in dependency order.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ReadFile(viper.GetViper(), cfgFile); err != nil {
				return err
			}
			if cpuprofile != "" {
				f, err := os.Create(cpuprofile)
				if err != nil {
					return fmt.Errorf("could not create CPU profile: %w", err)
				}
				cpuprofileFile = f
				if err := pprof.StartCPUProfile(f); err != nil {
					closeErr := f.Close()
					return errors.Join(
						fmt.Errorf("could not start CPU profile: %w", err),
						closeErr,
					)
				}
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if cpuprofileFile != nil {
				pprof.StopCPUProfile()
				if err := cpuprofileFile.Close(); err != nil {
					return fmt.Errorf("closing CPU profile: %w", err)
				}
			}
			return nil
		},
	}
)

func init() {
	config.SetDefaults(viper.GetViper())

	// Root flags (persistent across all commands)
	rootCmd.PersistentFlags().StringP(config.KeyRoot, "r", ".", "Root directory of local stylesheets")
	rootCmd.PersistentFlags().StringP(config.KeyOutput, "o", "", "Output file (default: stdout)")
	rootCmd.PersistentFlags().String(config.KeyLogLevel, "normal", "Log level (none, normal, debug)")
	rootCmd.PersistentFlags().Duration(config.KeyTimeout, 0, "Timeout for fetching remote stylesheets (default: 30s)")
	rootCmd.PersistentFlags().Int(config.KeyCacheSize, 0, "Maximum number of stylesheets kept in memory (default: 256)")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: .cssimport.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&cpuprofile, "cpuprofile", "", "Write CPU profile to file")

	for _, key := range []string{config.KeyRoot, config.KeyOutput, config.KeyLogLevel, config.KeyTimeout, config.KeyCacheSize} {
		_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key))
	}

	// Add commands
	rootCmd.AddCommand(bundle.Cmd)
	rootCmd.AddCommand(graph.Cmd)
	rootCmd.AddCommand(strip.Cmd)
	rootCmd.AddCommand(version.Cmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
