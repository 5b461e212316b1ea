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

// Package config reads cssimport settings from flags, environment and an
// optional YAML config file through viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Keys shared by flags, environment (CSSIMPORT_<KEY>) and config file.
const (
	KeyRoot      = "root"
	KeyOutput    = "output"
	KeyLogLevel  = "log-level"
	KeyTimeout   = "timeout"
	KeyCacheSize = "cache-size"
	KeyJobs      = "jobs"
)

// Config is the resolved cssimport configuration.
type Config struct {
	Root      string
	Output    string
	LogLevel  string
	Timeout   time.Duration
	CacheSize int
	Jobs      int
}

// SetDefaults registers defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyRoot, ".")
	v.SetDefault(KeyLogLevel, "normal")
	v.SetDefault(KeyTimeout, 30*time.Second)
	v.SetDefault(KeyCacheSize, 256)
	v.SetEnvPrefix("CSSIMPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// ReadFile loads the config file at path into v. With an empty path,
// .cssimport.yaml in the working directory is used if present.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".cssimport")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// Load returns the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	c := Config{
		Root:      v.GetString(KeyRoot),
		Output:    v.GetString(KeyOutput),
		LogLevel:  v.GetString(KeyLogLevel),
		Timeout:   v.GetDuration(KeyTimeout),
		CacheSize: v.GetInt(KeyCacheSize),
		Jobs:      v.GetInt(KeyJobs),
	}
	if c.Timeout < 0 {
		return c, fmt.Errorf("invalid timeout %s", c.Timeout)
	}
	return c, nil
}
