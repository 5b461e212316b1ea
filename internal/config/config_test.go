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
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	c, err := Load(v)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Root != "." || c.LogLevel != "normal" || c.Timeout != 30*time.Second || c.CacheSize != 256 {
		t.Errorf("Unexpected defaults: %+v", c)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cssimport.yaml")
	content := "root: styles\nlog-level: debug\ntimeout: 5s\ncache-size: 12\njobs: 3\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	v := viper.New()
	SetDefaults(v)
	if err := ReadFile(v, path); err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	c, err := Load(v)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := Config{Root: "styles", LogLevel: "debug", Timeout: 5 * time.Second, CacheSize: 12, Jobs: 3}
	if c != want {
		t.Errorf("Expected %+v, got %+v", want, c)
	}
}

func TestReadFile_Missing(t *testing.T) {
	v := viper.New()
	if err := ReadFile(v, filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for an explicit config file that does not exist")
	}
}

func TestEnv(t *testing.T) {
	t.Setenv("CSSIMPORT_LOG_LEVEL", "none")

	v := viper.New()
	SetDefaults(v)
	c, err := Load(v)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.LogLevel != "none" {
		t.Errorf("Expected log level from environment, got %q", c.LogLevel)
	}
}
