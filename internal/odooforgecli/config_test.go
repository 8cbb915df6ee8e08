/*
 * Copyright (c) 2026. AXIOM STUDIO AI Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package odooforgecli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Organization != "AbstractiveOdooPartner" {
		t.Errorf("Organization = %q, want AbstractiveOdooPartner", cfg.Organization)
	}
	if cfg.DefaultVersion != "18.0" {
		t.Errorf("DefaultVersion = %q, want 18.0", cfg.DefaultVersion)
	}
	if cfg.ListLimit != 100 {
		t.Errorf("ListLimit = %d, want 100", cfg.ListLimit)
	}
	if cfg.Script.Interpreter != "bash" {
		t.Errorf("Script.Interpreter = %q, want bash", cfg.Script.Interpreter)
	}
	if !strings.HasSuffix(cfg.TargetDir, "odoo_projects") {
		t.Errorf("TargetDir = %q, want .../odoo_projects", cfg.TargetDir)
	}

	want := []string{"master", "19.0", "18.0", "17.0", "16.0", "14.0"}
	if len(cfg.Versions) != len(want) {
		t.Fatalf("expected %d versions, got %d", len(want), len(cfg.Versions))
	}
	for i, v := range want {
		if cfg.Versions[i] != v {
			t.Errorf("Versions[%d] = %q, want %q", i, cfg.Versions[i], v)
		}
	}
	if !containsVersion(cfg.Versions, cfg.DefaultVersion) {
		t.Error("DefaultVersion should be in Versions")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Should return defaults.
	if cfg.Organization != "AbstractiveOdooPartner" {
		t.Errorf("expected default Organization, got %q", cfg.Organization)
	}
	if len(cfg.Versions) != 6 {
		t.Errorf("expected 6 default versions, got %d", len(cfg.Versions))
	}
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	yaml := `target_dir: /srv/odoo
organization: my-org
default_version: "17.0"
list_limit: 50
script:
  path: /opt/devenv/create.sh
  interpreter: sh
`
	if err := os.WriteFile(cfgPath, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TargetDir != "/srv/odoo" {
		t.Errorf("TargetDir = %q, want /srv/odoo", cfg.TargetDir)
	}
	if cfg.Organization != "my-org" {
		t.Errorf("Organization = %q, want my-org", cfg.Organization)
	}
	if cfg.DefaultVersion != "17.0" {
		t.Errorf("DefaultVersion = %q, want 17.0", cfg.DefaultVersion)
	}
	if cfg.ListLimit != 50 {
		t.Errorf("ListLimit = %d, want 50", cfg.ListLimit)
	}
	if cfg.Script.Path != "/opt/devenv/create.sh" {
		t.Errorf("Script.Path = %q, want /opt/devenv/create.sh", cfg.Script.Path)
	}
	if cfg.Script.Interpreter != "sh" {
		t.Errorf("Script.Interpreter = %q, want sh", cfg.Script.Interpreter)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(cfgPath, []byte(":::invalid yaml{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfig(cfgPath)
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Errorf("expected 'parse config' in error, got: %v", err)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	yaml := `organization: file-org
target_dir: /from/file
`
	if err := os.WriteFile(cfgPath, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("ODOOFORGE_ORG", "env-org")
	t.Setenv("ODOOFORGE_TARGET_DIR", "/from/env")
	t.Setenv("ODOOFORGE_SCRIPT", "/env/create.sh")

	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Organization != "env-org" {
		t.Errorf("Organization = %q, want env override", cfg.Organization)
	}
	if cfg.TargetDir != "/from/env" {
		t.Errorf("TargetDir = %q, want /from/env", cfg.TargetDir)
	}
	if cfg.Script.Path != "/env/create.sh" {
		t.Errorf("Script.Path = %q, want /env/create.sh", cfg.Script.Path)
	}
}

func TestLoadConfig_RepairsHollowValues(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	yaml := `versions: []
default_version: "99.0"
list_limit: 0
script:
  interpreter: ""
`
	if err := os.WriteFile(cfgPath, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Versions) == 0 {
		t.Fatal("expected versions to be repaired to defaults")
	}
	if !containsVersion(cfg.Versions, cfg.DefaultVersion) {
		t.Errorf("DefaultVersion %q should have been repaired into Versions", cfg.DefaultVersion)
	}
	if cfg.ListLimit != 100 {
		t.Errorf("ListLimit = %d, want repaired 100", cfg.ListLimit)
	}
	if cfg.Script.Interpreter != "bash" {
		t.Errorf("Script.Interpreter = %q, want repaired bash", cfg.Script.Interpreter)
	}
}

func TestLoadConfig_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	yaml := "target_dir: ~/projects\n"
	if err := os.WriteFile(cfgPath, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Join(home, "projects")
	if cfg.TargetDir != want {
		t.Errorf("TargetDir = %q, want %q", cfg.TargetDir, want)
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "subdir", "config.yaml")

	cfg := DefaultConfig()
	cfg.Organization = "saved-org"
	cfg.TargetDir = "/saved/projects"

	if err := SaveConfig(cfg, cfgPath); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	// Verify file exists.
	if !ConfigFileExists(cfgPath) {
		t.Fatal("config file should exist after save")
	}

	// Re-read and verify.
	loaded, err := LoadConfig(cfgPath)
	if err != nil {
		t.Fatalf("LoadConfig after save failed: %v", err)
	}
	if loaded.Organization != "saved-org" {
		t.Errorf("round-trip Organization = %q, want saved-org", loaded.Organization)
	}
	if loaded.TargetDir != "/saved/projects" {
		t.Errorf("round-trip TargetDir = %q, want /saved/projects", loaded.TargetDir)
	}
}

func TestConfigFileExists(t *testing.T) {
	dir := t.TempDir()

	if ConfigFileExists(filepath.Join(dir, "nope.yaml")) {
		t.Error("should return false for missing file")
	}

	path := filepath.Join(dir, "exists.yaml")
	if err := os.WriteFile(path, []byte("x: 1"), 0644); err != nil {
		t.Fatal(err)
	}
	if !ConfigFileExists(path) {
		t.Error("should return true for existing file")
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	t.Run("tilde slash", func(t *testing.T) {
		got := expandHome("~/a/b")
		want := filepath.Join(home, "a", "b")
		if got != want {
			t.Errorf("expandHome(~/a/b) = %q, want %q", got, want)
		}
	})

	t.Run("bare tilde", func(t *testing.T) {
		if got := expandHome("~"); got != home {
			t.Errorf("expandHome(~) = %q, want %q", got, home)
		}
	})

	t.Run("absolute untouched", func(t *testing.T) {
		if got := expandHome("/abs/path"); got != "/abs/path" {
			t.Errorf("expandHome(/abs/path) = %q, want unchanged", got)
		}
	})

	t.Run("empty untouched", func(t *testing.T) {
		if got := expandHome(""); got != "" {
			t.Errorf("expandHome(\"\") = %q, want empty", got)
		}
	})
}
