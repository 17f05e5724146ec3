package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"), Default())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Board.ConfirmDelete {
		t.Fatal("expected default confirm_delete")
	}
	if cfg.Keys.AddTask != "a" {
		t.Fatalf("unexpected add_task key %q", cfg.Keys.AddTask)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[owners]
names = ["Asha", "Bruno"]

[board]
confirm_delete = false
seed_demo_data = false

[card_fields]
show_cost = false

[keys]
grab = "m"

[logging]
level = "debug"
`)
	cfg, err := Load(path, Default())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Owners.Names) != 2 || cfg.Owners.Names[0] != "Asha" {
		t.Fatalf("unexpected owners %v", cfg.Owners.Names)
	}
	if cfg.Board.ConfirmDelete || cfg.Board.SeedDemoData {
		t.Fatal("expected board flags overridden")
	}
	if cfg.CardFields.ShowCost {
		t.Fatal("expected show_cost overridden")
	}
	if cfg.Keys.Grab != "m" {
		t.Fatalf("unexpected grab key %q", cfg.Keys.Grab)
	}
	if cfg.Keys.AddTask != "a" {
		t.Fatal("expected unset keys to keep defaults")
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected level %q", cfg.Logging.Level)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"empty owner", "[owners]\nnames = [\" \"]\n"},
		{"duplicate owner", "[owners]\nnames = [\"Asha\", \"asha\"]\n"},
		{"conflicting keys", "[keys]\ngrab = \"a\"\n"},
		{"blank key", "[keys]\ndelete = \"\"\n"},
		{"bad level", "[logging]\nlevel = \"loud\"\n"},
		{"bad toml", "owners = [[[\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.content), Default()); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestEnsureConfigDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.toml")
	if err := EnsureConfigDir(path); err != nil {
		t.Fatalf("EnsureConfigDir() error = %v", err)
	}
	info, err := os.Stat(filepath.Dir(path))
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory, err = %v", err)
	}
}
