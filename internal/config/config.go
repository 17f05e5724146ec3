package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

type Config struct {
	Owners     OwnersConfig     `toml:"owners"`
	CardFields CardFieldsConfig `toml:"card_fields"`
	Board      BoardConfig      `toml:"board"`
	Keys       KeyConfig        `toml:"keys"`
	Logging    LoggingConfig    `toml:"logging"`
}

type OwnersConfig struct {
	Names []string `toml:"names"`
}

type CardFieldsConfig struct {
	ShowOwner      bool `toml:"show_owner"`
	ShowPriority   bool `toml:"show_priority"`
	ShowDueDate    bool `toml:"show_due_date"`
	ShowCost       bool `toml:"show_cost"`
	ShowRatingBump bool `toml:"show_rating_bump"`
	ShowMentions   bool `toml:"show_mentions"`
}

type BoardConfig struct {
	ConfirmDelete bool `toml:"confirm_delete"`
	SeedDemoData  bool `toml:"seed_demo_data"`
}

type KeyConfig struct {
	AddTask   string `toml:"add_task"`
	Grab      string `toml:"grab"`
	Duplicate string `toml:"duplicate"`
	Delete    string `toml:"delete"`
	Toggle    string `toml:"toggle"`
	Yank      string `toml:"yank"`
}

type LoggingConfig struct {
	Level   string `toml:"level"` // debug | info | warn | error
	DevFile string `toml:"dev_file"`
}

func Default() Config {
	return Config{
		Owners: OwnersConfig{
			Names: nil, // empty means the built-in roster
		},
		CardFields: CardFieldsConfig{
			ShowOwner:      true,
			ShowPriority:   true,
			ShowDueDate:    true,
			ShowCost:       true,
			ShowRatingBump: false,
			ShowMentions:   true,
		},
		Board: BoardConfig{
			ConfirmDelete: true,
			SeedDemoData:  true,
		},
		Keys: KeyConfig{
			AddTask:   "a",
			Grab:      "g",
			Duplicate: "y",
			Delete:    "x",
			Toggle:    " ",
			Yank:      "c",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	seen := map[string]struct{}{}
	for i, name := range c.Owners.Names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			return fmt.Errorf("owners.names[%d] is empty", i)
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("owners.names[%d] is duplicated: %s", i, trimmed)
		}
		seen[key] = struct{}{}
	}

	keys := map[string]string{
		"keys.add_task":  c.Keys.AddTask,
		"keys.grab":      c.Keys.Grab,
		"keys.duplicate": c.Keys.Duplicate,
		"keys.delete":    c.Keys.Delete,
		"keys.toggle":    c.Keys.Toggle,
		"keys.yank":      c.Keys.Yank,
	}
	bound := map[string]string{}
	for field, key := range keys {
		if key == "" {
			return fmt.Errorf("%s is required", field)
		}
		if other, ok := bound[key]; ok {
			return fmt.Errorf("%s conflicts with %s: both bound to %q", field, other, key)
		}
		bound[key] = field
	}

	switch strings.TrimSpace(strings.ToLower(c.Logging.Level)) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}

	return nil
}

func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
