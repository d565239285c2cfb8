// Package storage persists the settings and statistics records as flat
// key-value JSON documents in the user config directory. Load failures fall
// back to defaults; the game never depends on a successful read.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/Laserlicht/toweroops/game"
)

const (
	appDirName            = "toweroops"
	settingsFile          = "settings.json"
	statisticsFile        = "statistics.json"
	defaultAnimationSpeed = 0.2
)

// Settings is the persisted configuration record. The engine only consumes
// AILevel; the remaining fields belong to the UI shell and ride along so
// round-trips keep them intact.
type Settings struct {
	AILevel        int     `json:"ai_level" mapstructure:"ai_level"`
	AnimationSpeed float64 `json:"animation_speed" mapstructure:"animation_speed"`
	WindowWidth    *int    `json:"window_width,omitempty" mapstructure:"window_width"`
	WindowHeight   *int    `json:"window_height,omitempty" mapstructure:"window_height"`
}

func DefaultSettings() Settings {
	return Settings{
		AILevel:        game.DefaultAILevel,
		AnimationSpeed: defaultAnimationSpeed,
	}
}

// Store reads and writes the two records under a single directory.
type Store struct {
	dir string
}

// NewStore resolves the platform config directory and returns a store
// rooted at <config>/toweroops.
func NewStore() (*Store, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		// Headless environments without HOME fall back to the working dir.
		base, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
	}
	return NewStoreAt(filepath.Join(base, appDirName)), nil
}

// NewStoreAt roots the store at an explicit directory.
func NewStoreAt(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Dir() string { return s.dir }

// LoadSettings returns the persisted settings, or defaults when the file is
// missing or unreadable.
func (s *Store) LoadSettings() Settings {
	v := viper.New()
	v.SetConfigFile(filepath.Join(s.dir, settingsFile))
	v.SetDefault("ai_level", game.DefaultAILevel)
	v.SetDefault("animation_speed", defaultAnimationSpeed)

	cfg := DefaultSettings()
	if err := v.ReadInConfig(); err != nil {
		return cfg
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return DefaultSettings()
	}
	return cfg
}

// SaveSettings writes the settings record. Keys already present in the file
// but unknown to this version are preserved.
func (s *Store) SaveSettings(cfg Settings) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	path := filepath.Join(s.dir, settingsFile)

	v := viper.New()
	v.SetConfigFile(path)
	_ = v.ReadInConfig() // merge with an existing document if any

	v.Set("ai_level", cfg.AILevel)
	v.Set("animation_speed", cfg.AnimationSpeed)
	if cfg.WindowWidth != nil {
		v.Set("window_width", *cfg.WindowWidth)
	}
	if cfg.WindowHeight != nil {
		v.Set("window_height", *cfg.WindowHeight)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// LoadStatistics returns the persisted counters, or zeroes when missing.
func (s *Store) LoadStatistics() game.Statistics {
	v := viper.New()
	v.SetConfigFile(filepath.Join(s.dir, statisticsFile))

	var stats game.Statistics
	if err := v.ReadInConfig(); err != nil {
		return stats
	}
	if err := v.Unmarshal(&stats); err != nil {
		return game.Statistics{}
	}
	return stats
}

// SaveStatistics writes the counters. Satisfies engine.StatsSaver.
func (s *Store) SaveStatistics(stats game.Statistics) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	path := filepath.Join(s.dir, statisticsFile)

	v := viper.New()
	v.SetConfigFile(path)
	v.Set("player_wins", stats.PlayerWins)
	v.Set("computer_wins", stats.ComputerWins)
	v.Set("draws", stats.Draws)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write statistics: %w", err)
	}
	return nil
}
