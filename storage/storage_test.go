package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Laserlicht/toweroops/game"
)

func TestSettingsRoundTrip(t *testing.T) {
	store := NewStoreAt(t.TempDir())

	width, height := 1024, 768
	saved := Settings{
		AILevel:        4,
		AnimationSpeed: 0.5,
		WindowWidth:    &width,
		WindowHeight:   &height,
	}
	require.NoError(t, store.SaveSettings(saved))

	loaded := store.LoadSettings()
	require.Equal(t, 4, loaded.AILevel)
	require.Equal(t, 0.5, loaded.AnimationSpeed)
	require.NotNil(t, loaded.WindowWidth)
	require.Equal(t, 1024, *loaded.WindowWidth)
	require.NotNil(t, loaded.WindowHeight)
	require.Equal(t, 768, *loaded.WindowHeight)
}

func TestLoadSettingsDefaults(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		store := NewStoreAt(filepath.Join(t.TempDir(), "nope"))
		cfg := store.LoadSettings()
		require.Equal(t, DefaultSettings(), cfg)
	})

	t.Run("corrupt file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"), []byte("{not json"), 0o644))
		cfg := NewStoreAt(dir).LoadSettings()
		require.Equal(t, DefaultSettings(), cfg)
	})
}

func TestSaveSettingsPreservesUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	existing := `{"ai_level": 1, "animation_speed": 0.2, "theme": "dark"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"), []byte(existing), 0o644))

	store := NewStoreAt(dir)
	cfg := store.LoadSettings()
	cfg.AILevel = 3
	require.NoError(t, store.SaveSettings(cfg))

	data, err := os.ReadFile(filepath.Join(dir, "settings.json"))
	require.NoError(t, err)
	require.Contains(t, string(data), `"theme"`, "keys from newer versions must survive a save")
	require.Contains(t, string(data), `"dark"`)

	require.Equal(t, 3, store.LoadSettings().AILevel)
}

func TestStatisticsRoundTrip(t *testing.T) {
	store := NewStoreAt(t.TempDir())

	require.Equal(t, game.Statistics{}, store.LoadStatistics(),
		"missing file yields zeroed counters")

	stats := game.Statistics{PlayerWins: 3, ComputerWins: 7, Draws: 1}
	require.NoError(t, store.SaveStatistics(stats))
	require.Equal(t, stats, store.LoadStatistics())
}

func TestNewStoreResolvesDir(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)
	require.NotEmpty(t, store.Dir())
	require.Equal(t, appDirName, filepath.Base(store.Dir()))
}
