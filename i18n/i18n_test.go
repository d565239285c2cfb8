package i18n

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadLanguage(t *testing.T) {
	t.Run("loads english", func(t *testing.T) {
		tr := LoadLanguage("en")
		require.Equal(t, "en", tr.Language())
		require.Equal(t, "New game", tr.T("new-game"))
	})

	t.Run("loads german", func(t *testing.T) {
		tr := LoadLanguage("de")
		require.Equal(t, "de", tr.Language())
		require.Equal(t, "Neues Spiel", tr.T("new-game"))
	})

	t.Run("unknown language falls back to english", func(t *testing.T) {
		tr := LoadLanguage("fr")
		require.Equal(t, "en", tr.Language())
		require.Equal(t, "Surrender", tr.T("surrender"))
	})
}

func TestMissingKeyEchoesKey(t *testing.T) {
	tr := LoadLanguage("en")
	require.Equal(t, "no-such-key", tr.T("no-such-key"))
}

func TestTf(t *testing.T) {
	tr := LoadLanguage("en")
	require.Equal(t, "Moves: 12", tr.Tf("moves-made", 12))
}

func TestDetectLanguage(t *testing.T) {
	t.Setenv("LC_ALL", "de_DE.UTF-8")
	require.Equal(t, "de", detectLanguage())

	t.Setenv("LC_ALL", "en_US.UTF-8")
	require.Equal(t, "en", detectLanguage())

	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "")
	require.Equal(t, "en", detectLanguage())
}
