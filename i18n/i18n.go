// Package i18n is a pure string lookup over embedded locale tables. Missing
// keys echo the key so untranslated UI stays debuggable.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

//go:embed locales/*.json
var localeFS embed.FS

const fallbackLanguage = "en"

// Translator resolves message identifiers for one language.
type Translator struct {
	messages map[string]string
	lang     string
}

// Load picks the language from LC_ALL/LC_MESSAGES/LANG and falls back to
// English.
func Load() *Translator {
	return LoadLanguage(detectLanguage())
}

// LoadLanguage loads the given language, falling back to English and finally
// to an empty table.
func LoadLanguage(lang string) *Translator {
	if t, err := load(lang); err == nil {
		return t
	}
	if lang != fallbackLanguage {
		if t, err := load(fallbackLanguage); err == nil {
			return t
		}
	}
	return &Translator{messages: map[string]string{}, lang: fallbackLanguage}
}

func load(lang string) (*Translator, error) {
	data, err := localeFS.ReadFile(fmt.Sprintf("locales/%s.json", lang))
	if err != nil {
		return nil, err
	}
	messages := map[string]string{}
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("parse locale %s: %w", lang, err)
	}
	return &Translator{messages: messages, lang: lang}, nil
}

// T returns the message for id, or id itself when no translation exists.
func (t *Translator) T(id string) string {
	if msg, ok := t.messages[id]; ok {
		return msg
	}
	return id
}

// Tf formats a parameterized message.
func (t *Translator) Tf(id string, args ...any) string {
	return fmt.Sprintf(t.T(id), args...)
}

func (t *Translator) Language() string { return t.lang }

func detectLanguage() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		val := strings.ToLower(os.Getenv(key))
		if val == "" {
			continue
		}
		if strings.HasPrefix(val, "de") {
			return "de"
		}
		return fallbackLanguage
	}
	return fallbackLanguage
}
