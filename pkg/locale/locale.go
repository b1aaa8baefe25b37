// Package locale loads translation catalogs for the menu strings. Catalogs
// are YAML maps of message id to translation, installed per locale under
// <root>/<locale>/LC_MESSAGES/<domain>.yaml in either the user or the system
// locale tree.
package locale

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Domain is the catalog file name used by this extension.
const Domain = "open-any-terminal"

// DefaultRoots returns the conventional locale search roots, user tree first.
func DefaultRoots() []string {
	homeDir, _ := os.UserHomeDir()
	return []string{
		filepath.Join(homeDir, ".local", "share", "locale"),
		"/usr/share/locale",
	}
}

// Translator maps message ids to the active locale. The zero value and a
// failed lookup both pass message ids through untranslated.
type Translator struct {
	messages map[string]string
}

// T returns the translation for msgid, or msgid itself when the catalog has
// no entry.
func (t *Translator) T(msgid string) string {
	if t == nil || t.messages == nil {
		return msgid
	}
	if msg, ok := t.messages[msgid]; ok && msg != "" {
		return msg
	}
	return msgid
}

// Sprintf translates the format string and then formats args into it.
func (t *Translator) Sprintf(format string, args ...interface{}) string {
	return fmt.Sprintf(t.T(format), args...)
}

// Load searches the roots in order for a catalog matching one of the locale's
// candidates and returns the first hit. No catalog anywhere means the
// untranslated english strings are used; that is not an error.
func Load(domain string, roots []string, locale string) *Translator {
	for _, root := range roots {
		for _, candidate := range candidates(locale) {
			path := filepath.Join(root, candidate, "LC_MESSAGES", domain+".yaml")
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			messages := make(map[string]string)
			if err := yaml.Unmarshal(data, &messages); err != nil {
				log.Printf("[ERROR] Locale: failed to parse catalog %s: %v", path, err)
				continue
			}
			return &Translator{messages: messages}
		}
	}
	return &Translator{}
}

// LoadDefault loads the catalog for the locale advertised by the environment
// from the conventional roots.
func LoadDefault() *Translator {
	return Load(Domain, DefaultRoots(), Detect())
}

// Detect returns the process locale the way gettext reads it: LANGUAGE wins,
// then LC_ALL, LC_MESSAGES and LANG.
func Detect() string {
	for _, name := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		if value := os.Getenv(name); value != "" {
			return value
		}
	}
	return ""
}

// candidates expands a locale string into lookup names, most specific first:
// "de_DE.UTF-8" tries de_DE.UTF-8, de_DE and de. LANGUAGE-style colon lists
// expand entry by entry. The C and POSIX locales translate nothing.
func candidates(locale string) []string {
	var out []string
	for _, entry := range strings.Split(locale, ":") {
		entry = strings.TrimSpace(entry)
		if entry == "" || entry == "C" || entry == "POSIX" {
			continue
		}
		out = append(out, entry)
		if trimmed, _, ok := strings.Cut(entry, "."); ok {
			out = append(out, trimmed)
			entry = trimmed
		}
		if lang, _, ok := strings.Cut(entry, "_"); ok {
			out = append(out, lang)
		}
	}
	return out
}
