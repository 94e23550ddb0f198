// Package i18n translates user-facing strings with gettext catalogues.
// Catalogues are embedded; message ids are the English text, so a missing
// translation falls back to English.
package i18n

import (
	"embed"
	"os"
	"sort"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// DefaultLanguage is used when nothing better matches.
const DefaultLanguage = "en"

//go:embed locales/*.po
var catalogues embed.FS

// Translator looks up messages for one language.
type Translator struct {
	lang string
	po   *gotext.Po
}

// New returns a translator for lang. An empty lang is detected from the
// environment; unknown languages fall back to English.
func New(lang string) *Translator {
	if lang == "" {
		lang = Detect()
	}
	lang = Normalize(lang)

	data, err := catalogues.ReadFile("locales/" + lang + ".po")
	if err != nil {
		lang = DefaultLanguage
		data, _ = catalogues.ReadFile("locales/" + DefaultLanguage + ".po")
	}

	po := gotext.NewPo()
	po.Parse(data)
	return &Translator{lang: lang, po: po}
}

// Lang returns the language in use.
func (t *Translator) Lang() string {
	return t.lang
}

// Get translates msgid and formats it with vars.
func (t *Translator) Get(msgid string, vars ...any) string {
	return t.po.Get(msgid, vars...)
}

// Languages lists the embedded catalogues.
func Languages() []string {
	entries, _ := catalogues.ReadDir("locales")
	langs := make([]string, 0, len(entries))
	for _, e := range entries {
		langs = append(langs, strings.TrimSuffix(e.Name(), ".po"))
	}
	sort.Strings(langs)
	return langs
}

// Detect reads the locale from LC_ALL, LC_MESSAGES or LANG, in that order.
func Detect() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" && v != "C" && v != "POSIX" {
			return v
		}
	}
	return DefaultLanguage
}

// Normalize reduces a locale like "es_ES.UTF-8" to its language code "es".
func Normalize(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if i := strings.IndexAny(locale, "_-"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "" {
		return DefaultLanguage
	}
	return locale
}
