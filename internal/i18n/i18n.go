// Package i18n holds the message catalog used by the rendered pages and
// resolves the language of a request.
package i18n

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the user's language preference.
	LangCookieName = "lobby_lang"
)

var supported = []language.Tag{language.English, language.BrazilianPortuguese}

var (
	matcher = language.NewMatcher(supported)
	builder = catalog.NewBuilder(catalog.Fallback(language.English))
)

func init() {
	for key, msg := range english {
		if err := builder.SetString(language.English, key, msg); err != nil {
			panic(fmt.Sprintf("i18n: %s %q: %v", language.English, key, err))
		}
	}
	for key, msg := range portuguese {
		if err := builder.SetString(language.BrazilianPortuguese, key, msg); err != nil {
			panic(fmt.Sprintf("i18n: %s %q: %v", language.BrazilianPortuguese, key, err))
		}
	}
}

// Supported returns the list of supported language tags.
func Supported() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

func Default() language.Tag { return language.English }

// Match picks the best supported tag for the given tags.
func Match(tags ...language.Tag) language.Tag {
	if len(tags) == 0 {
		return Default()
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default()
	}
	return supported[idx]
}

// ParseTag parses value and matches it against the supported tags.
func ParseTag(value string) (language.Tag, bool) {
	tag, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return language.Und, false
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return language.Und, false
	}
	return supported[idx], true
}

// ResolveTag determines the best language tag for the request.
// The bool indicates whether the lang query param should be persisted as a cookie.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return Default(), false
	}
	if v := r.URL.Query().Get(LangParam); v != "" {
		if tag, ok := ParseTag(v); ok {
			return tag, true
		}
	}
	if c, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := ParseTag(c.Value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			return Match(tags...), false
		}
	}
	return Default(), false
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// Translator renders catalog keys in one language.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

func NewTranslator(tag language.Tag) *Translator {
	return &Translator{tag: tag, printer: message.NewPrinter(tag, message.Catalog(builder))}
}

func (t *Translator) Tag() language.Tag { return t.tag }

// T returns the message for key; unknown keys render as the key itself.
func (t *Translator) T(key string) string {
	return t.printer.Sprintf(message.Key(key, key))
}
