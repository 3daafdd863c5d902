// Package i18n negotiates the UI language and looks up translated strings.
package i18n

import (
	"embed"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const (
	English    = "en"
	Indonesian = "id"
)

// Default is used when nothing better can be negotiated.
const Default = English

// Cookie stores the visitor's explicit language choice.
const Cookie = "locale"

// Locales lists the supported UI languages in display order.
var Locales = []string{English, Indonesian}

var matcher = language.NewMatcher([]language.Tag{language.English, language.Indonesian})

//go:embed locales/*.yaml
var catalogFS embed.FS

// Supported reports whether locale is one of Locales.
func Supported(locale string) bool {
	for _, l := range Locales {
		if l == locale {
			return true
		}
	}
	return false
}

// Negotiate picks the UI language: a valid cookie wins, then the Accept-Language header, then
// the default.
func Negotiate(cookie, acceptLanguage string) string {
	if Supported(cookie) {
		return cookie
	}
	if acceptLanguage == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default
	}
	return Locales[idx]
}

// Catalog holds flattened messages per locale.
type Catalog struct {
	messages map[string]map[string]string
}

// Load parses the embedded message files.
func Load() (*Catalog, error) {
	c := &Catalog{messages: make(map[string]map[string]string, len(Locales))}
	for _, locale := range Locales {
		raw, err := catalogFS.ReadFile("locales/" + locale + ".yaml")
		if err != nil {
			return nil, fmt.Errorf("read %s catalog: %w", locale, err)
		}
		var tree map[string]any
		if err := yaml.Unmarshal(raw, &tree); err != nil {
			return nil, fmt.Errorf("parse %s catalog: %w", locale, err)
		}
		flat := make(map[string]string)
		flatten("", tree, flat)
		c.messages[locale] = flat
	}
	return c, nil
}

// MustLoad is Load for package initialisation paths.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// T translates key for locale. args are name/value pairs substituted into {name} placeholders.
// Missing keys fall back to English, then to the key itself.
func (c *Catalog) T(locale, key string, args ...any) string {
	msg, ok := c.messages[locale][key]
	if !ok {
		msg, ok = c.messages[Default][key]
	}
	if !ok {
		return key
	}
	if len(args) < 2 {
		return msg
	}
	pairs := make([]string, 0, len(args))
	for i := 0; i+1 < len(args); i += 2 {
		pairs = append(pairs, "{"+fmt.Sprint(args[i])+"}", fmt.Sprint(args[i+1]))
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

// Has reports whether key exists for locale without falling back.
func (c *Catalog) Has(locale, key string) bool {
	_, ok := c.messages[locale][key]
	return ok
}

// Keys returns every key defined for locale.
func (c *Catalog) Keys(locale string) []string {
	keys := make([]string, 0, len(c.messages[locale]))
	for k := range c.messages[locale] {
		keys = append(keys, k)
	}
	return keys
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}
