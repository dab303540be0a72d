// Package i18n serves the localized message tables of the search UI.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Bundle holds one message table per locale plus a fallback locale.
type Bundle struct {
	messages map[string]map[string]string
	fallback string
	locales  []string
	matcher  language.Matcher
}

// Load reads the embedded message tables. fallback must be one of them.
func Load(fallback string) (*Bundle, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("failed to list locales: %w", err)
	}

	tables := make(map[string]map[string]string, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || path.Ext(name) != ".json" {
			continue
		}
		data, err := localeFS.ReadFile(path.Join("locales", name))
		if err != nil {
			return nil, fmt.Errorf("failed to read locale %s: %w", name, err)
		}
		var table map[string]string
		if err := json.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("failed to parse locale %s: %w", name, err)
		}
		tables[strings.TrimSuffix(name, ".json")] = table
	}
	return NewBundle(tables, fallback)
}

// NewBundle builds a bundle from in-memory tables.
func NewBundle(tables map[string]map[string]string, fallback string) (*Bundle, error) {
	if _, ok := tables[fallback]; !ok {
		return nil, fmt.Errorf("fallback locale %q has no message table", fallback)
	}

	locales := make([]string, 0, len(tables))
	for l := range tables {
		locales = append(locales, l)
	}
	sort.Strings(locales)

	// The fallback goes first so the matcher defaults to it.
	tags := []language.Tag{language.Make(fallback)}
	for _, l := range locales {
		if l != fallback {
			tags = append(tags, language.Make(l))
		}
	}

	return &Bundle{
		messages: tables,
		fallback: fallback,
		locales:  locales,
		matcher:  language.NewMatcher(tags),
	}, nil
}

// Locales returns the supported locales in sorted order.
func (b *Bundle) Locales() []string {
	return append([]string(nil), b.locales...)
}

// Has reports whether a message table exists for locale.
func (b *Bundle) Has(locale string) bool {
	_, ok := b.messages[locale]
	return ok
}

// Match picks the supported locale closest to an Accept-Language header value.
func (b *Bundle) Match(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return b.fallback
	}
	tag, _, _ := b.matcher.Match(tags...)
	base, _ := tag.Base()
	if b.Has(base.String()) {
		return base.String()
	}
	return b.fallback
}

// Messages returns the table for locale with missing keys taken from the fallback.
func (b *Bundle) Messages(locale string) map[string]string {
	fb := b.messages[b.fallback]
	out := make(map[string]string, len(fb))
	for k, v := range fb {
		out[k] = v
	}
	for k, v := range b.messages[locale] {
		out[k] = v
	}
	return out
}

// T looks up key for locale, then in the fallback; unknown keys are returned as-is.
func (b *Bundle) T(locale, key string) string {
	if v, ok := b.messages[locale][key]; ok {
		return v
	}
	if v, ok := b.messages[b.fallback][key]; ok {
		return v
	}
	return key
}
