// Package i18n translates the UI strings of edit controls with
// golang.org/x/text message catalogs.
package i18n

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// Catalog is a blockweaver.Translator for one locale. Keys without a
// translation come back unchanged.
type Catalog struct {
	tag     language.Tag
	printer *message.Printer
	size    int
}

// New builds a catalog for tag from key/translation pairs.
func New(tag language.Tag, messages map[string]string) (*Catalog, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range messages {
		if err := b.SetString(tag, key, escapePercent(msg)); err != nil {
			return nil, fmt.Errorf("message %q: %w", key, err)
		}
	}
	return &Catalog{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(b)),
		size:    len(messages),
	}, nil
}

// yamlCatalog is the on-disk form:
//
//	locale: pt-PT
//	messages:
//	  "Stand on a line": "Ficar numa linha"
type yamlCatalog struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// LoadYAML reads a catalog file. locale overrides the file's own locale when
// non-empty.
func LoadYAML(r io.Reader, locale string) (*Catalog, error) {
	var file yamlCatalog
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse translations: %w", err)
	}
	if locale == "" {
		locale = file.Locale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return New(tag, file.Messages)
}

func (c *Catalog) Language() language.Tag { return c.tag }

func (c *Catalog) Len() int { return c.size }

// Translate implements blockweaver.Translator.
func (c *Catalog) Translate(key string) string {
	return c.printer.Sprintf(message.Key(key, escapePercent(key)))
}

// escapePercent keeps translations literal: the printer treats messages as
// format strings.
func escapePercent(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}
