// Package i18n loads the embedded message catalogs.
package i18n

import (
	"embed"
	"fmt"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var locales embed.FS

var catalogFiles = []string{
	"locales/active.en.toml",
	"locales/active.id.toml",
}

// Catalog resolves message ids for one language, falling back to English.
type Catalog struct {
	lang      language.Tag
	localizer *goi18n.Localizer
}

// New builds a catalog for lang (a BCP 47 tag such as "id" or "en").
func New(lang string) (*Catalog, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	for _, f := range catalogFiles {
		if _, err := bundle.LoadMessageFileFS(locales, f); err != nil {
			return nil, fmt.Errorf("load catalog %s: %w", f, err)
		}
	}

	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("parse language %q: %w", lang, err)
	}
	return &Catalog{
		lang:      tag,
		localizer: goi18n.NewLocalizer(bundle, tag.String(), language.English.String()),
	}, nil
}

// MustNew is New for fixed, known-good languages.
func MustNew(lang string) *Catalog {
	c, err := New(lang)
	if err != nil {
		panic(err)
	}
	return c
}

// Language returns the catalog's language.
func (c *Catalog) Language() language.Tag {
	return c.lang
}

// T localizes id. Unknown ids render as the id itself.
func (c *Catalog) T(id string) string {
	return c.localize(id, nil)
}

// Err localizes id with the error text as template field Err.
func (c *Catalog) Err(id string, err error) string {
	text := ""
	if err != nil {
		text = err.Error()
	}
	return c.localize(id, map[string]any{"Err": text})
}

func (c *Catalog) localize(id string, data map[string]any) string {
	if c == nil {
		return id
	}
	msg, err := c.localizer.Localize(&goi18n.LocalizeConfig{MessageID: id, TemplateData: data})
	if err != nil || msg == "" {
		return id
	}
	return msg
}
