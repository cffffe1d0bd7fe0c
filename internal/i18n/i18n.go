// Package i18n swaps the page between English and Arabic. Every marked
// element carries both strings; toggling picks the other one and flips the
// document direction.
package i18n

import (
	"fmt"
	"strings"
)

// PreferenceKey is where the chosen language is persisted.
const PreferenceKey = "engagementLang"

type Lang string

const (
	English Lang = "en"
	Arabic  Lang = "ar"
)

func Parse(s string) (Lang, error) {
	switch Lang(strings.ToLower(strings.TrimSpace(s))) {
	case English:
		return English, nil
	case Arabic:
		return Arabic, nil
	default:
		return "", fmt.Errorf("unknown language %q", s)
	}
}

// ParseOr falls back to def for anything unrecognised, including "".
func ParseOr(s string, def Lang) Lang {
	if l, err := Parse(s); err == nil {
		return l
	}
	return def
}

func (l Lang) Toggle() Lang {
	if l == Arabic {
		return English
	}
	return Arabic
}

// Dir is the value for the root element's dir attribute.
func (l Lang) Dir() string {
	if l == Arabic {
		return "rtl"
	}
	return "ltr"
}

// Target says which property of the element receives the string.
type Target int

const (
	Text Target = iota
	Placeholder
)

// Element is one translatable node: the data-en / data-ar pair.
type Element struct {
	ID     string
	En     string
	Ar     string
	Target Target
}

// In returns the element's string for l. A missing translation renders as
// the empty string; there is no fallback to the other language.
func (e Element) In(l Lang) string {
	if l == Arabic {
		return e.Ar
	}
	return e.En
}

// Document is the rendered state of the page for one language.
type Document struct {
	Lang         Lang
	Dir          string
	Text         map[string]string
	Placeholders map[string]string
}

// Render applies l to every element.
func Render(l Lang, elems []Element) Document {
	doc := Document{
		Lang:         l,
		Dir:          l.Dir(),
		Text:         make(map[string]string),
		Placeholders: make(map[string]string),
	}

	for _, e := range elems {
		if e.Target == Placeholder {
			doc.Placeholders[e.ID] = e.In(l)
			continue
		}
		doc.Text[e.ID] = e.In(l)
	}
	return doc
}
