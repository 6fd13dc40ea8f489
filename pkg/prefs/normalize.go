package prefs

import (
	"html"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// rawTextElements are the elements whose text bluemonday drops by default.
var rawTextElements = []string{
	"iframe", "noembed", "noframes", "noscript", "nostyle",
	"object", "script", "style", "title",
}

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// DecodeHTML returns the text content of value read as an HTML fragment:
// markup is dropped and character entities are decoded, so "Hi &amp; bye"
// becomes "Hi & bye".
func DecodeHTML(value string) string {
	if value == "" {
		return ""
	}
	// The strict policy emits text re-escaped, hence the final unescape.
	return html.UnescapeString(textSanitizer().Sanitize(value))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		// No element is allowed, so AllowUnsafe only lets the text of script
		// and style through, as textContent would.
		textPolicy = bluemonday.StrictPolicy().
			AllowUnsafe(true).
			AllowElementsContent(rawTextElements...)
	})
	return textPolicy
}

// Normalizer sanitizes raw host preferences against a fixed key set.
type Normalizer struct {
	keys     []Key
	defaults Defaults
}

// NewNormalizer binds the recognized keys of catalog to defaults.
func NewNormalizer(catalog *Catalog, defaults Defaults) *Normalizer {
	return &Normalizer{
		keys:     catalog.Keys(),
		defaults: defaults.Clone(),
	}
}

// Defaults returns a copy of the fallback values in use.
func (n *Normalizer) Defaults() Defaults {
	return n.defaults.Clone()
}

// Normalize returns a new mapping in which every recognized key is present:
// strings are HTML-decoded, absent or nil values take their default, and any
// other value is carried over untouched. Unrecognized keys are preserved. A
// nil raw mapping is treated as empty; raw itself is never modified.
func (n *Normalizer) Normalize(raw Preferences) Preferences {
	out := raw.Clone()
	for _, key := range n.keys {
		switch value := out[string(key)].(type) {
		case string:
			out[string(key)] = DecodeHTML(value)
		case nil:
			out[string(key)] = n.defaults[key]
		}
	}
	return out
}

// Normalize sanitizes raw with the built-in catalog using the defaults of the
// environment implied by origin.
func Normalize(raw Preferences, origin string) Preferences {
	catalog := DefaultCatalog()
	return NewNormalizer(catalog, catalog.Defaults(EnvironmentFromOrigin(origin))).Normalize(raw)
}
