package prefs

import (
	"fmt"
	"maps"
)

// Key identifies a single configurable preference.
type Key string

// ExampleInput is the key of the text input shipped with the built-in catalog.
const ExampleInput Key = "exampleInput"

// Preferences is the mapping supplied by, and persisted through, the host.
// Values are normally strings but hosts may hand over anything.
type Preferences map[string]any

// Defaults maps each recognized key to its fallback value.
type Defaults map[Key]string

// Clone returns a shallow copy. A nil receiver yields an empty mapping.
func (p Preferences) Clone() Preferences {
	out := make(Preferences, len(p))
	maps.Copy(out, p)
	return out
}

// Get returns the raw value stored under key.
func (p Preferences) Get(key Key) (any, bool) {
	value, ok := p[string(key)]
	return value, ok
}

// String returns the value for key formatted as text. Missing and nil values
// render as the empty string.
func (p Preferences) String(key Key) string {
	switch v := p[string(key)].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Merge returns base with overrides applied on top. Keys present only in
// base survive untouched.
func Merge(base Preferences, overrides map[string]string) Preferences {
	out := base.Clone()
	for name, value := range overrides {
		out[name] = value
	}
	return out
}

// Clone returns a copy of the defaults.
func (d Defaults) Clone() Defaults {
	out := make(Defaults, len(d))
	maps.Copy(out, d)
	return out
}

// Preferences converts the defaults into a Preferences mapping.
func (d Defaults) Preferences() Preferences {
	out := make(Preferences, len(d))
	for key, value := range d {
		out[string(key)] = value
	}
	return out
}
