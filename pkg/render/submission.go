package render

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-dashboarditem/pkg/model"
)

// HiddenField represents a hidden form input emitted alongside the visible
// preference inputs.
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// XSRFToken constructs a hidden field carrying the host's anti-forgery token.
// Callers supply the input name their host expects (for example "atl_token").
func XSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// MergeHiddenFields returns a copy of base with the provided fields applied.
// Empty names are ignored; later fields win on name collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	if len(base) == 0 && len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		out[name] = field.Value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields sorts hidden fields by name for deterministic rendering.
// Empty names are dropped.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		if strings.TrimSpace(name) != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{
			Name:  strings.TrimSpace(name),
			Value: fields[name],
		})
	}
	return result
}

// Submission is a decoded edit form post.
type Submission struct {
	// Action is the button that submitted the form, one of the model.Action*
	// names, or empty when the post carried none.
	Action string
	// Values holds each input's value. When a name repeats the last value
	// wins.
	Values map[string]string
}

// DecodeSubmission reads a posted edit form. The action button and the
// names in exclude (hidden host fields) are not part of Values.
func DecodeSubmission(posted url.Values, exclude ...string) Submission {
	skip := make(map[string]struct{}, len(exclude)+1)
	skip[model.ActionField] = struct{}{}
	for _, name := range exclude {
		skip[strings.TrimSpace(name)] = struct{}{}
	}

	sub := Submission{Values: make(map[string]string, len(posted))}
	if actions := posted[model.ActionField]; len(actions) > 0 {
		sub.Action = strings.TrimSpace(actions[len(actions)-1])
	}
	for name, values := range posted {
		if _, ok := skip[name]; ok || len(values) == 0 {
			continue
		}
		sub.Values[name] = values[len(values)-1]
	}
	return sub
}
