package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// LintIssue is one problem found in a preference schema.
type LintIssue struct {
	Location string
	Message  string
}

func (i LintIssue) String() string {
	return i.Location + " -> " + i.Message
}

var supportedExtensions = []string{extensionLocalDefault, extensionOrder}

// SupportedExtensions lists the x- keys a preference property may carry.
func SupportedExtensions() []string {
	return append([]string(nil), supportedExtensions...)
}

// LintSchema reports catalog problems in schemaName that LoadCatalogSchema
// would reject or silently ignore. A document that cannot be loaded at all
// is returned as an error.
func LintSchema(ctx context.Context, raw []byte, schemaName string) ([]LintIssue, error) {
	schema, err := loadSchema(ctx, raw, schemaName)
	if err != nil {
		return nil, err
	}

	var issues []LintIssue
	base := []string{schemaName}

	if len(schema.Properties) == 0 {
		issues = append(issues, LintIssue{Location: formatLocation(base), Message: "schema declares no properties"})
	}
	for _, name := range schema.Required {
		if _, ok := schema.Properties[name]; !ok {
			issues = append(issues, LintIssue{
				Location: formatLocation(appendPath(base, "required")),
				Message:  fmt.Sprintf("required key %q is not a property", name),
			})
		}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		issues = append(issues, lintProperty(appendPath(base, "properties."+name), schema.Properties[name])...)
	}
	return issues, nil
}

func lintProperty(path []string, ref *openapi3.SchemaRef) []LintIssue {
	location := formatLocation(path)
	if ref == nil || ref.Value == nil {
		return []LintIssue{{Location: location, Message: "property has no schema"}}
	}
	prop := ref.Value

	var issues []LintIssue
	if prop.Type != nil && !prop.Type.Is(openapi3.TypeString) {
		issues = append(issues, LintIssue{Location: location, Message: fmt.Sprintf("type must be string, found %s", strings.Join(prop.Type.Slice(), ","))})
	}
	if strings.TrimSpace(prop.Title) == "" {
		issues = append(issues, LintIssue{Location: location, Message: "title is empty; the form label will be blank"})
	}
	if prop.Default != nil {
		if _, ok := prop.Default.(string); !ok {
			issues = append(issues, LintIssue{Location: location, Message: fmt.Sprintf("default must be a string, found %T", prop.Default)})
		}
	}

	keys := make([]string, 0, len(prop.Extensions))
	for key := range prop.Extensions {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		value := prop.Extensions[key]
		switch key {
		case extensionLocalDefault:
			if !isStringValue(value) {
				issues = append(issues, LintIssue{Location: formatLocation(appendPath(path, key)), Message: "value must be a string"})
			}
		case extensionOrder:
			if !isNumberValue(value) {
				issues = append(issues, LintIssue{Location: formatLocation(appendPath(path, key)), Message: "value must be a number"})
			}
		default:
			if strings.HasPrefix(key, "x-") {
				issues = append(issues, LintIssue{
					Location: formatLocation(appendPath(path, key)),
					Message:  fmt.Sprintf("unsupported extension (supported: %s)", strings.Join(supportedExtensions, ", ")),
				})
			}
		}
	}
	return issues
}

func isStringValue(value any) bool {
	switch v := value.(type) {
	case string:
		return true
	case json.RawMessage:
		var s string
		return json.Unmarshal(v, &s) == nil
	}
	return false
}

func isNumberValue(value any) bool {
	switch v := value.(type) {
	case int, int64, float64, json.Number:
		return true
	case json.RawMessage:
		var n float64
		return json.Unmarshal(v, &n) == nil
	}
	return false
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	return append(next, segment)
}

func formatLocation(path []string) string {
	return strings.Join(path, " > ")
}
