package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// SchemaName is the components schema LoadCatalog reads by default.
const SchemaName = "DashboardItemPreferences"

const (
	extensionLocalDefault = "x-local-default"
	extensionOrder        = "x-order"
)

// Environment selects which default a key falls back to.
type Environment string

const (
	EnvironmentStandard Environment = "standard"
	EnvironmentLocal    Environment = "local"
)

// EnvironmentFromOrigin reports EnvironmentLocal for origins served from
// localhost, EnvironmentStandard otherwise.
func EnvironmentFromOrigin(origin string) Environment {
	if strings.Contains(origin, "localhost") {
		return EnvironmentLocal
	}
	return EnvironmentStandard
}

// Definition describes one recognized preference.
type Definition struct {
	Key          Key    `json:"key"`
	Label        string `json:"label"`
	Description  string `json:"description,omitempty"`
	Required     bool   `json:"required"`
	Default      string `json:"default"`
	LocalDefault string `json:"localDefault,omitempty"`
}

// Catalog is the fixed, ordered set of recognized preferences.
type Catalog struct {
	description string
	defs        []Definition
	index       map[Key]int
}

// NewCatalog validates the definitions and keeps them in the given order.
func NewCatalog(description string, defs ...Definition) (*Catalog, error) {
	if len(defs) == 0 {
		return nil, errors.New("prefs: catalog requires at least one definition")
	}
	c := &Catalog{
		description: strings.TrimSpace(description),
		defs:        make([]Definition, 0, len(defs)),
		index:       make(map[Key]int, len(defs)),
	}
	for _, def := range defs {
		def.Key = Key(strings.TrimSpace(string(def.Key)))
		if def.Key == "" {
			return nil, errors.New("prefs: definition key is required")
		}
		if _, exists := c.index[def.Key]; exists {
			return nil, fmt.Errorf("prefs: duplicate key %q", def.Key)
		}
		if def.Label == "" {
			def.Label = string(def.Key)
		}
		c.index[def.Key] = len(c.defs)
		c.defs = append(c.defs, def)
	}
	return c, nil
}

// MustNewCatalog panics when NewCatalog fails. Useful for tests.
func MustNewCatalog(description string, defs ...Definition) *Catalog {
	c, err := NewCatalog(description, defs...)
	if err != nil {
		panic(err)
	}
	return c
}

// Description returns the form-level help text.
func (c *Catalog) Description() string {
	if c == nil {
		return ""
	}
	return c.description
}

// Keys lists the recognized keys in catalog order.
func (c *Catalog) Keys() []Key {
	if c == nil {
		return nil
	}
	keys := make([]Key, 0, len(c.defs))
	for _, def := range c.defs {
		keys = append(keys, def.Key)
	}
	return keys
}

// Definitions returns a copy of the definitions in catalog order.
func (c *Catalog) Definitions() []Definition {
	if c == nil {
		return nil
	}
	return append([]Definition(nil), c.defs...)
}

// Lookup returns the definition for key.
func (c *Catalog) Lookup(key Key) (Definition, bool) {
	if c == nil {
		return Definition{}, false
	}
	idx, ok := c.index[key]
	if !ok {
		return Definition{}, false
	}
	return c.defs[idx], true
}

// Has reports whether name is a recognized key.
func (c *Catalog) Has(name string) bool {
	_, ok := c.Lookup(Key(name))
	return ok
}

// Defaults returns the fallback values for env. Local environments prefer the
// local default when one is declared.
func (c *Catalog) Defaults(env Environment) Defaults {
	if c == nil {
		return Defaults{}
	}
	out := make(Defaults, len(c.defs))
	for _, def := range c.defs {
		value := def.Default
		if env == EnvironmentLocal && def.LocalDefault != "" {
			value = def.LocalDefault
		}
		out[def.Key] = value
	}
	return out
}

// LoadCatalog parses an OpenAPI document and builds a catalog from the
// SchemaName components schema.
func LoadCatalog(ctx context.Context, raw []byte) (*Catalog, error) {
	return LoadCatalogSchema(ctx, raw, SchemaName)
}

// LoadCatalogSchema is LoadCatalog for an arbitrary components schema name.
// Every property must be a string; properties are ordered by x-order, then by
// name.
func LoadCatalogSchema(ctx context.Context, raw []byte, schemaName string) (*Catalog, error) {
	schema, err := loadSchema(ctx, raw, schemaName)
	if err != nil {
		return nil, err
	}

	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	type ordered struct {
		def   Definition
		order int
	}
	entries := make([]ordered, 0, len(schema.Properties))
	for name, prop := range schema.Properties {
		if prop == nil || prop.Value == nil {
			return nil, fmt.Errorf("prefs: property %q has no schema", name)
		}
		value := prop.Value
		if value.Type != nil && !value.Type.Is(openapi3.TypeString) {
			return nil, fmt.Errorf("prefs: property %q must be a string", name)
		}
		_, isRequired := required[name]
		entries = append(entries, ordered{
			def: Definition{
				Key:          Key(name),
				Label:        strings.TrimSpace(value.Title),
				Description:  strings.TrimSpace(value.Description),
				Required:     isRequired,
				Default:      stringValue(value.Default),
				LocalDefault: stringValue(value.Extensions[extensionLocalDefault]),
			},
			order: intValue(value.Extensions[extensionOrder]),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].order != entries[j].order {
			return entries[i].order < entries[j].order
		}
		return entries[i].def.Key < entries[j].def.Key
	})

	defs := make([]Definition, 0, len(entries))
	for _, entry := range entries {
		defs = append(defs, entry.def)
	}
	return NewCatalog(schema.Description, defs...)
}

func loadSchema(ctx context.Context, raw []byte, schemaName string) (*openapi3.Schema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("prefs: schema document is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("prefs: load schema document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("prefs: validate schema document: %w", err)
	}

	if doc.Components == nil || doc.Components.Schemas == nil {
		return nil, fmt.Errorf("prefs: schema %q not found", schemaName)
	}
	ref, ok := doc.Components.Schemas[schemaName]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("prefs: schema %q not found", schemaName)
	}
	schema := ref.Value
	return schema, nil
}

func stringValue(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.RawMessage:
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return s
		}
		return strings.Trim(string(v), `"`)
	default:
		return fmt.Sprint(v)
	}
}

func intValue(raw any) int {
	switch v := raw.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		n, _ := v.Int64()
		return int(n)
	case json.RawMessage:
		n, _ := strconv.Atoi(strings.TrimSpace(string(v)))
		return n
	case string:
		n, _ := strconv.Atoi(strings.TrimSpace(v))
		return n
	default:
		return 0
	}
}
