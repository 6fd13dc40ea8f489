package model

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-dashboarditem/pkg/prefs"
)

// DefaultFormID identifies the edit form in rendered markup.
const DefaultFormID = "dashboard-item-config"

// Builder converts a preference catalog into a form model.
type Builder interface {
	Build(catalog *prefs.Catalog, defaults prefs.Defaults) (FormModel, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builder)

// WithFormID overrides the id attribute of the rendered form.
func WithFormID(id string) BuilderOption {
	return func(b *builder) {
		if id != "" {
			b.formID = id
		}
	}
}

// WithPrimaryAction selects the highlighted button. Save is highlighted by
// default; an empty name highlights none.
func WithPrimaryAction(name string) BuilderOption {
	return func(b *builder) {
		b.primary = name
	}
}

// WithDecorators registers decorators applied after the model is built.
func WithDecorators(decorators ...Decorator) BuilderOption {
	return func(b *builder) {
		b.decorators = append(b.decorators, decorators...)
	}
}

type builder struct {
	formID     string
	primary    string
	decorators []Decorator
}

// NewBuilder returns the default catalog-backed Builder.
func NewBuilder(options ...BuilderOption) Builder {
	b := &builder{formID: DefaultFormID, primary: ActionSave}
	for _, opt := range options {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

func (b *builder) Build(catalog *prefs.Catalog, defaults prefs.Defaults) (FormModel, error) {
	if catalog == nil {
		return FormModel{}, errors.New("model: catalog is required")
	}

	form := FormModel{
		ID:          b.formID,
		Description: catalog.Description(),
		Actions: []Action{
			{Name: ActionSave, Label: "Save"},
			{Name: ActionDefaults, Label: "Apply Defaults"},
			{Name: ActionCancel, Label: "Cancel"},
		},
	}
	for _, def := range catalog.Definitions() {
		form.Fields = append(form.Fields, Field{
			Name:        string(def.Key),
			Type:        FieldTypeString,
			Required:    def.Required,
			Label:       def.Label,
			Description: def.Description,
			Default:     defaults[def.Key],
		})
	}

	decorators := append([]Decorator{PrimaryAction(b.primary)}, b.decorators...)
	for _, decorator := range decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(&form); err != nil {
			return FormModel{}, fmt.Errorf("model: decorate form: %w", err)
		}
	}
	return form, nil
}
