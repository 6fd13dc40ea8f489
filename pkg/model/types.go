package model

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString FieldType = "string"
)

// Action names shared by the form template and submission decoding.
const (
	ActionSave     = "save"
	ActionDefaults = "defaults"
	ActionCancel   = "cancel"
)

// ActionField is the name carried by the form buttons. It is never part of
// the serialized preference values.
const ActionField = "action"

// Field models an individual input inside the edit form.
type Field struct {
	Name        string            `json:"name"`
	Type        FieldType         `json:"type"`
	Required    bool              `json:"required"`
	Label       string            `json:"label,omitempty"`
	Description string            `json:"description,omitempty"`
	Default     string            `json:"default,omitempty"`
	Value       string            `json:"value"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Action is a button rendered below the fields.
type Action struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Primary bool   `json:"primary,omitempty"`
}

// FormModel is the top-level representation renderers consume.
type FormModel struct {
	ID          string            `json:"id"`
	Description string            `json:"description,omitempty"`
	Fields      []Field           `json:"fields"`
	Actions     []Action          `json:"actions"`
	Errors      []string          `json:"errors,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Field returns a pointer to the named field so callers can update it in
// place, or nil when the form has no such field.
func (f *FormModel) Field(name string) *Field {
	for i := range f.Fields {
		if f.Fields[i].Name == name {
			return &f.Fields[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the form.
func (f FormModel) Clone() FormModel {
	out := f
	out.Fields = make([]Field, len(f.Fields))
	for i, field := range f.Fields {
		field.Metadata = cloneStrings(field.Metadata)
		out.Fields[i] = field
	}
	out.Actions = append([]Action(nil), f.Actions...)
	out.Errors = append([]string(nil), f.Errors...)
	out.Metadata = cloneStrings(f.Metadata)
	return out
}

func cloneStrings(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// ViewModel carries the data shown on the main (view) screen.
type ViewModel struct {
	Greeting string `json:"greeting"`
	Text     string `json:"text"`
}
