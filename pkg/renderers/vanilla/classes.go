package vanilla

// ChromeClass is a typed identifier for the CSS classes placed on the item
// chrome. The defaults follow the host's AUI conventions.
type ChromeClass string

const (
	ClassView    ChromeClass = "dashboard-item-view"
	ClassForm    ChromeClass = "aui"
	ClassField   ChromeClass = "field-group"
	ClassActions ChromeClass = "buttons-container"
	ClassErrors  ChromeClass = "aui-message aui-message-error"
)

// Classes groups the chrome classes passed to the templates.
type Classes struct {
	View    string `json:"view"`
	Form    string `json:"form"`
	Field   string `json:"field"`
	Actions string `json:"actions"`
	Errors  string `json:"errors"`
}

// DefaultClasses returns the AUI class set.
func DefaultClasses() Classes {
	return Classes{
		View:    string(ClassView),
		Form:    string(ClassForm),
		Field:   string(ClassField),
		Actions: string(ClassActions),
		Errors:  string(ClassErrors),
	}
}

func (c Classes) withFallbacks() Classes {
	def := DefaultClasses()
	if c.View == "" {
		c.View = def.View
	}
	if c.Form == "" {
		c.Form = def.Form
	}
	if c.Field == "" {
		c.Field = def.Field
	}
	if c.Actions == "" {
		c.Actions = def.Actions
	}
	if c.Errors == "" {
		c.Errors = def.Errors
	}
	return c
}
