package model

// Decorator adjusts a form model after the builder has produced the fields
// and actions of the catalog.
type Decorator interface {
	Decorate(*FormModel) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*FormModel) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(form *FormModel) error {
	return fn(form)
}

// PrimaryAction highlights the named action and clears the flag on every
// other one. An empty name leaves no action highlighted.
func PrimaryAction(name string) Decorator {
	return DecoratorFunc(func(form *FormModel) error {
		for i := range form.Actions {
			form.Actions[i].Primary = name != "" && form.Actions[i].Name == name
		}
		return nil
	})
}
