package dashboarditem

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"sync"

	"github.com/goliatone/go-dashboarditem/pkg/host"
	"github.com/goliatone/go-dashboarditem/pkg/model"
	"github.com/goliatone/go-dashboarditem/pkg/prefs"
	"github.com/goliatone/go-dashboarditem/pkg/render"
)

// EditForm controls one mounted edit screen. It holds the inputs' current
// values and exposes the Save, Apply Defaults and Cancel handlers.
type EditForm struct {
	item     *Item
	mount    host.Mount
	original prefs.Preferences

	mu   sync.Mutex
	form model.FormModel
}

// Model returns a copy of the form as currently mounted.
func (f *EditForm) Model() model.FormModel {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.form.Clone()
}

// Original returns the normalized preferences the form was opened with.
func (f *EditForm) Original() prefs.Preferences {
	return f.original.Clone()
}

// Value returns the current value of the named input.
func (f *EditForm) Value(name string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	field := f.form.Field(name)
	if field == nil {
		return "", false
	}
	return field.Value, true
}

// Values reads every input's name and value, as a browser would serialize
// the form.
func (f *EditForm) Values() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.form.Fields))
	for _, field := range f.form.Fields {
		out[field.Name] = field.Value
	}
	return out
}

// SetValue records user input for the named field. The mounted markup is not
// redrawn; the host's input already shows the value.
func (f *EditForm) SetValue(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	field := f.form.Field(name)
	if field == nil {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	field.Value = value
	return nil
}

// Cancel asks the host to close the edit screen. Nothing else changes.
func (f *EditForm) Cancel() {
	f.item.host.CloseEdit()
}

// ApplyDefaults overwrites every input that has a default and redraws the
// form. The host's stored preferences are untouched until Save.
func (f *EditForm) ApplyDefaults(ctx context.Context) error {
	defaults := f.item.normalizer.Defaults()

	f.mu.Lock()
	keys := make([]string, 0, len(defaults))
	for key := range defaults {
		keys = append(keys, string(key))
	}
	sort.Strings(keys)
	for _, key := range keys {
		if field := f.form.Field(key); field != nil {
			field.Value = defaults[prefs.Key(key)]
		}
	}
	f.mu.Unlock()

	return f.remount(ctx)
}

// Save merges the inputs over the original preferences and hands the result
// to the host. The loading bar is shown for the duration of the save. A host
// failure is returned and also shown on the redrawn form.
func (f *EditForm) Save(ctx context.Context) error {
	merged := prefs.Merge(f.original, f.Values())

	f.item.host.ShowLoadingBar()
	err := f.item.host.SavePreferences(ctx, merged)
	f.item.host.HideLoadingBar()

	if err != nil {
		f.setErrors([]string{SaveFailedMessage})
		if mountErr := f.remount(ctx); mountErr != nil {
			err = errors.Join(err, mountErr)
		}
		return fmt.Errorf("dashboarditem: save preferences: %w", err)
	}

	f.mu.Lock()
	hadErrors := len(f.form.Errors) > 0
	f.mu.Unlock()
	if hadErrors {
		f.setErrors(nil)
		return f.remount(ctx)
	}
	return nil
}

// Submit handles a posted edit form: inputs belonging to the form take the
// posted values, then the pressed button runs. A post without a button
// counts as Save, like pressing enter in the text field.
func (f *EditForm) Submit(ctx context.Context, posted url.Values) error {
	exclude := make([]string, 0, len(f.item.hidden))
	for name := range f.item.hidden {
		exclude = append(exclude, name)
	}
	sub := render.DecodeSubmission(posted, exclude...)

	for name, value := range sub.Values {
		if err := f.SetValue(name, value); err != nil {
			f.item.logger.Debug("ignoring posted value for unknown input", slog.String("name", name))
		}
	}

	switch sub.Action {
	case model.ActionSave, "":
		return f.Save(ctx)
	case model.ActionDefaults:
		return f.ApplyDefaults(ctx)
	case model.ActionCancel:
		f.Cancel()
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, sub.Action)
	}
}

func (f *EditForm) setErrors(messages []string) {
	f.mu.Lock()
	f.form.Errors = messages
	f.mu.Unlock()
}

func (f *EditForm) remount(ctx context.Context) error {
	form := f.Model()
	markup, err := f.item.renderer.RenderForm(ctx, form, f.item.renderOptions())
	if err != nil {
		return fmt.Errorf("dashboarditem: render form: %w", err)
	}
	if err := f.mount.Replace(ctx, markup); err != nil {
		return fmt.Errorf("dashboarditem: mount form: %w", err)
	}
	return nil
}
