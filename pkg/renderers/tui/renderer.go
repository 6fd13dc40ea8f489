package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-dashboarditem/pkg/model"
	"github.com/goliatone/go-dashboarditem/pkg/render"
)

// Name is the identifier the text renderer registers under.
const Name = "text"

// Renderer renders the dashboard item screens as plain text for terminal
// hosts.
type Renderer struct {
	theme Theme
}

var _ render.Renderer = (*Renderer)(nil)

// NewRenderer constructs the text renderer.
func NewRenderer(theme Theme) *Renderer {
	return &Renderer{theme: theme}
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (r *Renderer) RenderView(ctx context.Context, view model.ViewModel, _ render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var b strings.Builder
	b.WriteString(view.Greeting)
	b.WriteString("\n")
	b.WriteString(view.Text)
	b.WriteString("\n")
	return []byte(b.String()), nil
}

func (r *Renderer) RenderForm(ctx context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var b strings.Builder
	for _, message := range render.MergeFormErrors(form.Errors, options.Errors...) {
		fmt.Fprintf(&b, "%s%s\n", r.theme.ErrorPrefix, message)
	}
	for _, field := range form.Fields {
		label := field.Label
		if field.Required {
			label += " (required)"
		}
		fmt.Fprintf(&b, "%s: %s\n", label, field.Value)
	}
	if form.Description != "" {
		fmt.Fprintf(&b, "%s%s\n", r.theme.InfoPrefix, form.Description)
	}
	labels := make([]string, 0, len(form.Actions))
	for _, action := range form.Actions {
		labels = append(labels, "["+action.Label+"]")
	}
	b.WriteString(strings.Join(labels, " "))
	b.WriteString("\n")
	return []byte(b.String()), nil
}
