package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-dashboarditem/pkg/model"
	"github.com/goliatone/go-dashboarditem/pkg/render"
	rendertemplate "github.com/goliatone/go-dashboarditem/pkg/render/template"
	"github.com/goliatone/go-dashboarditem/pkg/render/template/gotemplate"
)

// Name is the identifier the renderer registers under.
const Name = "vanilla"

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	classes          Classes
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The
// bundle must provide templates/view.tmpl and templates/form.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path != "" {
			cfg.templateFS = os.DirFS(path)
		}
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithClasses overrides chrome classes. Empty entries keep their default.
func WithClasses(classes Classes) Option {
	return func(cfg *config) {
		cfg.classes = classes
	}
}

// Renderer produces the HTML fragments mounted into the dashboard item.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	classes   Classes
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	return &Renderer{templates: templates, classes: cfg.classes.withFallbacks()}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// RenderView renders the main screen: the greeting and the preference text.
func (r *Renderer) RenderView(ctx context.Context, view model.ViewModel, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := r.templates.RenderTemplate(viewTemplate, map[string]any{
		"view":    view,
		"theme":   buildThemeContext(options.Theme),
		"classes": r.classes,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render view: %w", err)
	}
	return []byte(out), nil
}

// RenderForm renders the configuration form with current input values,
// hidden host fields and any form-level errors.
func (r *Renderer) RenderForm(ctx context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := r.templates.RenderTemplate(formTemplate, map[string]any{
		"form":         form,
		"hidden":       render.SortedHiddenFields(options.Hidden),
		"errors":       render.MergeFormErrors(form.Errors, options.Errors...),
		"theme":        buildThemeContext(options.Theme),
		"classes":      r.classes,
		"action_field": model.ActionField,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render form: %w", err)
	}
	return []byte(out), nil
}
