package dashboarditem

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-dashboarditem/pkg/host"
	"github.com/goliatone/go-dashboarditem/pkg/model"
	"github.com/goliatone/go-dashboarditem/pkg/prefs"
	"github.com/goliatone/go-dashboarditem/pkg/render"
	"github.com/goliatone/go-dashboarditem/pkg/renderers/vanilla"
)

const searchPath = "/rest/api/2/search"

// Item is one dashboard item instance bound to its host.
type Item struct {
	host       host.Host
	catalog    *prefs.Catalog
	normalizer *prefs.Normalizer
	renderer   render.Renderer
	builder    model.Builder
	logger     *slog.Logger

	contextPath string
	greeting    string
	displayKey  prefs.Key
	hidden      map[string]string
	theme       *theme.RendererConfig

	preventRerender atomic.Bool

	mu          sync.Mutex
	preferences prefs.Preferences
}

// New constructs an Item. Missing collaborators fall back to the built-in
// catalog, the catalog form builder and the vanilla HTML renderer.
func New(h host.Host, options ...Option) (*Item, error) {
	if h == nil {
		return nil, ErrNilHost
	}

	cfg := config{greeting: DefaultGreeting}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.catalog == nil {
		cfg.catalog = prefs.DefaultCatalog()
	}
	if cfg.builder == nil {
		cfg.builder = model.NewBuilder()
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.renderer == nil {
		renderer, err := vanilla.New()
		if err != nil {
			return nil, fmt.Errorf("dashboarditem: default renderer: %w", err)
		}
		cfg.renderer = renderer
	}
	if cfg.environment == "" {
		cfg.environment = prefs.EnvironmentFromOrigin(cfg.origin)
	}
	if cfg.displayKey == "" {
		if keys := cfg.catalog.Keys(); len(keys) > 0 {
			cfg.displayKey = keys[0]
		}
	}
	if cfg.themeConfig == nil && cfg.themeSelector != nil {
		resolved, err := resolveTheme(cfg.themeSelector, cfg.themeName, cfg.themeVariant)
		if err != nil {
			return nil, err
		}
		cfg.themeConfig = resolved
	}

	return &Item{
		host:        h,
		catalog:     cfg.catalog,
		normalizer:  prefs.NewNormalizer(cfg.catalog, cfg.catalog.Defaults(cfg.environment)),
		renderer:    cfg.renderer,
		builder:     cfg.builder,
		logger:      cfg.logger,
		contextPath: cfg.contextPath,
		greeting:    cfg.greeting,
		displayKey:  cfg.displayKey,
		hidden:      cfg.hidden,
		theme:       cfg.themeConfig,
		preferences: prefs.Preferences{},
	}, nil
}

// Defaults returns the fallback values in effect for this item.
func (it *Item) Defaults() prefs.Defaults {
	return it.normalizer.Defaults()
}

// Preferences returns the last normalized preferences received from the
// host.
func (it *Item) Preferences() prefs.Preferences {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.preferences.Clone()
}

// SearchURL is the host's issue search endpoint.
func (it *Item) SearchURL() string {
	return it.contextPath + searchPath
}

// Theme returns the resolved theme configuration, if any.
func (it *Item) Theme() *theme.RendererConfig {
	return it.theme
}

func (it *Item) normalize(raw prefs.Preferences) prefs.Preferences {
	normalized := it.normalizer.Normalize(raw)
	it.mu.Lock()
	it.preferences = normalized.Clone()
	it.mu.Unlock()
	return normalized
}

func (it *Item) renderOptions() render.RenderOptions {
	return render.RenderOptions{
		Theme:  it.theme,
		Hidden: it.hidden,
	}
}

// Render draws the view screen into mount. If a save from the view screen
// just raised the prevent-rerender flag, the call only clears the flag.
func (it *Item) Render(ctx context.Context, mount host.Mount, raw prefs.Preferences) error {
	if mount == nil {
		return ErrNilMount
	}
	normalized := it.normalize(raw)

	if it.preventRerender.CompareAndSwap(true, false) {
		return nil
	}

	it.host.ShowLoadingBar()
	markup, err := it.renderer.RenderView(ctx, model.ViewModel{
		Greeting: it.greeting,
		Text:     normalized.String(it.displayKey),
	}, it.renderOptions())
	if err != nil {
		it.host.HideLoadingBar()
		return fmt.Errorf("dashboarditem: render view: %w", err)
	}
	if err := mount.Replace(ctx, markup); err != nil {
		it.host.HideLoadingBar()
		return fmt.Errorf("dashboarditem: mount view: %w", err)
	}

	it.host.HideLoadingBar()
	it.host.Resize()
	return nil
}

// SaveFromView persists preferences changed on the view screen. The next
// Render, normally triggered by the host after the save, is skipped so the
// screen does not flicker.
func (it *Item) SaveFromView(ctx context.Context, preferences prefs.Preferences) error {
	it.preventRerender.Store(true)
	if err := it.host.SavePreferences(ctx, preferences); err != nil {
		it.preventRerender.Store(false)
		return fmt.Errorf("dashboarditem: save preferences: %w", err)
	}
	return nil
}

// RenderEdit draws the edit screen into mount and returns its controller.
// When the host reports the item is not editable, nothing is mounted, the
// host is asked to close the edit screen, and the returned form is nil.
func (it *Item) RenderEdit(ctx context.Context, mount host.Mount, raw prefs.Preferences) (*EditForm, error) {
	if mount == nil {
		return nil, ErrNilMount
	}
	it.host.HideLoadingBar()

	normalized := it.normalize(raw)

	if !it.host.IsEditable() {
		it.logger.Warn("dashboard item is not editable, check your permissions")
		it.host.CloseEdit()
		return nil, nil
	}

	form, err := it.builder.Build(it.catalog, it.normalizer.Defaults())
	if err != nil {
		return nil, fmt.Errorf("dashboarditem: build form: %w", err)
	}
	for _, key := range it.catalog.Keys() {
		if field := form.Field(string(key)); field != nil {
			field.Value = normalized.String(key)
		}
	}

	editForm := &EditForm{
		item:     it,
		mount:    mount,
		original: normalized,
		form:     form,
	}
	if err := editForm.remount(ctx); err != nil {
		return nil, err
	}
	it.host.Resize()
	return editForm, nil
}
