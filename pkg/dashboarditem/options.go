package dashboarditem

import (
	"log/slog"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-dashboarditem/pkg/model"
	"github.com/goliatone/go-dashboarditem/pkg/prefs"
	"github.com/goliatone/go-dashboarditem/pkg/render"
)

// DefaultGreeting is the static text of the view screen.
const DefaultGreeting = "Hello world!"

// Option customises an Item.
type Option func(*config)

type config struct {
	catalog     *prefs.Catalog
	renderer    render.Renderer
	builder     model.Builder
	logger      *slog.Logger
	origin      string
	environment prefs.Environment
	contextPath string
	greeting    string
	displayKey  prefs.Key
	hidden      map[string]string

	themeSelector theme.ThemeSelector
	themeName     string
	themeVariant  string
	themeConfig   *theme.RendererConfig
}

// WithCatalog replaces the built-in preference catalog.
func WithCatalog(catalog *prefs.Catalog) Option {
	return func(cfg *config) {
		if catalog != nil {
			cfg.catalog = catalog
		}
	}
}

// WithRenderer replaces the vanilla HTML renderer.
func WithRenderer(renderer render.Renderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.renderer = renderer
		}
	}
}

// WithModelBuilder replaces the catalog form builder.
func WithModelBuilder(builder model.Builder) Option {
	return func(cfg *config) {
		if builder != nil {
			cfg.builder = builder
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithOrigin records the page origin the host runs under. Origins on
// localhost select the local development defaults.
func WithOrigin(origin string) Option {
	return func(cfg *config) {
		cfg.origin = strings.TrimSpace(origin)
	}
}

// WithEnvironment forces the defaults environment regardless of origin.
func WithEnvironment(env prefs.Environment) Option {
	return func(cfg *config) {
		cfg.environment = env
	}
}

// WithContextPath sets the base URL of the host application, used to build
// SearchURL.
func WithContextPath(path string) Option {
	return func(cfg *config) {
		cfg.contextPath = strings.TrimRight(strings.TrimSpace(path), "/")
	}
}

// WithGreeting overrides the view screen greeting.
func WithGreeting(greeting string) Option {
	return func(cfg *config) {
		cfg.greeting = greeting
	}
}

// WithDisplayKey selects which preference the view screen shows. It defaults
// to the first key of the catalog.
func WithDisplayKey(key prefs.Key) Option {
	return func(cfg *config) {
		cfg.displayKey = key
	}
}

// WithHiddenFields adds hidden inputs to the edit form, such as a host XSRF
// token. Hidden fields are never saved as preferences.
func WithHiddenFields(fields ...render.HiddenField) Option {
	return func(cfg *config) {
		cfg.hidden = render.MergeHiddenFields(cfg.hidden, fields...)
	}
}

// WithThemeSelector resolves name/variant through a go-theme selector when
// the item is constructed.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(cfg *config) {
		cfg.themeSelector = selector
		cfg.themeName = name
		cfg.themeVariant = variant
	}
}

// WithThemeProvider selects name/variant from a go-theme provider, such as
// the registry returned by NewThemeRegistry. Name and variant are also the
// selector defaults.
func WithThemeProvider(provider theme.ThemeProvider, name, variant string) Option {
	return func(cfg *config) {
		if provider == nil {
			return
		}
		cfg.themeSelector = theme.Selector{
			Registry:       provider,
			DefaultTheme:   name,
			DefaultVariant: variant,
		}
		cfg.themeName = name
		cfg.themeVariant = variant
	}
}

// WithThemeConfig passes an already resolved theme configuration.
func WithThemeConfig(themeConfig *theme.RendererConfig) Option {
	return func(cfg *config) {
		cfg.themeConfig = themeConfig
	}
}
