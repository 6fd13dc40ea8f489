package dashboarditem

import (
	"context"

	item "github.com/goliatone/go-dashboarditem/pkg/dashboarditem"
	"github.com/goliatone/go-dashboarditem/pkg/host"
	"github.com/goliatone/go-dashboarditem/pkg/prefs"
	"github.com/goliatone/go-dashboarditem/pkg/render"
)

// Item aliases the dashboard item so callers can stay on the root import.
type Item = item.Item

// EditForm is the controller returned by Item.RenderEdit.
type EditForm = item.EditForm

// Option configures an Item.
type Option = item.Option

// Host is the dashboard framework contract the item drives.
type Host = host.Host

// Mount is a mount point markup is rendered into.
type Mount = host.Mount

// Preferences is the host-supplied preference mapping.
type Preferences = prefs.Preferences

// RenderOptions describes per-render theme and hidden field overrides.
type RenderOptions = render.RenderOptions

// New exposes the item constructor from the top-level module.
func New(h Host, options ...Option) (*Item, error) {
	return item.New(h, options...)
}

// RenderViewHTML renders the view screen for raw and returns the markup. It
// is the simplest entry point for callers that just want HTML output; h still
// receives the loading bar and resize calls.
func RenderViewHTML(ctx context.Context, h Host, raw Preferences, options ...Option) ([]byte, error) {
	it, err := item.New(h, options...)
	if err != nil {
		return nil, err
	}
	buf := host.NewBuffer(nil)
	if err := it.Render(ctx, buf, raw); err != nil {
		return nil, err
	}
	return buf.Content(), nil
}

// WithOrigin forwards item.WithOrigin.
func WithOrigin(origin string) Option {
	return item.WithOrigin(origin)
}

// WithContextPath forwards item.WithContextPath.
func WithContextPath(path string) Option {
	return item.WithContextPath(path)
}

// WithHiddenFields forwards item.WithHiddenFields.
func WithHiddenFields(fields ...render.HiddenField) Option {
	return item.WithHiddenFields(fields...)
}

// WithCatalog forwards item.WithCatalog.
func WithCatalog(catalog *prefs.Catalog) Option {
	return item.WithCatalog(catalog)
}
