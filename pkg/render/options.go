package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the form model.
type RenderOptions struct {
	// Theme carries the resolved go-theme configuration. Renderers expose its
	// tokens as CSS variables on the item root.
	Theme *theme.RendererConfig
	// Hidden lists extra inputs emitted inside the form, typically host
	// tokens such as an XSRF token.
	Hidden map[string]string
	// Errors surfaces form-level messages (for example a failed save).
	Errors []string
}
