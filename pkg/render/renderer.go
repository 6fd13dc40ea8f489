package render

import (
	"context"

	"github.com/goliatone/go-dashboarditem/pkg/model"
)

// Renderer turns the dashboard item screens into a byte representation
// (HTML for browser hosts, plain text for terminal hosts).
type Renderer interface {
	Name() string
	ContentType() string
	RenderView(ctx context.Context, view model.ViewModel, options RenderOptions) ([]byte, error)
	RenderForm(ctx context.Context, form model.FormModel, options RenderOptions) ([]byte, error)
}
