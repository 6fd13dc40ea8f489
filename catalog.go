package dashboarditem

import (
	"context"

	"github.com/goliatone/go-dashboarditem/pkg/prefs"
)

// DefaultCatalog returns the catalog built from the embedded preference
// schema.
func DefaultCatalog() *prefs.Catalog {
	return prefs.DefaultCatalog()
}

// LoadCatalog builds a catalog from an OpenAPI document declaring the
// preferences, for use with WithCatalog.
func LoadCatalog(ctx context.Context, raw []byte) (*prefs.Catalog, error) {
	return prefs.LoadCatalog(ctx, raw)
}
