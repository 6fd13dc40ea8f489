package dashboarditem

import (
	"fmt"

	theme "github.com/goliatone/go-theme"
)

func resolveTheme(selector theme.ThemeSelector, name, variant string) (*theme.RendererConfig, error) {
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("dashboarditem: select theme %q/%q: %w", name, variant, err)
	}
	if selection == nil {
		return nil, nil
	}
	cfg := selection.RendererTheme(nil)
	return &cfg, nil
}

// NewThemeRegistry registers manifests in a go-theme memory registry. Nil
// manifests are skipped.
func NewThemeRegistry(manifests ...*theme.Manifest) (*theme.MemoryRegistry, error) {
	registry := theme.NewRegistry()
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("dashboarditem: register theme %q: %w", manifest.Name, err)
		}
	}
	return registry, nil
}
