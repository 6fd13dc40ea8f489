package main

import (
	"fmt"
	"os"
	"path/filepath"

	theme "github.com/goliatone/go-theme"
)

// loadThemeManifest reads a JSON or YAML go-theme manifest. The format
// follows the file extension; the manifest is validated on decode.
func loadThemeManifest(path string) (*theme.Manifest, error) {
	manifest, err := theme.LoadFile(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}
	return manifest, nil
}
