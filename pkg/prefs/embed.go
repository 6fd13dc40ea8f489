package prefs

import (
	"context"
	_ "embed"
	"sync"
)

//go:embed schema/preferences.yaml
var embeddedSchema []byte

var (
	builtinOnce    sync.Once
	builtinCatalog *Catalog
	builtinErr     error
)

// SchemaDocument returns a copy of the embedded OpenAPI document declaring
// the built-in preferences.
func SchemaDocument() []byte {
	return append([]byte(nil), embeddedSchema...)
}

// DefaultCatalog returns the catalog parsed from the embedded document. The
// document ships with the package so a failure here is a build defect.
func DefaultCatalog() *Catalog {
	builtinOnce.Do(func() {
		builtinCatalog, builtinErr = LoadCatalog(context.Background(), embeddedSchema)
	})
	if builtinErr != nil {
		panic(builtinErr)
	}
	return builtinCatalog
}
