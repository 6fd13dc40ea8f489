package dashboarditem

import (
	"embed"
	"io/fs"
)

// StylesheetFile is the default item stylesheet inside AssetsFS.
const StylesheetFile = "dashboarditem.css"

//go:embed assets/*.css
var embeddedAssets embed.FS

// AssetsFS exposes the static files the rendered screens reference so Go
// hosts can serve them directly.
//
// Typical mount:
//
//	mux.Handle("/dashboarditem/",
//	  http.StripPrefix("/dashboarditem/",
//	    http.FileServerFS(dashboarditem.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}
