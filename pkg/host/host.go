// Package host declares the capability surface a dashboard framework hands
// to an item, and the mount point the item renders into.
package host

import (
	"context"

	"github.com/goliatone/go-dashboarditem/pkg/prefs"
)

// Host is the lifecycle API supplied by the dashboard framework.
type Host interface {
	ShowLoadingBar()
	HideLoadingBar()
	// IsEditable reports whether the current user may change preferences.
	IsEditable() bool
	// CloseEdit leaves edit mode and returns to the view screen.
	CloseEdit()
	// Resize tells the host the mount point content changed size.
	Resize()
	// SavePreferences persists the mapping. Hosts typically redraw the item
	// once it completes.
	SavePreferences(ctx context.Context, preferences prefs.Preferences) error
}

// Mount is the DOM node (or equivalent surface) the item owns while mounted.
type Mount interface {
	// Replace swaps the mount contents for markup and returns once the new
	// content is in place.
	Replace(ctx context.Context, markup []byte) error
}
