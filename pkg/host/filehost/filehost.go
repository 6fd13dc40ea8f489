// Package filehost is a Host for local development: preferences live in a
// YAML file and lifecycle calls are logged.
package filehost

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-dashboarditem/pkg/host"
	"github.com/goliatone/go-dashboarditem/pkg/prefs"
)

// Option configures a Host.
type Option func(*Host)

// WithEditable sets the answer to IsEditable. Hosts are editable by default.
func WithEditable(editable bool) Option {
	return func(h *Host) {
		h.editable = editable
	}
}

// WithLogger overrides the logger used for lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// Host stores preferences in a YAML file.
type Host struct {
	path     string
	editable bool
	logger   *slog.Logger

	mu      sync.Mutex
	loading bool
	editing bool
	resizes int
}

var _ host.Host = (*Host)(nil)

// New returns a Host persisting to path.
func New(path string, options ...Option) (*Host, error) {
	if path == "" {
		return nil, errors.New("filehost: preferences path is required")
	}
	h := &Host{
		path:     path,
		editable: true,
		logger:   slog.Default(),
		editing:  true,
	}
	for _, opt := range options {
		if opt != nil {
			opt(h)
		}
	}
	return h, nil
}

// Path returns the preferences file location.
func (h *Host) Path() string {
	return h.path
}

// Load reads the stored preferences. A missing file yields an empty mapping.
func (h *Host) Load(ctx context.Context) (prefs.Preferences, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		return prefs.Preferences{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("filehost: read %s: %w", h.path, err)
	}
	out := prefs.Preferences{}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("filehost: parse %s: %w", h.path, err)
	}
	return out, nil
}

// SavePreferences writes the mapping to a temporary file and renames it over
// the preferences file.
func (h *Host) SavePreferences(ctx context.Context, preferences prefs.Preferences) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := yaml.Marshal(map[string]any(preferences))
	if err != nil {
		return fmt.Errorf("filehost: encode preferences: %w", err)
	}

	dir := filepath.Dir(h.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("filehost: create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".prefs-*.yaml")
	if err != nil {
		return fmt.Errorf("filehost: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("filehost: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("filehost: close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), h.path); err != nil {
		return fmt.Errorf("filehost: replace %s: %w", h.path, err)
	}
	h.logger.Info("preferences saved", slog.String("path", h.path), slog.Int("keys", len(preferences)))
	return nil
}

func (h *Host) ShowLoadingBar() {
	h.mu.Lock()
	h.loading = true
	h.mu.Unlock()
	h.logger.Debug("loading bar shown")
}

func (h *Host) HideLoadingBar() {
	h.mu.Lock()
	h.loading = false
	h.mu.Unlock()
	h.logger.Debug("loading bar hidden")
}

func (h *Host) IsEditable() bool {
	return h.editable
}

func (h *Host) CloseEdit() {
	h.mu.Lock()
	h.editing = false
	h.mu.Unlock()
	h.logger.Debug("edit screen closed")
}

func (h *Host) Resize() {
	h.mu.Lock()
	h.resizes++
	h.mu.Unlock()
	h.logger.Debug("resize requested")
}

// Loading reports whether the loading bar is currently shown.
func (h *Host) Loading() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loading
}

// Resizes reports how many resize requests the item made.
func (h *Host) Resizes() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.resizes
}

// Editing reports whether edit mode is still open.
func (h *Host) Editing() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.editing
}
