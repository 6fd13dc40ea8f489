package testsupport

import (
	"context"
	"sync"

	"github.com/goliatone/go-dashboarditem/pkg/host"
	"github.com/goliatone/go-dashboarditem/pkg/prefs"
)

// Host call names recorded by RecordingHost.
const (
	CallShowLoadingBar  = "showLoadingBar"
	CallHideLoadingBar  = "hideLoadingBar"
	CallIsEditable      = "isEditable"
	CallCloseEdit       = "closeEdit"
	CallResize          = "resize"
	CallSavePreferences = "savePreferences"
)

// RecordingHost is a host.Host that records every call in order.
type RecordingHost struct {
	mu sync.Mutex

	// Editable is returned by IsEditable.
	Editable bool
	// SaveErr, when set, is returned by SavePreferences.
	SaveErr error
	// OnSave runs inside SavePreferences before it returns.
	OnSave func(prefs.Preferences)

	calls []string
	saved []prefs.Preferences
}

var _ host.Host = (*RecordingHost)(nil)

// NewRecordingHost returns an editable RecordingHost.
func NewRecordingHost() *RecordingHost {
	return &RecordingHost{Editable: true}
}

func (h *RecordingHost) record(call string) {
	h.mu.Lock()
	h.calls = append(h.calls, call)
	h.mu.Unlock()
}

func (h *RecordingHost) ShowLoadingBar() { h.record(CallShowLoadingBar) }
func (h *RecordingHost) HideLoadingBar() { h.record(CallHideLoadingBar) }
func (h *RecordingHost) CloseEdit()      { h.record(CallCloseEdit) }
func (h *RecordingHost) Resize()         { h.record(CallResize) }

func (h *RecordingHost) IsEditable() bool {
	h.record(CallIsEditable)
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Editable
}

func (h *RecordingHost) SavePreferences(ctx context.Context, preferences prefs.Preferences) error {
	h.record(CallSavePreferences)
	if err := ctx.Err(); err != nil {
		return err
	}
	h.mu.Lock()
	h.saved = append(h.saved, preferences.Clone())
	onSave, saveErr := h.OnSave, h.SaveErr
	h.mu.Unlock()

	if onSave != nil {
		onSave(preferences)
	}
	return saveErr
}

// Calls returns the recorded call names in order.
func (h *RecordingHost) Calls() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.calls...)
}

// Count returns how many times call was made.
func (h *RecordingHost) Count(call string) int {
	n := 0
	for _, c := range h.Calls() {
		if c == call {
			n++
		}
	}
	return n
}

// Saved returns every mapping passed to SavePreferences.
func (h *RecordingHost) Saved() []prefs.Preferences {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]prefs.Preferences(nil), h.saved...)
}

// Reset forgets recorded calls and saves.
func (h *RecordingHost) Reset() {
	h.mu.Lock()
	h.calls = nil
	h.saved = nil
	h.mu.Unlock()
}
