package dashboarditem

import "errors"

var (
	// ErrNilHost is returned by New when no host is supplied.
	ErrNilHost = errors.New("dashboarditem: host is required")
	// ErrNilMount is returned when Render or RenderEdit receive no mount point.
	ErrNilMount = errors.New("dashboarditem: mount point is required")
	// ErrUnknownField is returned when setting a value on an input the form
	// does not have.
	ErrUnknownField = errors.New("dashboarditem: unknown form field")
	// ErrUnknownAction is returned by Submit for an unrecognized button.
	ErrUnknownAction = errors.New("dashboarditem: unknown form action")
)

// SaveFailedMessage is shown on the form when the host fails to persist.
const SaveFailedMessage = "Preferences could not be saved. Try again."
