// internal/workers/location/lookup-location/models.go
package lookuplocation

import "agro-advisor/internal/models"

const (
	ModeDevice = "device"
	ModeSearch = "search"

	PermissionGranted     = "granted"
	PermissionDenied      = "denied"
	PermissionUnsupported = "unsupported"
)

type Input struct {
	SessionID   string              `json:"sessionId,omitempty"`
	Mode        string              `json:"mode"`
	Permission  string              `json:"permission,omitempty"`
	Coordinates *models.Coordinates `json:"coordinates,omitempty"`
	Query       string              `json:"query,omitempty"`
}

type Output struct {
	Location        models.LocationData `json:"location"`
	Recommendations []string            `json:"recommendations"`
	Summary         string              `json:"summary,omitempty"`
	CurrentLocation string              `json:"currentLocation"`
}
