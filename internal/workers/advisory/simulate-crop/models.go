// internal/workers/advisory/simulate-crop/models.go
package simulatecrop

import "agro-advisor/internal/models"

type Input struct {
	SessionID string `json:"sessionId,omitempty"`
	models.SimulationRequest
}

type Output struct {
	Request models.SimulationRequest `json:"request"`
	Result  models.SimulationResult  `json:"result"`
}

// Options lists the select choices of the simulator form.
type Options struct {
	Crops       []models.Option `json:"crops"`
	Seasons     []models.Option `json:"seasons"`
	Fertilizers []models.Option `json:"fertilizers"`
	Pesticides  []models.Option `json:"pesticides"`
	Seeds       []models.Option `json:"seeds"`
}
