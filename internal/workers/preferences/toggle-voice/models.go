package togglevoice

import "agro-advisor/internal/models"

type Input struct {
	SessionID string `json:"sessionId"`
}

type Output struct {
	VoiceEnabled bool              `json:"voiceEnabled"`
	Label        string            `json:"label"`
	Utterance    *models.Utterance `json:"utterance,omitempty"`
}
