// internal/workers/advisory/chat-reply/models.go
package chatreply

import "agro-advisor/internal/models"

type Input struct {
	SessionID string `json:"sessionId,omitempty"`
	Message   string `json:"message"`
	// IsOnline overrides the session flag. Callers without a session use it
	// to pick the fallback; nil means online.
	IsOnline  *bool `json:"isOnline,omitempty"`
	Listening bool  `json:"listening,omitempty"`
}

type Output struct {
	UserMessage      models.Message    `json:"userMessage"`
	BotMessage       models.Message    `json:"botMessage"`
	MatchedKeyword   string            `json:"matchedKeyword"`
	TranscriptLength int               `json:"transcriptLength"`
	Listening        bool              `json:"listening"`
	Utterance        *models.Utterance `json:"utterance,omitempty"`
}
