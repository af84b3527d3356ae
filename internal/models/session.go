package models

import "time"

const DefaultLocation = "No configurada"

// Session is the per-visitor view state behind every tab of the dashboard.
type Session struct {
	ID               string            `json:"id"`
	CreatedAt        time.Time         `json:"createdAt"`
	LastActivity     time.Time         `json:"lastActivity"`
	ExpiresAt        time.Time         `json:"expiresAt"`
	IsOnline         bool              `json:"isOnline"`
	CurrentLocation  string            `json:"currentLocation"`
	VoiceEnabled     bool              `json:"voiceEnabled"`
	Transcript       []Message         `json:"transcript"`
	SelectedProducts []string          `json:"selectedProducts"`
	LastSimulation   *SimulationResult `json:"lastSimulation,omitempty"`
	LastLocation     *LocationData     `json:"lastLocation,omitempty"`
}

// NewSession returns a session in its page-load state: online, no location,
// voice off and the assistant greeting as the only transcript entry.
func NewSession(id string, now time.Time, ttl time.Duration) *Session {
	return &Session{
		ID:               id,
		CreatedAt:        now,
		LastActivity:     now,
		ExpiresAt:        now.Add(ttl),
		IsOnline:         true,
		CurrentLocation:  DefaultLocation,
		Transcript:       []Message{NewGreeting(now)},
		SelectedProducts: []string{},
	}
}

func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

func (s *Session) Touch(now time.Time, ttl time.Duration) {
	s.LastActivity = now
	s.ExpiresAt = now.Add(ttl)
}

// IsSelected reports whether productID is in the selection set.
func (s *Session) IsSelected(productID string) bool {
	for _, id := range s.SelectedProducts {
		if id == productID {
			return true
		}
	}
	return false
}

// ToggleProduct adds productID when absent and removes it when present.
// It returns true when the product ends up selected.
func (s *Session) ToggleProduct(productID string) bool {
	for i, id := range s.SelectedProducts {
		if id == productID {
			s.SelectedProducts = append(s.SelectedProducts[:i:i], s.SelectedProducts[i+1:]...)
			return false
		}
	}
	s.SelectedProducts = append(s.SelectedProducts, productID)
	return true
}

func (s *Session) OnlineLabel() string {
	if s.IsOnline {
		return "Online"
	}
	return "Offline"
}
