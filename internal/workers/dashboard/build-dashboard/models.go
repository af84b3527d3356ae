// internal/workers/dashboard/build-dashboard/models.go
package builddashboard

import "agro-advisor/internal/models"

type Input struct {
	SessionID string `json:"sessionId,omitempty"`
}

type Tab struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type Header struct {
	App             string `json:"app"`
	Tagline         string `json:"tagline"`
	Tabs            []Tab  `json:"tabs"`
	CurrentLocation string `json:"currentLocation"`
	IsOnline        bool   `json:"isOnline"`
	OnlineLabel     string `json:"onlineLabel"`
	VoiceEnabled    bool   `json:"voiceEnabled"`
}

type Stat struct {
	Label  string `json:"label"`
	Value  int    `json:"value"`
	Suffix string `json:"suffix,omitempty"`
}

type Condition struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Recommendation struct {
	Badge string `json:"badge"`
	Text  string `json:"text"`
}

type Tutorial struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Output struct {
	Header               Header                   `json:"header"`
	QuickStats           []Stat                   `json:"quickStats"`
	CurrentConditions    []Condition              `json:"currentConditions"`
	DailyRecommendations []Recommendation         `json:"dailyRecommendations"`
	UpcomingTasks        []string                 `json:"upcomingTasks"`
	Tutorials            []Tutorial               `json:"tutorials"`
	TipsOfTheDay         []string                 `json:"tipsOfTheDay"`
	FrequentQuestions    []string                 `json:"frequentQuestions"`
	SelectedProducts     int                      `json:"selectedProducts"`
	LastSimulation       *models.SimulationResult `json:"lastSimulation,omitempty"`
}
