package toggleconnectivity

type Input struct {
	SessionID string `json:"sessionId"`
}

type Output struct {
	IsOnline bool   `json:"isOnline"`
	Label    string `json:"label"`
}
