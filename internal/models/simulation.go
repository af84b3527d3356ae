package models

type SimulationRequest struct {
	Crop       string  `json:"crop"`
	Area       float64 `json:"area"`
	Location   string  `json:"location,omitempty"`
	Season     string  `json:"season,omitempty"`
	Fertilizer string  `json:"fertilizer,omitempty"`
	Pesticide  string  `json:"pesticide,omitempty"`
	Seeds      string  `json:"seeds,omitempty"`
}

type SimulationResult struct {
	Viability       int      `json:"viability"`
	ExpectedYield   float64  `json:"expectedYield"`
	Profitability   int      `json:"profitability"`
	Investment      int      `json:"investment"`
	Revenue         int      `json:"revenue"`
	Profit          int      `json:"profit"`
	Risks           []string `json:"risks"`
	Recommendations []string `json:"recommendations"`
	Rating          string   `json:"rating"`
}

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
