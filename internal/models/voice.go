package models

const SpeechLang = "es-ES"

// Utterance is a text-to-speech request the client plays back.
type Utterance struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

func NewUtterance(text string) *Utterance {
	return &Utterance{Text: text, Lang: SpeechLang}
}
