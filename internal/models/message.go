package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser = "user"
	RoleBot  = "bot"
)

const GreetingText = "¡Hola! Soy tu asistente agrícola. Puedo ayudarte con consultas sobre cultivos, plagas, fertilización y más. ¿En qué puedo ayudarte hoy?"

var GreetingSuggestions = []string{
	"¿Cuándo sembrar maíz?",
	"¿Cómo controlar plagas?",
	"Fertilizantes para tomate",
	"Calendario de siembra",
}

type Message struct {
	ID          string    `json:"id"`
	Role        string    `json:"role"`
	Content     string    `json:"content"`
	Timestamp   time.Time `json:"timestamp"`
	Suggestions []string  `json:"suggestions,omitempty"`
}

func NewUserMessage(content string, now time.Time) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Content:   content,
		Timestamp: now,
	}
}

func NewBotMessage(content string, suggestions []string, now time.Time) Message {
	return Message{
		ID:          uuid.NewString(),
		Role:        RoleBot,
		Content:     content,
		Timestamp:   now,
		Suggestions: append([]string(nil), suggestions...),
	}
}

func NewGreeting(now time.Time) Message {
	return NewBotMessage(GreetingText, GreetingSuggestions, now)
}
