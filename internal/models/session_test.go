package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession_Defaults(t *testing.T) {
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	s := NewSession("abc", now, time.Hour)

	assert.True(t, s.IsOnline)
	assert.False(t, s.VoiceEnabled)
	assert.Equal(t, "No configurada", s.CurrentLocation)
	assert.Empty(t, s.SelectedProducts)
	assert.Nil(t, s.LastSimulation)
	assert.Nil(t, s.LastLocation)

	require.Len(t, s.Transcript, 1)
	assert.Equal(t, RoleBot, s.Transcript[0].Role)
	assert.Equal(t, GreetingText, s.Transcript[0].Content)
	assert.Equal(t, GreetingSuggestions, s.Transcript[0].Suggestions)

	assert.False(t, s.IsExpired(now.Add(59*time.Minute)))
	assert.True(t, s.IsExpired(now.Add(61*time.Minute)))
}

func TestSession_ToggleProduct(t *testing.T) {
	s := NewSession("abc", time.Now(), time.Hour)

	assert.True(t, s.ToggleProduct("3"))
	assert.True(t, s.ToggleProduct("1"))
	assert.Equal(t, []string{"3", "1"}, s.SelectedProducts)

	before := append([]string(nil), s.SelectedProducts...)
	assert.True(t, s.ToggleProduct("5"))
	assert.False(t, s.ToggleProduct("5"))
	assert.Equal(t, before, s.SelectedProducts)

	assert.False(t, s.ToggleProduct("3"))
	assert.Equal(t, []string{"1"}, s.SelectedProducts)
	assert.False(t, s.IsSelected("3"))
	assert.True(t, s.IsSelected("1"))
}

func TestSession_OnlineLabel(t *testing.T) {
	s := NewSession("abc", time.Now(), time.Hour)
	assert.Equal(t, "Online", s.OnlineLabel())
	s.IsOnline = false
	assert.Equal(t, "Offline", s.OnlineLabel())
}
