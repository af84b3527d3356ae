package chatreply

import (
	"context"
	"errors"
	"testing"
	"time"

	"agro-advisor/internal/common/camunda/camundatest"
	apperrors "agro-advisor/internal/common/errors"
	"agro-advisor/internal/common/logger"
	"agro-advisor/internal/common/observability"
	"agro-advisor/internal/models"
	"agro-advisor/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger { return tl }

func (tl *testLogger) WithError(err error) logger.Logger { return tl }

func (tl *testLogger) With(fields map[string]interface{}) logger.Logger { return tl }

func (tl *testLogger) Sync() error { return nil }

func createTestConfig() *Config {
	return &Config{Timeout: 5 * time.Second}
}

func createTestHandler(t *testing.T) (*Handler, *session.Manager) {
	log := &testLogger{t: t}
	sessions := session.NewManager(session.NewMemoryStore(), time.Hour, log)
	return NewHandler(createTestConfig(), sessions, observability.NewNoop(), log), sessions
}

func boolPtr(b bool) *bool { return &b }

// ==========================
// Keyword Table Tests
// ==========================

func TestReply(t *testing.T) {
	tests := []struct {
		name        string
		message     string
		online      bool
		wantKeyword string
		wantText    string
	}{
		{"maiz", "¿Cuándo sembrar maíz?", true, "maíz", keywordTable[0].Response},
		{"uppercase", "MAÍZ AMARILLO", true, "maíz", keywordTable[0].Response},
		{"tomate", "Fertilizantes para tomate", true, "tomate", keywordTable[1].Response},
		{"table order wins", "tomate con plagas", true, "tomate", keywordTable[1].Response},
		{"plagas", "¿Cómo controlar plagas?", false, "plagas", keywordTable[2].Response},
		{"fertilizante", "qué fertilizante uso", true, "fertilizante", keywordTable[3].Response},
		{"unaccented maiz is no match", "maiz", true, "", FallbackPrefix + OnlineFallback},
		{"fallback online", "Calendario de siembra", true, "", FallbackPrefix + OnlineFallback},
		{"fallback offline", "Calendario de siembra", false, "", FallbackPrefix + OfflineFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, keyword := Reply(tt.message, tt.online)
			assert.Equal(t, tt.wantKeyword, keyword)
			assert.Equal(t, tt.wantText, text)
		})
	}
}

func TestSpeak(t *testing.T) {
	u := Speak("Hola")
	assert.Equal(t, "Hola", u.Text)
	assert.Equal(t, "es-ES", u.Lang)
}

// ==========================
// Execute Tests
// ==========================

func TestHandler_Execute_AppendsBothMessages(t *testing.T) {
	handler, sessions := createTestHandler(t)
	ctx := context.Background()

	s, err := sessions.Create(ctx)
	require.NoError(t, err)

	output, err := handler.Execute(ctx, &Input{SessionID: s.ID, Message: "Tengo plagas", Listening: true})
	require.NoError(t, err)

	assert.Equal(t, "plagas", output.MatchedKeyword)
	assert.Equal(t, models.RoleUser, output.UserMessage.Role)
	assert.Equal(t, "Tengo plagas", output.UserMessage.Content)
	assert.Equal(t, models.RoleBot, output.BotMessage.Role)
	assert.Equal(t, ReplySuggestions, output.BotMessage.Suggestions)
	assert.Equal(t, 3, output.TranscriptLength)
	assert.True(t, output.Listening)
	assert.Nil(t, output.Utterance)

	transcript, err := handler.Transcript(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, transcript, 3)
	assert.Equal(t, models.GreetingText, transcript[0].Content)
	assert.Equal(t, output.UserMessage.ID, transcript[1].ID)
	assert.Equal(t, output.BotMessage.ID, transcript[2].ID)
}

func TestHandler_Execute_FallbackFollowsSessionFlag(t *testing.T) {
	handler, sessions := createTestHandler(t)
	ctx := context.Background()

	s, err := sessions.Create(ctx)
	require.NoError(t, err)
	_, err = sessions.Update(ctx, s.ID, func(s *models.Session) error {
		s.IsOnline = false
		return nil
	})
	require.NoError(t, err)

	output, err := handler.Execute(ctx, &Input{SessionID: s.ID, Message: "hola"})
	require.NoError(t, err)
	assert.Equal(t, FallbackPrefix+OfflineFallback, output.BotMessage.Content)

	output, err = handler.Execute(ctx, &Input{SessionID: s.ID, Message: "hola", IsOnline: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, FallbackPrefix+OnlineFallback, output.BotMessage.Content)
}

func TestHandler_Execute_WithoutSession(t *testing.T) {
	handler, _ := createTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{Message: "algo", IsOnline: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, FallbackPrefix+OfflineFallback, output.BotMessage.Content)
	assert.Zero(t, output.TranscriptLength)
}

func TestHandler_Execute_VoiceEnabledSpeaksReply(t *testing.T) {
	handler, sessions := createTestHandler(t)
	ctx := context.Background()

	s, err := sessions.Create(ctx)
	require.NoError(t, err)
	_, err = sessions.Update(ctx, s.ID, func(s *models.Session) error {
		s.VoiceEnabled = true
		return nil
	})
	require.NoError(t, err)

	output, err := handler.Execute(ctx, &Input{SessionID: s.ID, Message: "tomate"})
	require.NoError(t, err)
	require.NotNil(t, output.Utterance)
	assert.Equal(t, output.BotMessage.Content, output.Utterance.Text)
}

func TestHandler_Execute_Errors(t *testing.T) {
	handler, sessions := createTestHandler(t)
	ctx := context.Background()

	s, err := sessions.Create(ctx)
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    *Input
		wantCode apperrors.ErrorCode
	}{
		{"nil input", nil, apperrors.ErrCodeEmptyMessage},
		{"empty message", &Input{SessionID: s.ID, Message: ""}, apperrors.ErrCodeEmptyMessage},
		{"whitespace message", &Input{SessionID: s.ID, Message: "  \t\n"}, apperrors.ErrCodeEmptyMessage},
		{"unknown session", &Input{SessionID: "missing", Message: "maíz"}, apperrors.ErrCodeSessionNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.Execute(ctx, tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperrors.FromError(err).Code)
		})
	}

	_, err = handler.Execute(ctx, &Input{SessionID: s.ID})
	assert.True(t, errors.Is(err, ErrEmptyMessage))

	got, err := sessions.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Len(t, got.Transcript, 1, "rejected messages are not appended")
}

func TestHandler_Execute_CancelledDuringDelay(t *testing.T) {
	handler, sessions := createTestHandler(t)
	handler.config.Delay = time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	s, err := sessions.Create(context.Background())
	require.NoError(t, err)

	_, err = handler.Execute(ctx, &Input{SessionID: s.ID, Message: "maíz"})
	assert.Equal(t, apperrors.ErrCodeTimeout, apperrors.FromError(err).Code)

	got, err := sessions.Get(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Len(t, got.Transcript, 2)
}

// ==========================
// Job Worker Tests
// ==========================

func TestHandler_Handle(t *testing.T) {
	handler, sessions := createTestHandler(t)
	s, err := sessions.Create(context.Background())
	require.NoError(t, err)

	client := camundatest.NewJobClient()
	handler.Handle(client, camundatest.NewJob(1, TaskType, map[string]interface{}{
		"sessionId": s.ID,
		"message":   "¿Cuándo sembrar maíz?",
	}))

	require.Len(t, client.Gateway.Completed, 1)
	var output Output
	require.NoError(t, client.CompletedVariables(0, &output))
	assert.Equal(t, "maíz", output.MatchedKeyword)
	assert.Equal(t, 3, output.TranscriptLength)

	handler.Handle(client, camundatest.NewJob(2, TaskType, map[string]interface{}{"message": " "}))
	require.Len(t, client.Gateway.Thrown, 1)
	assert.Equal(t, "EMPTY_MESSAGE", client.Gateway.Thrown[0].ErrorCode)
}
