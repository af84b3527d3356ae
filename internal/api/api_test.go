package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"agro-advisor/internal/app"
	"agro-advisor/internal/common/config"
	"agro-advisor/internal/common/logger"
	"agro-advisor/internal/models"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *mux.Router {
	cfg := &config.Config{
		Camunda:   config.CamundaConfig{Timeout: 5000},
		Session:   config.SessionConfig{Backend: config.SessionBackendMemory, TTL: 60000},
		Catalog:   config.CatalogConfig{Backend: config.CatalogBackendMemory, Index: "agro-products"},
		Dashboard: config.DashboardConfig{TipsPerDay: 2},
		Mock:      config.MockConfig{Seed: 7},
		Workers:   map[string]config.WorkerConfig{},
	}
	log := logger.NewTestLogger(t)

	a, err := app.New(context.Background(), cfg, nil, log)
	require.NoError(t, err)
	t.Cleanup(a.Close)

	return NewServer(a, log).Router()
}

func newTestServer(t *testing.T) *httptest.Server {
	srv := httptest.NewServer(newTestRouter(t))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path string, body interface{}, out interface{}) int {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func createSession(t *testing.T, srv *httptest.Server) string {
	var sess models.Session
	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/api/v1/sessions", nil, &sess))
	require.NotEmpty(t, sess.ID)
	return sess.ID
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestProbes(t *testing.T) {
	srv := newTestServer(t)

	var body map[string]string
	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/health", nil, &body))
	assert.Equal(t, "healthy", body["status"])

	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/ready", nil, &body))
	assert.Equal(t, "ready", body["status"])
}

func TestSessionLifecycle(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv)

	var sess models.Session
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/api/v1/sessions/"+id, nil, &sess))
	assert.True(t, sess.IsOnline)
	assert.Equal(t, models.DefaultLocation, sess.CurrentLocation)
	require.Len(t, sess.Transcript, 1)

	assert.Equal(t, http.StatusNoContent, do(t, srv, http.MethodDelete, "/api/v1/sessions/"+id, nil, nil))

	var errBody errorBody
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/api/v1/sessions/"+id, nil, &errBody))
	assert.Equal(t, "SESSION_NOT_FOUND", errBody.Error.Code)
}

func TestChat(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv)

	var out struct {
		MatchedKeyword   string         `json:"matchedKeyword"`
		BotMessage       models.Message `json:"botMessage"`
		TranscriptLength int            `json:"transcriptLength"`
	}
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, "/api/v1/sessions/"+id+"/chat",
		map[string]string{"message": "¿Cuándo siembro maíz?"}, &out))
	assert.Equal(t, "maíz", out.MatchedKeyword)
	assert.Equal(t, 3, out.TranscriptLength)

	var transcript struct {
		Messages []models.Message `json:"messages"`
	}
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/api/v1/sessions/"+id+"/chat", nil, &transcript))
	require.Len(t, transcript.Messages, 3)
	assert.Equal(t, "¿Cuándo siembro maíz?", transcript.Messages[1].Content)

	var errBody errorBody
	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPost, "/api/v1/sessions/"+id+"/chat",
		map[string]string{"message": "   "}, &errBody))
	assert.Equal(t, "EMPTY_MESSAGE", errBody.Error.Code)

	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPost, "/api/v1/sessions/"+id+"/chat",
		`{"message":`, &errBody))
	assert.Equal(t, "INVALID_INPUT", errBody.Error.Code)
}

func TestChat_OfflineFallback(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv)

	var toggled struct {
		IsOnline bool   `json:"isOnline"`
		Label    string `json:"label"`
	}
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, "/api/v1/sessions/"+id+"/connectivity/toggle", nil, &toggled))
	assert.False(t, toggled.IsOnline)
	assert.Equal(t, "Offline", toggled.Label)

	var out struct {
		MatchedKeyword string         `json:"matchedKeyword"`
		BotMessage     models.Message `json:"botMessage"`
	}
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, "/api/v1/sessions/"+id+"/chat",
		map[string]string{"message": "hola"}, &out))
	assert.Empty(t, out.MatchedKeyword)
	assert.Contains(t, out.BotMessage.Content, "conocimiento local")
}

func TestVoiceAndSpeech(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv)

	var voice struct {
		VoiceEnabled bool              `json:"voiceEnabled"`
		Utterance    *models.Utterance `json:"utterance"`
	}
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, "/api/v1/sessions/"+id+"/voice/toggle", nil, &voice))
	assert.True(t, voice.VoiceEnabled)
	require.NotNil(t, voice.Utterance)
	assert.Equal(t, models.SpeechLang, voice.Utterance.Lang)

	var utterance models.Utterance
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, "/api/v1/speech", map[string]string{"text": "Hola"}, &utterance))
	assert.Equal(t, "Hola", utterance.Text)

	var errBody errorBody
	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPost, "/api/v1/speech", map[string]string{"text": ""}, &errBody))
	assert.Equal(t, "EMPTY_MESSAGE", errBody.Error.Code)
}

func TestSimulator(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv)

	var options map[string][]models.Option
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/api/v1/simulator/options", nil, &options))
	assert.NotEmpty(t, options["crops"])

	var out struct {
		Result models.SimulationResult `json:"result"`
	}
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, "/api/v1/sessions/"+id+"/simulations",
		map[string]interface{}{"crop": "maiz", "area": 2}, &out))
	assert.GreaterOrEqual(t, out.Result.Viability, 60)
	assert.LessOrEqual(t, out.Result.Viability, 100)

	var errBody errorBody
	assert.Equal(t, http.StatusUnprocessableEntity, do(t, srv, http.MethodPost, "/api/v1/sessions/"+id+"/simulations",
		map[string]interface{}{"crop": "maiz", "area": 0}, &errBody))
	assert.Equal(t, "SIMULATION_VALIDATION_FAILED", errBody.Error.Code)
}

func TestProducts(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv)

	var all struct {
		Products []models.Product `json:"products"`
		Total    int              `json:"total"`
	}
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/api/v1/products", nil, &all))
	assert.Equal(t, 6, all.Total)

	var seeds struct {
		Products []models.Product `json:"products"`
	}
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/api/v1/products?category=seed", nil, &seeds))
	for _, p := range seeds.Products {
		assert.Equal(t, "seed", p.Category)
	}

	var errBody errorBody
	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodGet, "/api/v1/products?category=drones", nil, &errBody))
	assert.Equal(t, "INVALID_FILTER_FORMAT", errBody.Error.Code)

	var toggled struct {
		Selected  bool `json:"selected"`
		Selection struct {
			Count int `json:"count"`
		} `json:"selection"`
	}
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, "/api/v1/sessions/"+id+"/products/1/toggle", nil, &toggled))
	assert.True(t, toggled.Selected)
	assert.Equal(t, 1, toggled.Selection.Count)

	var selection struct {
		Products []models.Product `json:"products"`
		Count    int              `json:"count"`
	}
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/api/v1/sessions/"+id+"/products/selected", nil, &selection))
	assert.Equal(t, 1, selection.Count)
	require.Len(t, selection.Products, 1)
	assert.Equal(t, "1", selection.Products[0].ID)

	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodPost, "/api/v1/sessions/"+id+"/products/99/toggle", nil, &errBody))
	assert.Equal(t, "PRODUCT_NOT_FOUND", errBody.Error.Code)
}

func TestLocation(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv)
	path := "/api/v1/sessions/" + id + "/location"

	var errBody errorBody
	assert.Equal(t, http.StatusForbidden, do(t, srv, http.MethodPost, path,
		map[string]interface{}{"mode": "device", "permission": "denied"}, &errBody))
	assert.Equal(t, "GEOLOCATION_DENIED", errBody.Error.Code)

	assert.Equal(t, http.StatusNotImplemented, do(t, srv, http.MethodPost, path,
		map[string]interface{}{"mode": "device", "permission": "unsupported"}, &errBody))
	assert.Equal(t, "GEOLOCATION_UNSUPPORTED", errBody.Error.Code)

	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPost, path,
		map[string]interface{}{"mode": "search", "query": "  "}, &errBody))
	assert.Equal(t, "EMPTY_LOCATION_QUERY", errBody.Error.Code)

	var out struct {
		Location        models.LocationData `json:"location"`
		CurrentLocation string              `json:"currentLocation"`
	}
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, path, map[string]interface{}{
		"mode":        "device",
		"permission":  "granted",
		"coordinates": map[string]float64{"lat": 4.711, "lng": -74.0721},
	}, &out))
	assert.Equal(t, "4.7110, -74.0721", out.CurrentLocation)

	var dash struct {
		Header struct {
			App             string `json:"app"`
			CurrentLocation string `json:"currentLocation"`
		} `json:"header"`
	}
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/api/v1/sessions/"+id+"/dashboard", nil, &dash))
	assert.Equal(t, "Agro+", dash.Header.App)
	assert.Equal(t, "4.7110, -74.0721", dash.Header.CurrentLocation)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	do(t, srv, http.MethodGet, "/health", nil, &map[string]string{})

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	buf := new(bytes.Buffer)
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `agro_http_requests_total{method="GET",route="/health",status="200"}`)
}

func TestPanicIsRecoveredAndCounted(t *testing.T) {
	r := newTestRouter(t)
	r.HandleFunc("/boom", func(http.ResponseWriter, *http.Request) {
		panic("handler exploded")
	}).Methods(http.MethodGet)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	var body map[string]map[string]interface{}
	assert.Equal(t, http.StatusInternalServerError, do(t, srv, http.MethodGet, "/boom", nil, &body))
	assert.Equal(t, "INTERNAL_ERROR", body["error"]["code"])

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	buf := new(bytes.Buffer)
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `agro_http_requests_total{method="GET",route="/boom",status="500"}`)
}
