package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	apperrors "agro-advisor/internal/common/errors"
	"agro-advisor/internal/models"
	chatreply "agro-advisor/internal/workers/advisory/chat-reply"
	simulatecrop "agro-advisor/internal/workers/advisory/simulate-crop"
	searchproducts "agro-advisor/internal/workers/catalog/search-products"
	toggleproductselection "agro-advisor/internal/workers/catalog/toggle-product-selection"
	builddashboard "agro-advisor/internal/workers/dashboard/build-dashboard"
	lookuplocation "agro-advisor/internal/workers/location/lookup-location"
	toggleconnectivity "agro-advisor/internal/workers/preferences/toggle-connectivity"
	togglevoice "agro-advisor/internal/workers/preferences/toggle-voice"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Ready(r.Context()); err != nil {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready", "error": err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.app.Sessions.Create(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.app.Sessions.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sess)
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Sessions.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	out, err := s.app.Dashboard.Execute(r.Context(), &builddashboard.Input{SessionID: mux.Vars(r)["id"]})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) sendChat(w http.ResponseWriter, r *http.Request) {
	var input chatreply.Input
	if err := decode(r, &input); err != nil {
		s.writeError(w, r, err)
		return
	}
	input.SessionID = mux.Vars(r)["id"]
	input.IsOnline = nil

	out, err := s.app.Chat.Execute(r.Context(), &input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) transcript(w http.ResponseWriter, r *http.Request) {
	messages, err := s.app.Chat.Transcript(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}

type speechRequest struct {
	Text string `json:"text"`
}

func (s *Server) speech(w http.ResponseWriter, r *http.Request) {
	var req speechRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		s.writeError(w, r, apperrors.NewEmptyMessageError())
		return
	}
	s.writeJSON(w, http.StatusOK, chatreply.Speak(req.Text))
}

func (s *Server) simulatorOptions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, simulatecrop.GetOptions())
}

func (s *Server) simulate(w http.ResponseWriter, r *http.Request) {
	var req models.SimulationRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	out, err := s.app.Simulator.Execute(r.Context(), &simulatecrop.Input{
		SessionID:         mux.Vars(r)["id"],
		SimulationRequest: req,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) searchProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := s.app.Search.Execute(r.Context(), &searchproducts.Input{
		Search:   q.Get("search"),
		Category: q.Get("category"),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) toggleProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	out, err := s.app.Selection.Execute(r.Context(), &toggleproductselection.Input{
		SessionID: vars["id"],
		ProductID: vars["productId"],
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) selectedProducts(w http.ResponseWriter, r *http.Request) {
	out, err := s.app.Selection.Selected(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) lookupLocation(w http.ResponseWriter, r *http.Request) {
	var input lookuplocation.Input
	if err := decode(r, &input); err != nil {
		s.writeError(w, r, err)
		return
	}
	input.SessionID = mux.Vars(r)["id"]

	out, err := s.app.Location.Execute(r.Context(), &input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) toggleVoice(w http.ResponseWriter, r *http.Request) {
	out, err := s.app.Voice.Execute(r.Context(), &togglevoice.Input{SessionID: mux.Vars(r)["id"]})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) toggleConnectivity(w http.ResponseWriter, r *http.Request) {
	out, err := s.app.Connectivity.Execute(r.Context(), &toggleconnectivity.Input{SessionID: mux.Vars(r)["id"]})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}
