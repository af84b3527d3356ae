package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	apperrors "agro-advisor/internal/common/errors"
)

type errorResponse struct {
	Error *apperrors.StandardError `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Warn("failed to encode response", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	stdErr := apperrors.FromError(err)
	status := apperrors.HTTPStatus(stdErr.Code)

	fields := map[string]interface{}{
		"path":      r.URL.Path,
		"errorCode": string(stdErr.Code),
		"status":    status,
	}
	if status >= http.StatusInternalServerError {
		fields["error"] = err.Error()
		s.log.Error("request failed", fields)
	} else {
		s.log.Debug("request rejected", fields)
	}

	s.writeJSON(w, status, errorResponse{Error: stdErr})
}

// decode reads a JSON body into dst. An empty body leaves dst untouched.
func decode(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return apperrors.NewInvalidInputError(fmt.Sprintf("invalid JSON body: %v", err))
}
