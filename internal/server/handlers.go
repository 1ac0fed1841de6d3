package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/dkoosis/trendline/internal/logging"
	"github.com/dkoosis/trendline/internal/version"
	"github.com/dkoosis/trendline/pkg/pattern"
	"github.com/dkoosis/trendline/pkg/render"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	patterns, ok := s.load(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := render.NewHTML().Write(&buf, patterns); err != nil {
		s.serverError(w, r, err)
		return
	}
	s.writeBody(w, r, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) handleImage(format, contentType string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		patterns, ok := s.load(w, r)
		if !ok {
			return
		}
		spec, err := render.ChartOf(patterns)
		if err != nil {
			s.serverError(w, r, err)
			return
		}
		var buf bytes.Buffer
		if err := render.WriteImage(&buf, spec, format); err != nil {
			s.serverError(w, r, err)
			return
		}
		s.writeBody(w, r, contentType, buf.Bytes())
	}
}

func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	patterns, ok := s.load(w, r)
	if !ok {
		return
	}
	out := (&render.JSON{Compact: true}).Render(patterns)
	s.writeBody(w, r, "application/json", []byte(out))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Version,
	})
}

// load parses the query and builds the patterns, answering with a 400 when
// the query is invalid.
func (s *Server) load(w http.ResponseWriter, r *http.Request) ([]pattern.Pattern, bool) {
	req, err := parseRequest(r.URL.Query(), s.defaults)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_parameter", err.Error())
		return nil, false
	}
	return s.patterns(req), true
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(logging.FromContext(r.Context()), "request failed", err, slog.String("path", r.URL.Path))
	msg := "internal server error"
	if errors.Is(err, render.ErrNoChart) {
		msg = err.Error()
	}
	s.writeError(w, http.StatusInternalServerError, "internal", msg)
}

func (s *Server) writeBody(w http.ResponseWriter, r *http.Request, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to write response", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}
