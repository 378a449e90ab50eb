// Copyright 2025 Veyra Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/veyra/skillmap/extraction"
	"github.com/veyra/skillmap/insight"
	"github.com/veyra/skillmap/quest"
	"github.com/veyra/skillmap/share"
	"github.com/veyra/skillmap/storage"
)

// Dependencies bundles everything the handler layer needs. Using an
// interface keeps the handlers loosely coupled to the wiring in the root
// package.
type Dependencies interface {
	Profiles() storage.ProfileRepository
	Skills() storage.SkillRepository
	Extractions() *extraction.Service
	Quests() *quest.Service
	GapAnalysis() *insight.GapService
	Suggestions() *insight.SuggestService
	Sharing() *share.Service
}

// Server wires the HTTP routes for the business API.
type Server struct {
	deps             Dependencies
	maxDocumentBytes int
	logger           *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithMaxDocumentBytes caps the accepted document upload size.
// Default is 1 MiB.
func WithMaxDocumentBytes(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxDocumentBytes = n
		}
	}
}

// NewServer creates an API server over the given dependencies.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		deps:             deps,
		maxDocumentBytes: 1 << 20,
		logger:           slog.Default().With("component", "api"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/profiles", s.instrument("create_profile", s.handleCreateProfile))
	mux.HandleFunc("GET /v1/profiles/{id}", s.instrument("get_profile", s.handleGetProfile))

	mux.HandleFunc("POST /v1/profiles/{id}/extractions", s.instrument("submit_extraction", s.handleSubmitExtraction))
	mux.HandleFunc("GET /v1/extractions/{run_id}", s.instrument("get_extraction", s.handleGetExtraction))

	mux.HandleFunc("GET /v1/profiles/{id}/skills", s.instrument("list_skills", s.handleListSkills))

	mux.HandleFunc("POST /v1/profiles/{id}/gap", s.instrument("gap", s.handleGap))
	mux.HandleFunc("POST /v1/profiles/{id}/suggestions", s.instrument("suggestions", s.handleSuggestions))

	mux.HandleFunc("GET /v1/profiles/{id}/quests", s.instrument("list_quests", s.handleListQuests))
	mux.HandleFunc("POST /v1/profiles/{id}/quests/{qid}/complete", s.instrument("complete_quest", s.handleCompleteQuest))

	mux.HandleFunc("POST /v1/profiles/{id}/share", s.instrument("publish", s.handlePublish))
	mux.HandleFunc("DELETE /v1/profiles/{id}/share", s.instrument("unpublish", s.handleUnpublish))
	mux.HandleFunc("GET /v1/public/{slug}", s.instrument("public_view", s.handlePublicView))

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// decodeBody unmarshals a JSON request body, rejecting unknown garbage with
// a uniform 400. Returns false when a response has already been written.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", ErrInvalidBody)
		return false
	}
	return true
}

// writeServiceError maps domain errors onto HTTP status codes; anything
// unmapped is a 500.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, share.ErrNotShared):
		writeError(w, http.StatusNotFound, "not_shared", err)
	case errors.Is(err, extraction.ErrNoSources):
		writeError(w, http.StatusBadRequest, "no_sources", err)
	case errors.Is(err, extraction.ErrRunNotFound):
		writeError(w, http.StatusNotFound, "run_not_found", err)
	case errors.Is(err, quest.ErrQuestDone):
		writeError(w, http.StatusConflict, "quest_done", err)
	case errors.Is(err, insight.ErrEmptyRole):
		writeError(w, http.StatusBadRequest, "empty_role", err)
	case errors.Is(err, insight.ErrNoSkills):
		writeError(w, http.StatusBadRequest, "no_skills", err)
	default:
		s.logger.Error("request failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}
