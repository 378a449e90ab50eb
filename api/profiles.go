package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/veyra/skillmap/core"
)

type createProfileRequest struct {
	DisplayName string `json:"display_name"`
	Headline    string `json:"headline"`
}

type profileResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Headline    string `json:"headline,omitempty"`
	Shared      bool   `json:"shared"`
	ShareSlug   string `json:"share_slug,omitempty"`
}

func toProfileResponse(p *core.Profile) profileResponse {
	return profileResponse{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		Headline:    p.Headline,
		Shared:      p.Shared,
		ShareSlug:   p.ShareSlug,
	}
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.DisplayName) == "" {
		writeError(w, http.StatusBadRequest, "missing_display_name", ErrMissingDisplayName)
		return
	}

	profile := &core.Profile{
		ID:          uuid.NewString(),
		DisplayName: strings.TrimSpace(req.DisplayName),
		Headline:    strings.TrimSpace(req.Headline),
	}
	created, err := s.deps.Profiles().AddProfile(r.Context(), profile)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProfileResponse(created))
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.deps.Profiles().GetProfile(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(profile))
}
