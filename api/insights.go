package api

import (
	"net/http"
	"strings"

	"github.com/veyra/skillmap/ai"
)

type roleRequest struct {
	TargetRole string `json:"target_role"`
}

type missingSkillResponse struct {
	Name       string `json:"name"`
	Cluster    string `json:"cluster"`
	Priority   string `json:"priority"`
	Suggestion string `json:"suggestion"`
}

type gapResponse struct {
	TargetRole     string                 `json:"target_role"`
	MatchScore     int                    `json:"match_score"`
	MatchingSkills []string               `json:"matching_skills"`
	MissingSkills  []missingSkillResponse `json:"missing_skills"`
	Summary        string                 `json:"summary,omitempty"`
}

type suggestionResponse struct {
	SkillName string `json:"skill_name"`
	Original  string `json:"original"`
	Rewrite   string `json:"rewrite"`
	Rationale string `json:"rationale,omitempty"`
}

func (s *Server) handleGap(w http.ResponseWriter, r *http.Request) {
	profileID := r.PathValue("id")
	if _, err := s.deps.Profiles().GetProfile(r.Context(), profileID); err != nil {
		s.writeServiceError(w, err)
		return
	}

	var req roleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.TargetRole) == "" {
		writeError(w, http.StatusBadRequest, "missing_target_role", ErrMissingTargetRole)
		return
	}

	report, err := s.deps.GapAnalysis().Analyze(r.Context(), profileID, req.TargetRole)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGapResponse(report))
}

func toGapResponse(report *ai.GapReport) gapResponse {
	resp := gapResponse{
		TargetRole:     report.TargetRole,
		MatchScore:     report.MatchScore,
		MatchingSkills: report.MatchingSkills,
		MissingSkills:  make([]missingSkillResponse, 0, len(report.MissingSkills)),
		Summary:        report.Summary,
	}
	for _, missing := range report.MissingSkills {
		resp.MissingSkills = append(resp.MissingSkills, missingSkillResponse{
			Name:       missing.Name,
			Cluster:    missing.Cluster,
			Priority:   missing.Priority,
			Suggestion: missing.Suggestion,
		})
	}
	return resp
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	profileID := r.PathValue("id")
	if _, err := s.deps.Profiles().GetProfile(r.Context(), profileID); err != nil {
		s.writeServiceError(w, err)
		return
	}

	var req roleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.TargetRole) == "" {
		writeError(w, http.StatusBadRequest, "missing_target_role", ErrMissingTargetRole)
		return
	}

	suggestions, err := s.deps.Suggestions().Rewrites(r.Context(), profileID, req.TargetRole)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	out := make([]suggestionResponse, 0, len(suggestions))
	for _, suggestion := range suggestions {
		out = append(out, suggestionResponse{
			SkillName: suggestion.SkillName,
			Original:  suggestion.Original,
			Rewrite:   suggestion.Rewrite,
			Rationale: suggestion.Rationale,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"suggestions": out})
}
