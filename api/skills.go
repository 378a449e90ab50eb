package api

import (
	"net/http"
	"strconv"

	"github.com/veyra/skillmap/core"
	"github.com/veyra/skillmap/search"
)

type skillResponse struct {
	ID              string   `json:"id"`
	SkillName       string   `json:"skill_name"`
	SkillType       string   `json:"skill_type"`
	ConfidenceScore float64  `json:"confidence_score"`
	Evidence        []string `json:"evidence"`
	Cluster         string   `json:"cluster"`
	Microstory      string   `json:"microstory,omitempty"`
	State           string   `json:"state"`
	Source          string   `json:"source,omitempty"`
}

func toSkillResponse(skill *core.Skill) skillResponse {
	return skillResponse{
		ID:              strconv.FormatUint(uint64(skill.Id), 10),
		SkillName:       skill.Name,
		SkillType:       skill.Kind.String(),
		ConfidenceScore: skill.Confidence,
		Evidence:        skill.Evidence,
		Cluster:         skill.Cluster,
		Microstory:      skill.Narrative,
		State:           skill.Unlock.String(),
		Source:          skill.Source,
	}
}

// handleListSkills serves GET /v1/profiles/{id}/skills?q=&cluster=&state=.
func (s *Server) handleListSkills(w http.ResponseWriter, r *http.Request) {
	profileID := r.PathValue("id")
	if _, err := s.deps.Profiles().GetProfile(r.Context(), profileID); err != nil {
		s.writeServiceError(w, err)
		return
	}

	skills, err := s.deps.Skills().ListSkills(r.Context(), profileID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	query := search.Query{
		Text:    r.URL.Query().Get("q"),
		Cluster: r.URL.Query().Get("cluster"),
		State:   r.URL.Query().Get("state"),
	}
	filtered := search.Filter(skills, query)

	out := make([]skillResponse, 0, len(filtered))
	for _, skill := range filtered {
		out = append(out, toSkillResponse(skill))
	}
	writeJSON(w, http.StatusOK, map[string]any{"skills": out, "total": len(out)})
}
