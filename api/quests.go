package api

import (
	"net/http"
	"strconv"

	"github.com/veyra/skillmap/core"
)

type questResponse struct {
	ID          string `json:"id"`
	SkillName   string `json:"skill_name"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	XP          int    `json:"xp"`
	Done        bool   `json:"done"`
}

func toQuestResponse(q *core.Quest) questResponse {
	return questResponse{
		ID:          strconv.FormatUint(uint64(q.Id), 10),
		SkillName:   q.SkillName,
		Title:       q.Title,
		Description: q.Description,
		XP:          q.XP,
		Done:        q.Done,
	}
}

func (s *Server) handleListQuests(w http.ResponseWriter, r *http.Request) {
	profileID := r.PathValue("id")
	if _, err := s.deps.Profiles().GetProfile(r.Context(), profileID); err != nil {
		s.writeServiceError(w, err)
		return
	}

	quests, err := s.deps.Quests().List(r.Context(), profileID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	out := make([]questResponse, 0, len(quests))
	for _, q := range quests {
		out = append(out, toQuestResponse(q))
	}
	writeJSON(w, http.StatusOK, map[string]any{"quests": out})
}

func (s *Server) handleCompleteQuest(w http.ResponseWriter, r *http.Request) {
	profileID := r.PathValue("id")

	questID, err := strconv.ParseUint(r.PathValue("qid"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_quest_id", err)
		return
	}

	quest, err := s.deps.Quests().Complete(r.Context(), profileID, core.ID(questID))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toQuestResponse(quest))
}
