package api

import "net/http"

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	slug, err := s.deps.Sharing().Publish(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"slug": slug,
		"url":  "/v1/public/" + slug,
	})
}

func (s *Server) handleUnpublish(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Sharing().Unpublish(r.Context(), r.PathValue("id")); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePublicView(w http.ResponseWriter, r *http.Request) {
	profile, err := s.deps.Sharing().View(r.Context(), r.PathValue("slug"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
