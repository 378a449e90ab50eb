package api

import (
	"net/http"

	"github.com/veyra/skillmap/extraction"
)

type extractionRequest struct {
	Text     string `json:"text"`
	Document *struct {
		Name string `json:"name"`
		// Content is base64-encoded in JSON, per encoding/json []byte rules.
		Content []byte `json:"content"`
	} `json:"document"`
	GitHub *struct {
		Username string `json:"username"`
		Token    string `json:"token"`
	} `json:"github"`
}

type sourceStatusResponse struct {
	State string `json:"state"`
	Count int    `json:"count"`
	Error string `json:"error,omitempty"`
}

type runResponse struct {
	RunID   string                          `json:"run_id"`
	State   string                          `json:"state"`
	Sources map[string]sourceStatusResponse `json:"sources"`
	Summary string                          `json:"summary,omitempty"`
	Total   int                             `json:"total"`
	Error   string                          `json:"error,omitempty"`
}

func toRunResponse(run *extraction.Run) runResponse {
	resp := runResponse{
		RunID:   run.ID,
		State:   run.State.String(),
		Sources: make(map[string]sourceStatusResponse, len(run.Sources)),
		Summary: run.Summary,
		Total:   run.Total,
		Error:   run.Err,
	}
	for label, status := range run.Sources {
		resp.Sources[label] = sourceStatusResponse{
			State: status.State.String(),
			Count: status.Count,
			Error: status.Err,
		}
	}
	return resp
}

func (s *Server) handleSubmitExtraction(w http.ResponseWriter, r *http.Request) {
	profileID := r.PathValue("id")
	if _, err := s.deps.Profiles().GetProfile(r.Context(), profileID); err != nil {
		s.writeServiceError(w, err)
		return
	}

	var req extractionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	extractReq := extraction.Request{Text: req.Text}
	if req.Document != nil {
		if len(req.Document.Content) > s.maxDocumentBytes {
			writeError(w, http.StatusRequestEntityTooLarge, "document_too_large", ErrDocumentTooLarge)
			return
		}
		extractReq.Document = &extraction.DocumentInput{
			Name: req.Document.Name,
			Data: req.Document.Content,
		}
	}
	if req.GitHub != nil {
		extractReq.GitHub = &extraction.GitHubInput{
			Username: req.GitHub.Username,
			Token:    req.GitHub.Token,
		}
	}

	runID, err := s.deps.Extractions().Submit(r.Context(), profileID, extractReq)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"run_id": runID})
}

func (s *Server) handleGetExtraction(w http.ResponseWriter, r *http.Request) {
	run, err := s.deps.Extractions().Run(r.PathValue("run_id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRunResponse(run))
}
