package api

import (
	"net/http"
)

func NewRouter(h *APIHandler) http.Handler {

	mux := http.NewServeMux()

	mux.HandleFunc("POST /jobs/{jobId}/resumes", h.HandleIngestResumes)

	mux.HandleFunc("GET /jobs/{jobId}/progress", h.HandleProgress)

	mux.HandleFunc("GET /jobs/{jobId}/candidates", h.HandleListCandidates)

	return mux
}
