// Package server exposes the document-generation assistant over HTTP:
// reference-material uploads, prompt-driven generation, and retrieval of the
// generated document as text, DOCX, PDF, or email.
package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/godraft/internal/format"
	"github.com/hyperifyio/godraft/internal/llm"
	"github.com/hyperifyio/godraft/internal/mail"
	"github.com/hyperifyio/godraft/internal/store"
)

// maxUploadBytes caps a single upload request body.
const maxUploadBytes = 10 << 20

// Server holds the collaborators and the per-session generation results.
type Server struct {
	store   *store.Store
	catalog *format.Catalog
	gen     *llm.Generator
	mailer  *mail.Sender
	// ceiling is the total prompt token budget per request.
	ceiling             int
	maxCharsPerCategory int

	mu      sync.Mutex
	results map[string]string
}

// New assembles the server from its collaborators.
func New(st *store.Store, catalog *format.Catalog, gen *llm.Generator, mailer *mail.Sender, ceiling, maxCharsPerCategory int) *Server {
	return &Server{
		store:               st,
		catalog:             catalog,
		gen:                 gen,
		mailer:              mailer,
		ceiling:             ceiling,
		maxCharsPerCategory: maxCharsPerCategory,
		results:             make(map[string]string),
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /upload/{category}", s.handleUpload)
	mux.HandleFunc("GET /files/{category}", s.handleListFiles)
	mux.HandleFunc("DELETE /files/{category}/{filename}", s.handleDeleteFile)
	mux.HandleFunc("POST /generate", s.handleGenerate)
	mux.HandleFunc("GET /result", s.handleResult)
	mux.HandleFunc("GET /download/docx", s.handleDownloadDOCX)
	mux.HandleFunc("GET /download/pdf", s.handleDownloadPDF)
	mux.HandleFunc("POST /email", s.handleEmail)
	mux.HandleFunc("GET /formats", s.handleFormats)
	mux.HandleFunc("GET /stats", s.handleStats)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

func (s *Server) setResult(session, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[session] = content
}

func (s *Server) result(session string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.results[session]
	return content, ok
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
