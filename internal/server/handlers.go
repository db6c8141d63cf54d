package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/godraft/internal/export"
	"github.com/hyperifyio/godraft/internal/prompt"
	"github.com/hyperifyio/godraft/internal/store"
)

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")
	if !store.ValidCategory(category) {
		writeError(w, http.StatusBadRequest, "invalid category")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file part")
		return
	}
	defer file.Close()
	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, "no selected file")
		return
	}

	session := s.session(w, r)
	name, err := s.store.Save(session, category, header.Filename, file)
	if err != nil {
		writeError(w, storeErrorStatus(err), err.Error())
		return
	}
	log.Info().Str("session", session).Str("category", category).Str("file", name).Msg("stored upload")
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"filename": name,
		"category": category,
	})
}

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")
	if !store.ValidCategory(category) {
		writeError(w, http.StatusBadRequest, "invalid category")
		return
	}
	files, err := s.store.List(s.session(w, r), category)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if files == nil {
		files = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"files": files})
}

func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")
	if !store.ValidCategory(category) {
		writeError(w, http.StatusBadRequest, "invalid category")
		return
	}
	err := s.store.Delete(s.session(w, r), category, r.PathValue("filename"))
	if err != nil {
		writeError(w, storeErrorStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func storeErrorStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrInvalidCategory),
		errors.Is(err, store.ErrBadFilename),
		errors.Is(err, store.ErrTypeNotAllowed),
		errors.Is(err, store.ErrCategoryFull):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "malformed form")
			return
		}
	}

	briefText := strings.TrimSpace(r.FormValue("brief"))
	if briefText == "" {
		writeError(w, http.StatusBadRequest, "brief is required")
		return
	}
	formatKey := strings.TrimSpace(r.FormValue("format"))
	if formatKey == "" {
		writeError(w, http.StatusBadRequest, "format is required")
		return
	}
	spec := s.catalog.Resolve(formatKey, r.FormValue("custom_word_count"))

	meta := prompt.Metadata{
		Audience:       r.FormValue("audience"),
		Objective:      r.FormValue("objective"),
		KeyMessages:    r.FormValue("key_messages"),
		Constraints:    r.FormValue("constraints"),
		ToneFormality:  r.FormValue("tone_formality"),
		ToneConfidence: r.FormValue("tone_confidence"),
		Region:         r.FormValue("region"),
		Industry:       r.FormValue("industry"),
		Persona:        r.FormValue("persona"),
	}

	session := s.session(w, r)
	pools, err := s.loadPools(session, r.FormValue("materials"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	promptText := prompt.Optimize(prompt.Input{
		Brief:   briefText,
		Format:  spec,
		Meta:    meta,
		Pools:   pools,
		Ceiling: s.ceiling,
	})

	content, err := s.gen.Generate(r.Context(), promptText)
	if err != nil {
		log.Error().Err(err).Str("session", session).Msg("generation failed")
		writeError(w, http.StatusBadGateway, "error generating content: "+err.Error())
		return
	}

	s.setResult(session, content)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "content": content})
}

// loadPools gathers reference pools for a generation: pasted materials win,
// otherwise the session's uploaded categories are extracted in fixed order.
func (s *Server) loadPools(session, pastedMaterials string) ([]prompt.Pool, error) {
	if strings.TrimSpace(pastedMaterials) != "" {
		return []prompt.Pool{{Name: prompt.PoolMaterials, Text: pastedMaterials}}, nil
	}
	var pools []prompt.Pool
	for _, category := range store.Categories {
		text, err := s.store.ExtractCategory(session, category, s.maxCharsPerCategory)
		if err != nil {
			return nil, err
		}
		pools = append(pools, prompt.Pool{Name: category, Text: text})
	}
	return pools, nil
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	content, ok := s.result(s.session(w, r))
	if !ok {
		writeError(w, http.StatusNotFound, "no generated document for this session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"content": content})
}

func (s *Server) handleDownloadDOCX(w http.ResponseWriter, r *http.Request) {
	content, ok := s.result(s.session(w, r))
	if !ok {
		writeError(w, http.StatusNotFound, "no generated document for this session")
		return
	}
	data, err := export.DOCX(content)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "error creating document file")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", `attachment; filename="document.docx"`)
	w.Write(data)
}

func (s *Server) handleDownloadPDF(w http.ResponseWriter, r *http.Request) {
	content, ok := s.result(s.session(w, r))
	if !ok {
		writeError(w, http.StatusNotFound, "no generated document for this session")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="document.pdf"`)
	if err := export.PDF(content, w); err != nil {
		log.Error().Err(err).Msg("pdf rendering failed")
	}
}

func (s *Server) handleEmail(w http.ResponseWriter, r *http.Request) {
	if !s.mailer.Enabled() {
		writeError(w, http.StatusServiceUnavailable, "email delivery is not configured")
		return
	}
	content, ok := s.result(s.session(w, r))
	if !ok {
		writeError(w, http.StatusNotFound, "no generated document for this session")
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "malformed form")
		return
	}
	to := r.FormValue("to")
	subject := r.FormValue("subject")
	if subject == "" {
		subject = "Your generated document"
	}
	if err := s.mailer.Send(to, subject, content); err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleFormats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"formats": s.catalog.Keys()})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	stats, err := s.store.UsageStats()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
