package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"faq/internal/adapter/kbsource"
	"faq/internal/domain"
)

type statusResponse struct {
	Status domain.StatusEvent `json:"status"`
	Stats  domain.Stats       `json:"stats"`
}

type knowledgeBaseResponse struct {
	Rows  domain.KnowledgeBase `json:"rows"`
	Stats domain.Stats         `json:"stats"`
}

type uploadResponse struct {
	Report domain.LoadReport `json:"report"`
	Stats  domain.Stats      `json:"stats"`
}

type indexResponse struct {
	Rows           int          `json:"rows"`
	VocabularySize int          `json:"vocabulary_size"`
	DurationMS     int64        `json:"duration_ms"`
	Stats          domain.Stats `json:"stats"`
}

type askRequest struct {
	Question  string   `json:"question"`
	TopK      *int     `json:"top_k,omitempty"`
	Threshold *float64 `json:"threshold,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := statusResponse{Status: s.engine.Status(), Stats: s.engine.Stats()}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleKnowledgeBase(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := knowledgeBaseResponse{Rows: s.engine.KnowledgeBase(), Stats: s.engine.Stats()}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

// handleUpload replaces the knowledge base with a CSV, TSV or YAML
// document sent either as a multipart "file" field or as the raw body.
// With ?index=true the index is rebuilt right away.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	name, data, err := s.readUpload(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Errorf("upload exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rebuild, _ := strconv.ParseBool(r.URL.Query().Get("index"))

	s.mu.Lock()
	defer s.mu.Unlock()

	report, err := s.engine.LoadFrom(kbsource.FromBytes(name, data, s.cfg.Delimiter))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	if rebuild {
		if err := s.engine.RebuildIndex(); err != nil {
			writeError(w, statusFor(err), err)
			return
		}
	}

	writeJSON(w, http.StatusOK, uploadResponse{Report: report, Stats: s.engine.Stats()})
}

func (s *Server) readUpload(r *http.Request) (string, []byte, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if strings.HasPrefix(mediaType, "multipart/") {
		if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
			return "", nil, fmt.Errorf("failed to parse upload form: %w", err)
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile("file")
		if err != nil {
			return "", nil, fmt.Errorf("file field required: %w", err)
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return "", nil, err
		}
		return header.Filename, data, nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return "", nil, err
	}

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		switch {
		case strings.Contains(mediaType, "yaml"):
			name = "upload.yaml"
		case mediaType == "text/tab-separated-values":
			name = "upload.tsv"
		default:
			name = "upload.csv"
		}
	}
	return name, data, nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.engine.RebuildIndexResult()
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, indexResponse{
		Rows:           result.Rows,
		VocabularySize: result.VocabularySize,
		DurationMS:     result.Duration.Milliseconds(),
		Stats:          s.engine.Stats(),
	})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	topK := s.cfg.TopK
	if req.TopK != nil {
		topK = *req.TopK
	}
	threshold := s.cfg.Threshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}

	s.mu.Lock()
	answer, err := s.engine.Ask(req.Question, topK, threshold)
	s.mu.Unlock()
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, answer)
}
