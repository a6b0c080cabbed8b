package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"faq/internal/adapter/analyzer"
	"faq/internal/domain"
	"faq/internal/logging"
	"faq/internal/usecase"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	engine := usecase.NewEngine(analyzer.NewBigramTokenizer(), usecase.WithLogger(logging.Discard()))
	return NewServer(engine, Config{
		AllowedOrigins: []string{"*"},
		MaxUploadBytes: 1 << 20,
		TopK:           2,
		Threshold:      0.3,
	})
}

func do(t *testing.T, srv *Server, method, target, contentType string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	rec := do(t, srv, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("unexpected health response: %d %q", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Session-ID") == "" {
		t.Error("expected session header")
	}
}

func TestAsk(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/ask", "application/json", []byte(`{"question":"營業時間"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var answer domain.Answer
	if err := json.Unmarshal(rec.Body.Bytes(), &answer); err != nil {
		t.Fatal(err)
	}
	if len(answer.Candidates) != 2 || answer.Candidates[0].RowIndex != 0 {
		t.Errorf("unexpected candidates: %+v", answer.Candidates)
	}
	if answer.BestAnswer == nil || answer.TopK != 2 || answer.Threshold != 0.3 {
		t.Errorf("expected defaults and a best answer, got %+v", answer)
	}

	rec = do(t, srv, http.MethodPost, "/api/ask", "application/json", []byte(`{"question":"營業時間","top_k":1,"threshold":1}`))
	if err := json.Unmarshal(rec.Body.Bytes(), &answer); err != nil {
		t.Fatal(err)
	}
	if len(answer.Candidates) != 1 || answer.BestAnswer != nil {
		t.Errorf("expected one candidate and no best answer, got %+v", answer)
	}
	if !strings.Contains(rec.Body.String(), `"best_answer":null`) {
		t.Errorf("expected explicit null best answer, got %s", rec.Body.String())
	}
}

func TestAsk_Errors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{"question":`, http.StatusBadRequest},
		{"empty question", `{"question":"  "}`, http.StatusBadRequest},
		{"zero top_k", `{"question":"發票","top_k":0}`, http.StatusBadRequest},
		{"threshold out of range", `{"question":"發票","threshold":2}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodPost, "/api/ask", "application/json", []byte(tt.body))
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), `"error"`) {
				t.Errorf("expected error payload, got %s", rec.Body.String())
			}
		})
	}
}

func TestUpload_RawCSV(t *testing.T) {
	srv := newTestServer(t)

	body := []byte("question,answer\n會員如何升級？,消費滿額自動升級\n缺答案,\n")
	rec := do(t, srv, http.MethodPost, "/api/kb?index=true", "text/csv", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp uploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Report.Kept != 1 || resp.Report.Dropped != 1 {
		t.Errorf("unexpected report: %+v", resp.Report)
	}
	if !resp.Stats.Indexed || resp.Stats.Rows != 1 {
		t.Errorf("expected indexed single row, got %+v", resp.Stats)
	}

	rec = do(t, srv, http.MethodGet, "/api/kb", "", nil)
	var kb knowledgeBaseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &kb); err != nil {
		t.Fatal(err)
	}
	if len(kb.Rows) != 1 || kb.Rows[0].Answer != "消費滿額自動升級" {
		t.Errorf("unexpected rows: %+v", kb.Rows)
	}
}

func TestUpload_Multipart(t *testing.T) {
	srv := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "faq.yaml")
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("- question: 可以貨到付款嗎？\n  answer: 目前僅支援信用卡\n"))
	mw.Close()

	rec := do(t, srv, http.MethodPost, "/api/kb", mw.FormDataContentType(), buf.Bytes())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp uploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Report.Source != "faq.yaml" || resp.Stats.Indexed {
		t.Errorf("expected stale index after upload without rebuild, got %+v", resp)
	}
}

func TestUpload_ParseErrorKeepsKnowledgeBase(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/kb", "text/csv", []byte("title,body\n甲,乙\n"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, srv, http.MethodGet, "/api/status", "", nil)
	var resp statusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Stats.Rows != len(domain.DefaultKnowledgeBase()) || resp.Stats.KBVersion != 1 {
		t.Errorf("expected seed knowledge base to remain, got %+v", resp.Stats)
	}
	if !strings.Contains(rec.Body.String(), `"status":"error"`) {
		t.Errorf("expected error status, got %s", rec.Body.String())
	}
}

func TestUpload_TooLarge(t *testing.T) {
	engine := usecase.NewEngine(analyzer.NewBigramTokenizer(), usecase.WithLogger(logging.Discard()))
	srv := NewServer(engine, Config{MaxUploadBytes: 16})

	rec := do(t, srv, http.MethodPost, "/api/kb", "text/csv", []byte("question,answer\n會員如何升級？,消費滿額自動升級\n"))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestIndex_EmptyKnowledgeBase(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/kb", "text/csv", []byte("question,answer\n"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, srv, http.MethodPost, "/api/index", "", nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, srv, http.MethodPost, "/api/ask", "application/json", []byte(`{"question":"發票"}`))
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 from ask, got %d", rec.Code)
	}
}

func TestIndex(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/index", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp indexResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Rows != 4 || resp.VocabularySize == 0 || !resp.Stats.Indexed {
		t.Errorf("unexpected index response: %+v", resp)
	}
}

func TestCORS(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/ask", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Errorf("expected CORS headers, got %v", rec.Header())
	}
}
