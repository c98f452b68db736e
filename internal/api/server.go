package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Dadukaka/MFIPPA-Tracker/internal/extract"
	"github.com/Dadukaka/MFIPPA-Tracker/internal/ir"
	"github.com/Dadukaka/MFIPPA-Tracker/internal/reporting"
	"github.com/Dadukaka/MFIPPA-Tracker/internal/rules"
	"github.com/Dadukaka/MFIPPA-Tracker/internal/storage"
)

const defaultMaxUpload = 10 << 20

// UserStore is the auth/audit contract the API uses.
type UserStore interface {
	GetUserByUsername(string) (storage.User, string, error)
	CreateSession(int64, string, time.Time) error
	GetSession(string) (storage.User, error)
	DeleteSession(string) error
	LogAudit(username, action, resource string, meta map[string]any) error
}

type Server struct {
	Rules           *rules.Registry
	UserStore       UserStore // nil disables the auth routes
	Metrics         *Metrics
	Logger          *slog.Logger
	AllowedOrigins  []string
	SessionDuration time.Duration
	RequireAuth     bool
	MaxUploadBytes  int64
}

type analyzeReq struct {
	Text   string `json:"text"`
	Source string `json:"source,omitempty"`
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	if s.Metrics == nil {
		s.Metrics = NewMetrics()
	}

	// Health
	mux.HandleFunc("GET /api/v1/health", s.withCORS(s.handleHealth))

	// Rules inventory
	mux.HandleFunc("GET /api/v1/rules", s.withCORS(s.handleRules))

	// Analysis
	mux.HandleFunc("POST /api/v1/analyze", s.withCORS(s.guard(s.handleAnalyzeText)))
	mux.HandleFunc("POST /api/v1/analyze/file", s.withCORS(s.guard(s.handleAnalyzeFile)))

	// Auth
	if s.UserStore != nil {
		mux.HandleFunc("POST /api/v1/auth/login", s.withCORS(s.handleLogin))
		mux.HandleFunc("POST /api/v1/auth/logout", s.withCORS(withAuth(s, s.handleLogout)))
		mux.HandleFunc("GET /api/v1/me", s.withCORS(withAuth(s, s.handleMe)))
	}

	mux.Handle("GET /metrics", s.Metrics.Handler())

	// Fallback 404
	mux.HandleFunc("/", s.withCORS(func(w http.ResponseWriter, r *http.Request) {
		s.err(w, http.StatusNotFound, "not found")
	}))
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"rules":     s.Rules.Len(),
		"timestamp": time.Now().UTC(),
	})
}

// GET /api/v1/rules (no auth needed for read-only)
func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	type R struct {
		ID          string      `json:"id"`
		Name        string      `json:"name"`
		Citation    string      `json:"citation"`
		Severity    ir.Severity `json:"severity"`
		Description string      `json:"description"`
		Patterns    []string    `json:"patterns"`
	}
	out := []R{}
	for _, rr := range s.Rules.List() {
		out = append(out, R{
			ID: rr.ID, Name: rr.Name, Citation: rr.Citation,
			Severity: rr.Severity, Description: rr.Description, Patterns: rr.Patterns,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": out, "count": len(out), "max_snippets": s.Rules.MaxSnippets(),
	})
}

// POST /api/v1/analyze
func (s *Server) handleAnalyzeText(w http.ResponseWriter, r *http.Request) {
	var in analyzeReq
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxUpload()))
	if err := dec.Decode(&in); err != nil {
		if tooLarge(err) {
			s.err(w, http.StatusRequestEntityTooLarge, "request too large")
			return
		}
		s.err(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.Text == "" {
		s.err(w, http.StatusBadRequest, "please enter some text to analyze")
		return
	}
	source := in.Source
	if source == "" {
		source = "text"
	}
	s.respondAnalysis(w, r, string(extract.KindText), s.analyze(string(extract.KindText), source, in.Text))
}

// POST /api/v1/analyze/file (multipart field "file")
func (s *Server) handleAnalyzeFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload())
	f, hdr, err := r.FormFile("file")
	if err != nil {
		if tooLarge(err) {
			s.err(w, http.StatusRequestEntityTooLarge, "upload too large")
			return
		}
		s.err(w, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		s.err(w, http.StatusBadRequest, "error reading file: "+err.Error())
		return
	}
	doc, err := extract.Decode(hdr.Filename, b)
	if err != nil {
		s.logger().Warn("decode upload", "source", hdr.Filename, "err", err)
		s.err(w, http.StatusUnprocessableEntity, "error reading file: "+err.Error())
		return
	}
	kind := string(doc.Kind)
	if !doc.Analyzable() {
		s.Metrics.notice(kind)
		a := ir.NewAnalysis(doc.Filename)
		a.Notice = doc.Notice
		s.respondAnalysis(w, r, kind, a)
		return
	}
	s.respondAnalysis(w, r, kind, s.analyze(kind, doc.Filename, doc.Text))
}

func (s *Server) analyze(kind, source, text string) ir.Analysis {
	start := time.Now()
	a := s.Rules.Run(source, text)
	s.Metrics.observe(kind, &a, time.Since(start))
	s.logger().Info("analysis complete",
		"id", a.ID, "source", source, "kind", kind,
		"length", a.Length, "findings", len(a.Findings))
	return a
}

func (s *Server) respondAnalysis(w http.ResponseWriter, r *http.Request, kind string, a ir.Analysis) {
	if u, ok := userFromCtx(r.Context()); ok {
		s.audit(u.Username, "analyze", r.URL.Path, map[string]any{
			"source": a.Source, "kind": kind, "length": a.Length,
		})
	}
	rep := reporting.Build(&a)
	format := strings.ToLower(r.URL.Query().Get("format"))
	var err error
	switch format {
	case "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err = reporting.RenderHTML(w, &rep)
	case "markdown", "md":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		err = reporting.RenderMarkdown(w, &rep)
	default:
		writeJSON(w, http.StatusOK, rep)
	}
	// headers are already sent; the client sees a truncated body
	if err != nil {
		s.logger().Error("render report", "id", a.ID, "format", format, "err", err)
	}
}

func (s *Server) audit(username, action, resource string, meta map[string]any) {
	if s.UserStore == nil {
		return
	}
	if err := s.UserStore.LogAudit(username, action, resource, meta); err != nil {
		s.logger().Error("audit write failed", "action", action, "err", err)
	}
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s *Server) maxUpload() int64 {
	if s.MaxUploadBytes > 0 {
		return s.MaxUploadBytes
	}
	return defaultMaxUpload
}

func (s *Server) sessionDuration() time.Duration {
	if s.SessionDuration > 0 {
		return s.SessionDuration
	}
	return 12 * time.Hour
}

func (s *Server) err(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}
