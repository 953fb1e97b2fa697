package api

import (
	_ "embed"
	"html/template"
	"io"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/edtlabs/edt-proxy-go/internal/timetable"
)

//go:embed templates/index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

// Handler implements all HTTP endpoints.
type Handler struct {
	service *timetable.Service
}

// New creates a Handler serving the given pipeline service.
func New(service *timetable.Service) *Handler {
	return &Handler{service: service}
}

// Register mounts routes on the given mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("GET /api/timetable.xml", h.timetableXML)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /", h.home)
}

// ---------- endpoints ----------

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// timetableXML returns the sanitized export. The body is always a string:
// valid XML on success, or a message prefixed "Error: " on any pipeline
// failure. Clients inspect the prefix rather than the HTTP status.
func (h *Handler) timetableXML(w http.ResponseWriter, r *http.Request) {
	body := h.service.SanitizedXML(r.Context())
	if timetable.IsError(body) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	} else {
		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	}
	_, _ = io.WriteString(w, body)
}

// home renders the landing page with a best-effort user identity. Identity
// lookup failure degrades to an empty string and never fails the render.
func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := indexTemplate.Execute(w, struct {
		Identity string
	}{Identity: Identity(r)})
	if err != nil {
		slog.ErrorContext(r.Context(), "could not execute template", "err", err)
	}
}
