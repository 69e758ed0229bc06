package handler

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"coursemanager/internal/templates"
)

// ErrorHandler renders the error page for unknown routes and for
// failures that abort a request.
type ErrorHandler struct {
	tmpl *template.Template
	log  *zap.SugaredLogger
}

func NewErrorHandler(log *zap.SugaredLogger) *ErrorHandler {
	tmpl := template.Must(template.ParseFS(templates.FS, "layout.html", "error.html"))
	return &ErrorHandler{tmpl: tmpl, log: log}
}

func (h *ErrorHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.Render(w, http.StatusNotFound, "Page not found.")
}

func (h *ErrorHandler) Render(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	data := map[string]any{
		"LoggedIn": false,
		"Status":   status,
		"Message":  message,
	}
	if err := h.tmpl.ExecuteTemplate(w, "error.html", data); err != nil {
		h.log.Errorw("error page render failed", "err", err)
	}
}
