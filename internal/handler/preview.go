package handler

import (
	"log/slog"
	"net/http"

	"promptbox/internal/httputil"
	"promptbox/internal/template"
)

// PreviewHandler exposes the stateless template engine over HTTP so the
// frontend can render a substituted preview without an open session.
type PreviewHandler struct {
	logger *slog.Logger
}

// NewPreviewHandler creates a new preview handler
func NewPreviewHandler(logger *slog.Logger) *PreviewHandler {
	return &PreviewHandler{logger: logger}
}

// previewRequest carries draft text and the values to substitute
type previewRequest struct {
	Text      string            `json:"text"`
	Variables map[string]string `json:"variables"`
}

// previewResponse returns the rendered preview and the placeholder names
// found in the text, in first-occurrence order, de-duplicated.
type previewResponse struct {
	Preview      string   `json:"preview"`
	Placeholders []string `json:"placeholders"`
}

// RenderPreview extracts placeholders and renders the preview
// POST /api/render/preview
func (h *PreviewHandler) RenderPreview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	names := template.Extract(req.Text)
	bindings := template.FromValues(names, req.Variables)

	resp := previewResponse{
		Preview:      template.Render(req.Text, bindings),
		Placeholders: bindings.Names(),
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}
