package handler

import (
	"log/slog"
	"net/http"

	"promptbox/internal/domain/services"
	"promptbox/internal/httputil"
)

// VersionHandler handles version history HTTP requests
type VersionHandler struct {
	versionService services.VersionService
	logger         *slog.Logger
}

// NewVersionHandler creates a new version handler
func NewVersionHandler(versionService services.VersionService, logger *slog.Logger) *VersionHandler {
	return &VersionHandler{
		versionService: versionService,
		logger:         logger,
	}
}

// ListVersions retrieves a prompt's versions, newest first
// GET /api/projects/{id}/versions
func (h *VersionHandler) ListVersions(w http.ResponseWriter, r *http.Request) {
	promptID, err := parseID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid prompt ID")
		return
	}

	versions, err := h.versionService.List(r.Context(), promptID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, versions)
}

// CreateVersion appends a new version for a prompt
// POST /api/projects/{id}/versions
func (h *VersionHandler) CreateVersion(w http.ResponseWriter, r *http.Request) {
	promptID, err := parseID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid prompt ID")
		return
	}

	var req services.CreateVersionRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	version, err := h.versionService.Append(r.Context(), promptID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, version)
}

// RestoreVersion returns the content of a version for staging as a draft.
// It never creates a version and never mutates history.
// GET /api/versions/{id}/content
func (h *VersionHandler) RestoreVersion(w http.ResponseWriter, r *http.Request) {
	versionID, err := parseID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid version ID")
		return
	}

	content, err := h.versionService.Restore(r.Context(), versionID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"content": content})
}
