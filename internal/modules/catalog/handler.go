package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yomiyu15/Workingspacebackend/internal/pkg/response"
)

type Handler struct {
	service      *Service
	availability gin.HandlerFunc
}

// NewHandler serves the catalog. availability answers
// GET /workspaces/availability and is owned by the booking module.
func NewHandler(service *Service, availability gin.HandlerFunc) *Handler {
	return &Handler{service: service, availability: availability}
}

// RegisterRoutes mounts /workspaces, its legacy alias /spaces and /locations.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	for _, prefix := range []string{"/workspaces", "/spaces"} {
		g := rg.Group(prefix)
		g.GET("", h.ListWorkspaces)
		if h.availability != nil {
			g.GET("/availability", h.availability)
		}
		g.GET("/:id", h.GetWorkspace)
	}

	rg.GET("/locations", h.ListLocations)
}

// RegisterAdminRoutes mounts workspace management on admin, which must
// already carry the admin guard.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	for _, prefix := range []string{"/workspaces", "/spaces"} {
		g := admin.Group(prefix)
		g.POST("", h.CreateWorkspace)
		g.PUT("/:id", h.UpdateWorkspace)
		g.DELETE("/:id", h.DeleteWorkspace)
	}
}

func (h *Handler) ListWorkspaces(c *gin.Context) {
	var q ListWorkspacesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid query parameters")
		return
	}

	items, err := h.service.ListWorkspaces(c.Request.Context(), q.onlyActive(), q.limit())
	if err != nil {
		internalError(c, err, "Failed to load workspaces")
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) GetWorkspace(c *gin.Context) {
	id, ok := workspaceID(c)
	if !ok {
		return
	}

	w, err := h.service.GetWorkspace(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "Failed to load workspace")
		return
	}
	response.Success(c, http.StatusOK, w)
}

func (h *Handler) CreateWorkspace(c *gin.Context) {
	var req WorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	w, err := h.service.CreateWorkspace(c.Request.Context(), req)
	if err != nil {
		writeError(c, err, "Failed to create workspace")
		return
	}
	response.Success(c, http.StatusCreated, w)
}

func (h *Handler) UpdateWorkspace(c *gin.Context) {
	id, ok := workspaceID(c)
	if !ok {
		return
	}

	var req WorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	w, err := h.service.UpdateWorkspace(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err, "Failed to update workspace")
		return
	}
	response.Success(c, http.StatusOK, w)
}

func (h *Handler) DeleteWorkspace(c *gin.Context) {
	id, ok := workspaceID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteWorkspace(c.Request.Context(), id); err != nil {
		writeError(c, err, "Failed to delete workspace")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Workspace deleted", "id": id})
}

func (h *Handler) ListLocations(c *gin.Context) {
	items, err := h.service.ListLocations(c.Request.Context())
	if err != nil {
		internalError(c, err, "Failed to load locations")
		return
	}
	response.Success(c, http.StatusOK, items)
}

func workspaceID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid workspace ID")
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, err error, fallback string) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Invalid workspace", ve.Fields)
	case errors.Is(err, ErrUnknownLocation):
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Location not found")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Workspace not found")
	case errors.Is(err, ErrWorkspaceInUse):
		response.Error(c, http.StatusConflict, response.CodeConflict, "Workspace has bookings; deactivate it instead")
	default:
		internalError(c, err, fallback)
	}
}

func internalError(c *gin.Context, err error, message string) {
	logrus.WithField("path", c.FullPath()).WithError(err).Error("[CATALOG] request failed")
	_ = c.Error(err)
	response.Error(c, http.StatusInternalServerError, response.CodeInternal, message)
}
