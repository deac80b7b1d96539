package images

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pixelup-backend/internal/enhance"
	"pixelup-backend/internal/shared/server/middleware"
	"pixelup-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches image routes to the router group. The rate limiter
// guards the enhance endpoint only.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, enhanceLimiter gin.HandlerFunc) {
	if enhanceLimiter != nil {
		rg.POST("/images/enhance", enhanceLimiter, h.enhance)
	} else {
		rg.POST("/images/enhance", h.enhance)
	}
	rg.GET("/images", h.list)
	rg.DELETE("/images/:id", h.remove)
	rg.GET("/images/state", h.state)
	rg.POST("/images/state/reset", h.resetState)
}

func (h *Handler) enhance(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	form, err := c.MultipartForm()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "multipart form with a file is required", nil)
		return
	}

	pending, err := StagePending(form.File["file"])
	if err != nil {
		switch {
		case errors.Is(err, ErrUnsupportedType):
			respond.Error(c, http.StatusBadRequest, "validation_error", "only PNG, JPEG and WebP images are supported", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		default:
			respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		}
		return
	}
	defer pending.Clear()

	outcome, err := h.Svc.Enhance(c.Request.Context(), userID, pending)
	if err != nil {
		h.respondEnhanceError(c, err)
		return
	}

	respond.JSON(c, http.StatusOK, toEnhanceResponse(outcome))
}

func (h *Handler) respondEnhanceError(c *gin.Context, err error) {
	var statusErr *enhance.StatusError
	var unreachable *enhance.UnreachableError
	switch {
	case errors.Is(err, ErrRunInFlight):
		respond.Error(c, http.StatusConflict, "run_in_flight", "an enhancement is already in progress", nil)
	case errors.Is(err, ErrBackendUnavailable):
		respond.Error(c, http.StatusServiceUnavailable, "backend_unavailable", "Enhancement server is not running. Start it and try again.", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
	case errors.As(err, &unreachable):
		respond.Error(c, http.StatusBadGateway, "backend_unreachable", err.Error(), nil)
	case errors.As(err, &statusErr):
		respond.Error(c, http.StatusBadGateway, "backend_error", err.Error(), nil)
	case errors.Is(err, enhance.ErrMissingImage):
		respond.Error(c, http.StatusBadGateway, "backend_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "enhancement failed", nil)
	}
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 50 {
		limit = 50
	}

	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	list, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list images", nil)
		return
	}

	resp := make([]gin.H, 0, len(list))
	for _, img := range list {
		resp = append(resp, toListItem(img))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	imageID := c.Param("id")

	if err := h.Svc.Delete(c.Request.Context(), userID, imageID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "image not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete image", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"deleted": true, "imageId": imageID})
}

func (h *Handler) state(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	respond.JSON(c, http.StatusOK, h.Svc.States.Snapshot(userID))
}

func (h *Handler) resetState(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	h.Svc.States.Reset(userID)
	respond.JSON(c, http.StatusOK, h.Svc.States.Snapshot(userID))
}
