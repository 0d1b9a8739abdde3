package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vhvplatform/go-permit-notification-service/internal/directory"
	"github.com/vhvplatform/go-permit-notification-service/internal/domain"
	"github.com/vhvplatform/go-permit-notification-service/internal/shared/logger"
)

// PermitHandler serves the permit and user directory the filter UI queries.
type PermitHandler struct {
	store *directory.Store
	log   *logger.Logger
}

// NewPermitHandler creates a new directory handler.
func NewPermitHandler(store *directory.Store, log *logger.Logger) *PermitHandler {
	return &PermitHandler{
		store: store,
		log:   log,
	}
}

// ListPermits handles GET /api/permits.
func (h *PermitHandler) ListPermits(c *gin.Context) {
	var filter domain.PermitFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid query parameters"})
		return
	}

	permits, total := h.store.ListPermits(filter)

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     permits,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

// ListUsers handles GET /api/users.
func (h *PermitHandler) ListUsers(c *gin.Context) {
	role := c.Query("role")
	c.JSON(http.StatusOK, gin.H{
		"data": h.store.Users(role),
	})
}
