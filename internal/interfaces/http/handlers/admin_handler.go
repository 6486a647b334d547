package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"pfp-registry.backend/internal/interfaces/http/response"
	"pfp-registry.backend/internal/usecases"
)

type sweepService interface {
	SweepOwnership(ctx context.Context, batchSize int) (*usecases.SweepResult, error)
}

// AdminHandler serves operator endpoints behind the admin key
type AdminHandler struct {
	service sweepService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(service *usecases.ProfileUsecase) *AdminHandler {
	return &AdminHandler{service: service}
}

// TriggerSweep runs an on-demand ownership sweep over all stored references
// POST /api/v1/admin/ownership-sweep
func (h *AdminHandler) TriggerSweep(c *gin.Context) {
	batchSize, _ := strconv.Atoi(c.DefaultQuery("batchSize", "0"))

	result, err := h.service.SweepOwnership(c.Request.Context(), batchSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}
