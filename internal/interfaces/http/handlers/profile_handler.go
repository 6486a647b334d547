package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"pfp-registry.backend/internal/domain/entities"
	domainerrors "pfp-registry.backend/internal/domain/errors"
	"pfp-registry.backend/internal/interfaces/http/middleware"
	"pfp-registry.backend/internal/interfaces/http/response"
	"pfp-registry.backend/internal/usecases"
	"pfp-registry.backend/pkg/utils"
)

type profileService interface {
	SetProfilePicture(ctx context.Context, account string, input *entities.SetProfilePictureInput) (*entities.ProfileEntry, error)
	GetProfilePictureInfo(ctx context.Context, account string) (*entities.ProfilePictureInfo, error)
	ListProfileEvents(ctx context.Context, account string, pagination utils.PaginationParams) ([]*entities.ProfileEvent, *utils.PaginationMeta, error)
}

// ProfileHandler serves the profile picture registry endpoints
type ProfileHandler struct {
	service profileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(service *usecases.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// GetProfile returns the stored reference for an account together with its
// live freshness flag. Any address may be queried; unset accounts get the
// zero-address sentinel.
// GET /api/v1/profiles/:account
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	info, err := h.service.GetProfilePictureInfo(c.Request.Context(), c.Param("account"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, info)
}

// ListEvents returns an account's change log, newest first
// GET /api/v1/profiles/:account/events
func (h *ProfileHandler) ListEvents(c *gin.Context) {
	var params utils.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.Error(c, domainerrors.BadRequest("invalid pagination parameters"))
		return
	}
	pagination := utils.NewPaginationParams(params.Page, params.Limit)
	if pagination.Limit == 0 || pagination.Limit > 100 {
		pagination.Limit = 100
	}

	events, meta, err := h.service.ListProfileEvents(c.Request.Context(), c.Param("account"), pagination)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, http.StatusOK, events, *meta)
}

// SetPicture sets the authenticated wallet's profile picture. The target
// account is always the caller; there is no way to write another account's
// entry.
// PUT /api/v1/profiles/picture
func (h *ProfileHandler) SetPicture(c *gin.Context) {
	wallet, ok := middleware.GetWalletAddress(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.SetProfilePictureInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("tokenAddress and tokenId are required"))
		return
	}

	entry, err := h.service.SetProfilePicture(c.Request.Context(), wallet, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, entry)
}
