package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"pfp-registry.backend/internal/domain/entities"
	domainerrors "pfp-registry.backend/internal/domain/errors"
	"pfp-registry.backend/internal/interfaces/http/response"
	"pfp-registry.backend/internal/usecases"
	"pfp-registry.backend/pkg/jwt"
)

type authService interface {
	Challenge(ctx context.Context, input *entities.ChallengeInput) (*entities.AuthChallenge, error)
	Login(ctx context.Context, input *entities.LoginInput) (*jwt.TokenPair, error)
	Refresh(ctx context.Context, input *entities.RefreshInput) (*jwt.TokenPair, error)
}

// AuthHandler serves the wallet sign-in endpoints
type AuthHandler struct {
	service authService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service *usecases.AuthUsecase) *AuthHandler {
	return &AuthHandler{service: service}
}

// Challenge issues a sign-in challenge for a wallet address
// POST /api/v1/auth/challenge
func (h *AuthHandler) Challenge(c *gin.Context) {
	var input entities.ChallengeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("address is required"))
		return
	}

	challenge, err := h.service.Challenge(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, challenge)
}

// Login exchanges a signed challenge for a session token pair
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("address and signature are required"))
		return
	}

	pair, err := h.service.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, pair)
}

// Refresh exchanges a refresh token for a new token pair
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var input entities.RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("refreshToken is required"))
		return
	}

	pair, err := h.service.Refresh(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, pair)
}
