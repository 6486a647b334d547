package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pfp-registry.backend/internal/domain/entities"
	domainerrors "pfp-registry.backend/internal/domain/errors"
	"pfp-registry.backend/internal/interfaces/http/middleware"
	"pfp-registry.backend/pkg/logger"
	"pfp-registry.backend/pkg/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Init("development")
	os.Exit(m.Run())
}

const (
	testAccount = "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"
	testNFT     = "0x1f9840a85d5aF5bf1D1762F925BDADdC4201F984"
)

type stubProfileService struct {
	info   *entities.ProfilePictureInfo
	entry  *entities.ProfileEntry
	events []*entities.ProfileEvent
	meta   *utils.PaginationMeta
	err    error

	gotAccount    string
	gotInput      *entities.SetProfilePictureInput
	gotPagination utils.PaginationParams
}

func (s *stubProfileService) SetProfilePicture(_ context.Context, account string, input *entities.SetProfilePictureInput) (*entities.ProfileEntry, error) {
	s.gotAccount = account
	s.gotInput = input
	return s.entry, s.err
}

func (s *stubProfileService) GetProfilePictureInfo(_ context.Context, account string) (*entities.ProfilePictureInfo, error) {
	s.gotAccount = account
	return s.info, s.err
}

func (s *stubProfileService) ListProfileEvents(_ context.Context, account string, pagination utils.PaginationParams) ([]*entities.ProfileEvent, *utils.PaginationMeta, error) {
	s.gotAccount = account
	s.gotPagination = pagination
	return s.events, s.meta, s.err
}

func setupProfileRouter(svc profileService, wallet string) *gin.Engine {
	r := gin.New()
	h := &ProfileHandler{service: svc}
	r.GET("/api/v1/profiles/:account", h.GetProfile)
	r.GET("/api/v1/profiles/:account/events", h.ListEvents)
	r.PUT("/api/v1/profiles/picture", func(c *gin.Context) {
		if wallet != "" {
			c.Set(middleware.WalletAddressKey, wallet)
		}
	}, h.SetPicture)
	return r
}

func TestGetProfile(t *testing.T) {
	svc := &stubProfileService{
		info: &entities.ProfilePictureInfo{
			Account:        testAccount,
			Reference:      entities.TokenReference{TokenAddress: testNFT, TokenID: "1"},
			Standard:       entities.TokenStandardERC721,
			CurrentlyOwned: true,
		},
	}
	r := setupProfileRouter(svc, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/profiles/"+testAccount, nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testAccount, svc.gotAccount)

	var body entities.ProfilePictureInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "1", body.Reference.TokenID)
	assert.True(t, body.CurrentlyOwned)
}

func TestGetProfile_BadAddress(t *testing.T) {
	svc := &stubProfileService{err: domainerrors.BadRequest("invalid account address")}
	r := setupProfileRouter(svc, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/profiles/bogus", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_BAD_REQUEST")
}

func TestListEvents(t *testing.T) {
	svc := &stubProfileService{
		events: []*entities.ProfileEvent{
			{Account: testAccount, EventType: entities.ProfileEventPictureSet, TokenID: "2"},
		},
		meta: &utils.PaginationMeta{Page: 1, Limit: 10, TotalCount: 1, TotalPages: 1},
	}
	r := setupProfileRouter(svc, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/profiles/"+testAccount+"/events?page=1&limit=10", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, svc.gotPagination.Limit)
	assert.Contains(t, w.Body.String(), "pagination")
	assert.Contains(t, w.Body.String(), "PROFILE_PICTURE_SET")
}

func TestListEvents_LimitClamped(t *testing.T) {
	svc := &stubProfileService{
		events: []*entities.ProfileEvent{},
		meta:   &utils.PaginationMeta{Page: 1, Limit: 100},
	}
	r := setupProfileRouter(svc, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/profiles/"+testAccount+"/events?limit=5000", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 100, svc.gotPagination.Limit)
}

func TestSetPicture(t *testing.T) {
	svc := &stubProfileService{
		entry: &entities.ProfileEntry{
			Account:      testAccount,
			TokenAddress: testNFT,
			TokenID:      "1",
			Standard:     entities.TokenStandardERC721,
		},
	}
	r := setupProfileRouter(svc, testAccount)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/profiles/picture",
		strings.NewReader(`{"tokenAddress":"`+testNFT+`","tokenId":"1","standard":"ERC721"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	// the target account is always the authenticated wallet
	assert.Equal(t, testAccount, svc.gotAccount)
	assert.Equal(t, "1", svc.gotInput.TokenID)
}

func TestSetPicture_Unauthenticated(t *testing.T) {
	r := setupProfileRouter(&stubProfileService{}, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/profiles/picture",
		strings.NewReader(`{"tokenAddress":"`+testNFT+`","tokenId":"1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSetPicture_MissingFields(t *testing.T) {
	r := setupProfileRouter(&stubProfileService{}, testAccount)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/profiles/picture",
		strings.NewReader(`{"tokenAddress":"`+testNFT+`"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "tokenId")
}

func TestSetPicture_NotOwner(t *testing.T) {
	svc := &stubProfileService{err: domainerrors.VerificationFailed()}
	r := setupProfileRouter(svc, testAccount)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/profiles/picture",
		strings.NewReader(`{"tokenAddress":"`+testNFT+`","tokenId":"1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_NOT_TOKEN_OWNER")
	assert.Contains(t, w.Body.String(), "caller is not the owner of the token")
}
