package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pfp-registry.backend/internal/usecases"
)

type stubSweepService struct {
	result       *usecases.SweepResult
	err          error
	gotBatchSize int
}

func (s *stubSweepService) SweepOwnership(_ context.Context, batchSize int) (*usecases.SweepResult, error) {
	s.gotBatchSize = batchSize
	return s.result, s.err
}

func setupAdminRouter(svc sweepService) *gin.Engine {
	r := gin.New()
	h := &AdminHandler{service: svc}
	r.POST("/api/v1/admin/ownership-sweep", h.TriggerSweep)
	return r
}

func TestTriggerSweep(t *testing.T) {
	svc := &stubSweepService{result: &usecases.SweepResult{Checked: 10, Stale: 2, Lapsed: 1}}
	r := setupAdminRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/ownership-sweep?batchSize=50", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 50, svc.gotBatchSize)
	assert.Contains(t, w.Body.String(), `"stale":2`)
}

func TestTriggerSweep_Error(t *testing.T) {
	r := setupAdminRouter(&stubSweepService{err: errors.New("db down")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/ownership-sweep", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_INTERNAL")
}
