package usecases

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/mock"
	"pfp-registry.backend/internal/domain/entities"
	"pfp-registry.backend/pkg/logger"
	"pfp-registry.backend/pkg/utils"
)

func TestMain(m *testing.M) {
	logger.Init("development")
	os.Exit(m.Run())
}

type mockProfileRepo struct {
	mock.Mock
}

func (m *mockProfileRepo) GetByAccount(ctx context.Context, account string) (*entities.ProfileEntry, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ProfileEntry), args.Error(1)
}

func (m *mockProfileRepo) Upsert(ctx context.Context, entry *entities.ProfileEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockProfileRepo) List(ctx context.Context, offset, limit int) ([]*entities.ProfileEntry, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ProfileEntry), args.Error(1)
}

func (m *mockProfileRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockProfileEventRepo struct {
	mock.Mock
}

func (m *mockProfileEventRepo) Create(ctx context.Context, event *entities.ProfileEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockProfileEventRepo) GetByAccount(ctx context.Context, account string, pagination utils.PaginationParams) ([]*entities.ProfileEvent, int64, error) {
	args := m.Called(ctx, account, pagination)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entities.ProfileEvent), args.Get(1).(int64), args.Error(2)
}

func (m *mockProfileEventRepo) GetLatestByAccount(ctx context.Context, account string) (*entities.ProfileEvent, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ProfileEvent), args.Error(1)
}

// passthroughUOW runs the function directly; transactional atomicity is
// covered by the repository-level tests against a real database.
type passthroughUOW struct {
	err error
}

func (u *passthroughUOW) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if u.err != nil {
		return u.err
	}
	return fn(ctx)
}

// stubVerifier is a canned ownershipChecker
type stubVerifier struct {
	owned    bool
	resolved entities.TokenStandard
	err      error
	calls    int

	lastStandard entities.TokenStandard
	lastAccount  string
}

func (s *stubVerifier) Verify(_ context.Context, standard entities.TokenStandard, _, _, account string) (bool, entities.TokenStandard, error) {
	s.calls++
	s.lastStandard = standard
	s.lastAccount = account
	return s.owned, s.resolved, s.err
}
