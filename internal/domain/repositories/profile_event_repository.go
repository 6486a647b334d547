package repositories

import (
	"context"

	"pfp-registry.backend/internal/domain/entities"
	"pfp-registry.backend/pkg/utils"
)

// ProfileEventRepository defines the append-only profile change log
type ProfileEventRepository interface {
	Create(ctx context.Context, event *entities.ProfileEvent) error
	GetByAccount(ctx context.Context, account string, pagination utils.PaginationParams) ([]*entities.ProfileEvent, int64, error)
	GetLatestByAccount(ctx context.Context, account string) (*entities.ProfileEvent, error)
}
