package repositories

import (
	"context"

	"pfp-registry.backend/internal/domain/entities"
)

// ProfileRepository defines the account → token reference store.
// GetByAccount returns domain ErrNotFound for accounts that never wrote;
// Upsert is the single mutation entry point and overwrites in place.
type ProfileRepository interface {
	GetByAccount(ctx context.Context, account string) (*entities.ProfileEntry, error)
	Upsert(ctx context.Context, entry *entities.ProfileEntry) error
	List(ctx context.Context, offset, limit int) ([]*entities.ProfileEntry, error)
	Count(ctx context.Context) (int64, error)
}
