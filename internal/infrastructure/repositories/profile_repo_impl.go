package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"pfp-registry.backend/internal/domain/entities"
	domainerrors "pfp-registry.backend/internal/domain/errors"
	"pfp-registry.backend/internal/infrastructure/models"
)

// ProfileRepository implements the account → token reference store on GORM
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetByAccount gets the profile entry for an account
func (r *ProfileRepository) GetByAccount(ctx context.Context, account string) (*entities.ProfileEntry, error) {
	var m models.ProfileEntry
	db := GetDB(ctx, r.db).WithContext(ctx)
	if err := db.Where("account = ?", normalizeAccount(account)).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toProfileEntity(&m), nil
}

// Upsert creates or overwrites the entry keyed by account. The account column
// is the primary key, so concurrent writers for the same account serialize on
// the row and the last committed write wins whole.
func (r *ProfileRepository) Upsert(ctx context.Context, entry *entities.ProfileEntry) error {
	now := time.Now()
	m := &models.ProfileEntry{
		Account:      normalizeAccount(entry.Account),
		TokenAddress: entry.TokenAddress,
		TokenID:      entry.TokenID,
		Standard:     string(entry.Standard),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	db := GetDB(ctx, r.db).WithContext(ctx)
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "account"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"token_address", "token_id", "standard", "updated_at",
		}),
	}).Create(m).Error
}

// List pages through all profile entries, oldest first. Used by the
// staleness sweep.
func (r *ProfileRepository) List(ctx context.Context, offset, limit int) ([]*entities.ProfileEntry, error) {
	var ms []models.ProfileEntry
	db := GetDB(ctx, r.db).WithContext(ctx).Order("account")
	if limit > 0 {
		db = db.Limit(limit).Offset(offset)
	}
	if err := db.Find(&ms).Error; err != nil {
		return nil, err
	}

	entries := make([]*entities.ProfileEntry, 0, len(ms))
	for i := range ms {
		entries = append(entries, toProfileEntity(&ms[i]))
	}
	return entries, nil
}

// Count returns the number of profile entries
func (r *ProfileRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	db := GetDB(ctx, r.db).WithContext(ctx)
	if err := db.Model(&models.ProfileEntry{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func toProfileEntity(m *models.ProfileEntry) *entities.ProfileEntry {
	return &entities.ProfileEntry{
		Account:      m.Account,
		TokenAddress: m.TokenAddress,
		TokenID:      m.TokenID,
		Standard:     entities.TokenStandard(m.Standard),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func normalizeAccount(account string) string {
	return strings.ToLower(strings.TrimSpace(account))
}
