package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"pfp-registry.backend/internal/domain/entities"
	domainerrors "pfp-registry.backend/internal/domain/errors"
	"pfp-registry.backend/internal/infrastructure/models"
	"pfp-registry.backend/pkg/utils"
)

// ProfileEventRepository implements the append-only profile change log on GORM
type ProfileEventRepository struct {
	db *gorm.DB
}

// NewProfileEventRepository creates a new profile event repository
func NewProfileEventRepository(db *gorm.DB) *ProfileEventRepository {
	return &ProfileEventRepository{db: db}
}

// Create appends an event row
func (r *ProfileEventRepository) Create(ctx context.Context, event *entities.ProfileEvent) error {
	if event.ID == uuid.Nil {
		event.ID = utils.GenerateUUIDv7()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	m := &models.ProfileEvent{
		ID:                   event.ID,
		Account:              normalizeAccount(event.Account),
		EventType:            string(event.EventType),
		TokenAddress:         event.TokenAddress,
		TokenID:              event.TokenID,
		Standard:             string(event.Standard),
		PreviousTokenAddress: event.PreviousTokenAddress.Ptr(),
		PreviousTokenID:      event.PreviousTokenID.Ptr(),
		CreatedAt:            event.CreatedAt,
	}

	db := GetDB(ctx, r.db).WithContext(ctx)
	return db.Create(m).Error
}

// GetByAccount lists an account's events, newest first, with total count
func (r *ProfileEventRepository) GetByAccount(ctx context.Context, account string, pagination utils.PaginationParams) ([]*entities.ProfileEvent, int64, error) {
	var totalCount int64
	db := GetDB(ctx, r.db).WithContext(ctx)

	query := db.Model(&models.ProfileEvent{}).Where("account = ?", normalizeAccount(account))
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.Offset())
	}

	var ms []models.ProfileEvent
	if err := query.Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	events := make([]*entities.ProfileEvent, 0, len(ms))
	for i := range ms {
		events = append(events, toProfileEventEntity(&ms[i]))
	}
	return events, totalCount, nil
}

// GetLatestByAccount returns the most recent event for an account
func (r *ProfileEventRepository) GetLatestByAccount(ctx context.Context, account string) (*entities.ProfileEvent, error) {
	var m models.ProfileEvent
	db := GetDB(ctx, r.db).WithContext(ctx)
	if err := db.Where("account = ?", normalizeAccount(account)).Order("created_at DESC").First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toProfileEventEntity(&m), nil
}

func toProfileEventEntity(m *models.ProfileEvent) *entities.ProfileEvent {
	return &entities.ProfileEvent{
		ID:                   m.ID,
		Account:              m.Account,
		EventType:            entities.ProfileEventType(m.EventType),
		TokenAddress:         m.TokenAddress,
		TokenID:              m.TokenID,
		Standard:             entities.TokenStandard(m.Standard),
		PreviousTokenAddress: null.StringFromPtr(m.PreviousTokenAddress),
		PreviousTokenID:      null.StringFromPtr(m.PreviousTokenID),
		CreatedAt:            m.CreatedAt,
	}
}
