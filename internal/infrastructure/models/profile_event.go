package models

import (
	"time"

	"github.com/google/uuid"
)

// ProfileEvent is one append-only change-log row; rows are never updated
type ProfileEvent struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Account              string    `gorm:"type:varchar(64);not null;index"`
	EventType            string    `gorm:"type:varchar(40);not null"`
	TokenAddress         string    `gorm:"type:varchar(64);not null"`
	TokenID              string    `gorm:"type:varchar(100);not null"`
	Standard             string    `gorm:"type:varchar(20);not null"`
	PreviousTokenAddress *string   `gorm:"type:varchar(64)"`
	PreviousTokenID      *string   `gorm:"type:varchar(100)"`
	CreatedAt            time.Time
}

func (ProfileEvent) TableName() string {
	return "profile_events"
}
