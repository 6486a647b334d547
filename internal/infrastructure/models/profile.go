package models

import (
	"time"
)

// ProfileEntry persists the per-account token reference. Account is the
// lower-cased wallet address and the primary key, so the upsert path is a
// plain conflict-on-account overwrite.
type ProfileEntry struct {
	Account      string `gorm:"type:varchar(64);primaryKey"`
	TokenAddress string `gorm:"type:varchar(64);not null"`
	TokenID      string `gorm:"type:varchar(100);not null"` // uint256 as decimal string
	Standard     string `gorm:"type:varchar(20);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (ProfileEntry) TableName() string {
	return "profile_entries"
}
