package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Champion metadata is synced from an external source; the draft engine only
// ever sees the opaque ID.
type Champion struct {
	ID           string         `json:"id" gorm:"primaryKey"`     // e.g. "Aatrox"
	Key          string         `json:"key" gorm:"not null"`      // e.g. "266"
	Name         string         `json:"name" gorm:"not null"`     // display name
	Title        string         `json:"title"`
	ImageURL     string         `json:"imageUrl" gorm:"not null"`
	Tags         datatypes.JSON `json:"tags" gorm:"type:jsonb"`
	LastSyncedAt time.Time      `json:"lastSyncedAt"`
}
