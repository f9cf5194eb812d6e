package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type GameStatus string

const (
	GameStatusPending   GameStatus = "pending"
	GameStatusDrafting  GameStatus = "drafting"
	GameStatusCompleted GameStatus = "completed"
	GameStatusCancelled GameStatus = "cancelled"
)

// Game is the persisted record of one draft within a series. Slot arrays are
// stored as jsonb and always hold exactly BansPerSide/PicksPerSide entries;
// unreached slots carry SlotEmpty.
type Game struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SeriesID     uuid.UUID      `json:"seriesId" gorm:"type:uuid;index;not null"`
	GameNumber   int            `json:"gameNumber" gorm:"not null"`
	Status       GameStatus     `json:"status" gorm:"not null;default:'pending'"`
	CurrentStep  int            `json:"currentStep" gorm:"not null;default:-1"`
	BlueSideTeam TeamSlot       `json:"blueSideTeam" gorm:"not null"`
	BlueBans     datatypes.JSON `json:"blueBans" gorm:"type:jsonb;default:'[]'"`
	RedBans      datatypes.JSON `json:"redBans" gorm:"type:jsonb;default:'[]'"`
	BluePicks    datatypes.JSON `json:"bluePicks" gorm:"type:jsonb;default:'[]'"`
	RedPicks     datatypes.JSON `json:"redPicks" gorm:"type:jsonb;default:'[]'"`
	CreatedAt    time.Time      `json:"createdAt"`
	StartedAt    *time.Time     `json:"startedAt"`
	CompletedAt  *time.Time     `json:"completedAt"`
}

// DraftAction is the audit row for one committed step, including steps
// committed as SlotUnfilled by timer expiry and later corrections via fill.
type DraftAction struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	GameID     uuid.UUID  `json:"gameId" gorm:"type:uuid;index;not null"`
	StepIndex  int        `json:"stepIndex" gorm:"not null"`
	Side       Side       `json:"side" gorm:"not null"`
	Kind       ActionKind `json:"kind" gorm:"not null"`
	ChampionID string     `json:"championId" gorm:"not null"`
	ByTimeout  bool       `json:"byTimeout" gorm:"not null;default:false"`
	ActionTime time.Time  `json:"actionTime"`
}

type UnavailableReason string

const (
	ReasonPicked UnavailableReason = "picked"
	ReasonBanned UnavailableReason = "banned"
)

// UnavailableChampion records one champion made unavailable for later games
// of a series. Rows are written once when a game completes and never change.
type UnavailableChampion struct {
	ID         uuid.UUID         `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SeriesID   uuid.UUID         `json:"seriesId" gorm:"type:uuid;index;not null"`
	ChampionID string            `json:"championId" gorm:"not null"`
	FromGame   int               `json:"fromGame" gorm:"not null"`
	Side       Side              `json:"side" gorm:"not null"`
	Reason     UnavailableReason `json:"reason" gorm:"not null"`
}
