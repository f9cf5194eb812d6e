package domain

import (
	"time"

	"github.com/google/uuid"
)

type SeriesStatus string

const (
	SeriesStatusLobby      SeriesStatus = "lobby"
	SeriesStatusInProgress SeriesStatus = "in_progress"
	SeriesStatusCompleted  SeriesStatus = "completed"
	SeriesStatusCancelled  SeriesStatus = "cancelled"
)

// Series is the persisted record of a planned sequence of games between two
// teams. Side claims and ready flags describe the game currently being set
// up; they reset whenever a new game of the series is created.
type Series struct {
	ID               uuid.UUID    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ShortCode        string       `json:"shortCode" gorm:"uniqueIndex;not null"`
	CreatedBy        uuid.UUID    `json:"createdBy" gorm:"type:uuid;not null"`
	TeamOneName      string       `json:"teamOneName" gorm:"not null"`
	TeamTwoName      string       `json:"teamTwoName" gorm:"not null"`
	TeamOneCaptainID *uuid.UUID   `json:"teamOneCaptainId" gorm:"type:uuid"`
	TeamTwoCaptainID *uuid.UUID   `json:"teamTwoCaptainId" gorm:"type:uuid"`
	PlannedGames     int          `json:"plannedGames" gorm:"not null;default:1"`
	DraftMode        DraftMode    `json:"draftMode" gorm:"not null;default:'normal'"`
	BanTimerSeconds  int          `json:"banTimerSeconds" gorm:"not null;default:30"`
	PickTimerSeconds int          `json:"pickTimerSeconds" gorm:"not null;default:30"`
	TeamOneSide      *Side        `json:"teamOneSide"`
	TeamTwoSide      *Side        `json:"teamTwoSide"`
	TeamOneReady     bool         `json:"teamOneReady" gorm:"not null;default:false"`
	TeamTwoReady     bool         `json:"teamTwoReady" gorm:"not null;default:false"`
	Status           SeriesStatus `json:"status" gorm:"not null;default:'lobby'"`
	CreatedAt        time.Time    `json:"createdAt"`
	CompletedAt      *time.Time   `json:"completedAt"`

	// Relations
	Creator *User `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
}
