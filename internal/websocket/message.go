package websocket

import (
	"encoding/json"

	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/domain"
)

type MessageType string

// Client -> server
const (
	MessageTypeJoinSeries    MessageType = "JOIN_SERIES"
	MessageTypeReady         MessageType = "READY"
	MessageTypeSelectSide    MessageType = "SELECT_SIDE"
	MessageTypeClearSide     MessageType = "CLEAR_SIDE"
	MessageTypeHoverChampion MessageType = "HOVER_CHAMPION"
	MessageTypeLockIn        MessageType = "LOCK_IN"
	MessageTypeBeginFill     MessageType = "BEGIN_FILL"
	MessageTypeConfirmFill   MessageType = "CONFIRM_FILL"
	MessageTypeCancelFill    MessageType = "CANCEL_FILL"
	MessageTypeSyncState     MessageType = "SYNC_STATE"
)

// Server -> client
const (
	MessageTypeStateSync       MessageType = "STATE_SYNC"
	MessageTypePlayerUpdate    MessageType = "PLAYER_UPDATE"
	MessageTypeSideUpdate      MessageType = "SIDE_UPDATE"
	MessageTypeGameStarted     MessageType = "GAME_STARTED"
	MessageTypeChampionHovered MessageType = "CHAMPION_HOVERED"
	MessageTypeChampionLocked  MessageType = "CHAMPION_LOCKED"
	MessageTypeStepChanged     MessageType = "STEP_CHANGED"
	MessageTypeTimerTick       MessageType = "TIMER_TICK"
	MessageTypeSlotFilled      MessageType = "SLOT_FILLED"
	MessageTypeGameCompleted   MessageType = "GAME_COMPLETED"
	MessageTypeSeriesCompleted MessageType = "SERIES_COMPLETED"
	MessageTypeError           MessageType = "ERROR"
)

type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	var data json.RawMessage
	if payload != nil {
		var err error
		data, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return &Message{Type: msgType, Payload: data}, nil
}

// --- Client payloads ---

type JoinSeriesPayload struct {
	SeriesID string `json:"seriesId"` // UUID or short code
}

type ReadyPayload struct {
	Ready bool `json:"ready"`
}

type SelectSidePayload struct {
	Side domain.Side `json:"side"`
}

type HoverChampionPayload struct {
	ChampionID *string `json:"championId"` // nil clears the hover
}

type LockInPayload struct {
	ChampionID string `json:"championId"`
}

type BeginFillPayload struct {
	Kind      domain.ActionKind `json:"kind"`
	SlotIndex int               `json:"slotIndex"`
}

type ConfirmFillPayload struct {
	ChampionID string `json:"championId"`
}

// --- Server payloads ---

// SeriesState is the series half of a state sync: lobby data plus the side
// claims and ready flags for the game being set up.
type SeriesState struct {
	SeriesID     string              `json:"seriesId"`
	ShortCode    string              `json:"shortCode"`
	TeamOneName  string              `json:"teamOneName"`
	TeamTwoName  string              `json:"teamTwoName"`
	PlannedGames int                 `json:"plannedGames"`
	DraftMode    domain.DraftMode    `json:"draftMode"`
	Status       domain.SeriesStatus `json:"status"`
	TeamOneSide  *domain.Side        `json:"teamOneSide"`
	TeamTwoSide  *domain.Side        `json:"teamTwoSide"`
	TeamOneReady bool                `json:"teamOneReady"`
	TeamTwoReady bool                `json:"teamTwoReady"`
}

// GameState is the game half of a state sync: the full slot arrays, the step
// pointer, the fearless set, and what remains on the clock.
type GameState struct {
	GameID           string            `json:"gameId"`
	GameNumber       int               `json:"gameNumber"`
	Status           domain.GameStatus `json:"status"`
	CurrentStep      int               `json:"currentStep"`
	BlueSideTeam     domain.TeamSlot   `json:"blueSideTeam"`
	BlueBans         []string          `json:"blueBans"`
	RedBans          []string          `json:"redBans"`
	BluePicks        []string          `json:"bluePicks"`
	RedPicks         []string          `json:"redPicks"`
	Restricted       []string          `json:"restricted"`
	BlueHover        *string           `json:"blueHover"`
	RedHover         *string           `json:"redHover"`
	TimerRemainingMs int               `json:"timerRemainingMs"`
}

type StateSyncPayload struct {
	Series   SeriesState     `json:"series"`
	Game     GameState       `json:"game"`
	YourTeam domain.TeamSlot `json:"yourTeam,omitempty"`
}

type PlayerUpdatePayload struct {
	Team        domain.TeamSlot `json:"team,omitempty"`
	DisplayName string          `json:"displayName"`
	Action      string          `json:"action"` // "connected" or "disconnected"
}

type SideUpdatePayload struct {
	TeamOneSide  *domain.Side `json:"teamOneSide"`
	TeamTwoSide  *domain.Side `json:"teamTwoSide"`
	TeamOneReady bool         `json:"teamOneReady"`
	TeamTwoReady bool         `json:"teamTwoReady"`
}

type GameStartedPayload struct {
	GameNumber       int               `json:"gameNumber"`
	BlueSideTeam     domain.TeamSlot   `json:"blueSideTeam"`
	StepIndex        int               `json:"stepIndex"`
	Side             domain.Side       `json:"side"`
	Kind             domain.ActionKind `json:"kind"`
	TimerRemainingMs int               `json:"timerRemainingMs"`
}

type ChampionHoveredPayload struct {
	Side       domain.Side `json:"side"`
	ChampionID *string     `json:"championId"`
}

type ChampionLockedPayload struct {
	StepIndex  int               `json:"stepIndex"`
	Side       domain.Side       `json:"side"`
	Kind       domain.ActionKind `json:"kind"`
	SlotIndex  int               `json:"slotIndex"`
	ChampionID string            `json:"championId"`
	ByTimeout  bool              `json:"byTimeout"`
}

type StepChangedPayload struct {
	StepIndex        int               `json:"stepIndex"`
	Side             domain.Side       `json:"side"`
	Kind             domain.ActionKind `json:"kind"`
	TimerRemainingMs int               `json:"timerRemainingMs"`
}

type TimerTickPayload struct {
	RemainingMs int `json:"remainingMs"`
}

type SlotFilledPayload struct {
	Side       domain.Side       `json:"side"`
	Kind       domain.ActionKind `json:"kind"`
	SlotIndex  int               `json:"slotIndex"`
	ChampionID string            `json:"championId"`
}

type GameCompletedPayload struct {
	GameNumber     int      `json:"gameNumber"`
	BlueBans       []string `json:"blueBans"`
	RedBans        []string `json:"redBans"`
	BluePicks      []string `json:"bluePicks"`
	RedPicks       []string `json:"redPicks"`
	NextGameNumber *int     `json:"nextGameNumber"` // nil after the last game
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
