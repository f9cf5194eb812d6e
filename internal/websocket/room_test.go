package websocket

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/domain"
	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/draft"
)

const recvTimeout = 3 * time.Second

// Rooms run without persistence here; the services are nil and everything
// happens in memory.
func newTestRoom(t *testing.T, plannedGames, gameNumber int) (*SeriesRoom, *Client, *Client) {
	t.Helper()

	capOne, capTwo := uuid.New(), uuid.New()
	series := &domain.Series{
		ID:               uuid.New(),
		ShortCode:        "AB12CD",
		TeamOneName:      "Cloud Nine",
		TeamTwoName:      "Team Liquid",
		TeamOneCaptainID: &capOne,
		TeamTwoCaptainID: &capTwo,
		PlannedGames:     plannedGames,
		DraftMode:        domain.DraftModeNormal,
		BanTimerSeconds:  30,
		PickTimerSeconds: 30,
		Status:           domain.SeriesStatusLobby,
	}

	var session *draft.Session
	if gameNumber == 1 {
		session = draft.NewSession(series.ID, plannedGames, series.DraftMode)
	} else {
		session = &draft.Session{
			ID:           series.ID,
			PlannedGames: plannedGames,
			DraftMode:    series.DraftMode,
			Status:       domain.SeriesStatusInProgress,
		}
	}

	game := draft.NewGame(uuid.New(), gameNumber, domain.TeamOne, nil)
	room := NewSeriesRoom(series, session, game, nil, nil, zap.NewNop())
	go room.Run()
	t.Cleanup(func() {
		room.Stop()
		room.Wait()
	})

	one := newTestClient(capOne, "captainOne")
	two := newTestClient(capTwo, "captainTwo")
	return room, one, two
}

func newTestClient(userID uuid.UUID, name string) *Client {
	return &Client{
		send:        make(chan []byte, 256),
		userID:      userID,
		displayName: name,
		logger:      zap.NewNop(),
	}
}

// recvMessage reads from the client's send buffer until a message of the
// wanted type arrives, discarding everything else (ticks, broadcasts for
// other assertions).
func recvMessage(t *testing.T, c *Client, want MessageType) json.RawMessage {
	t.Helper()
	deadline := time.After(recvTimeout)
	for {
		select {
		case data := <-c.send:
			var msg Message
			require.NoError(t, json.Unmarshal(data, &msg))
			if msg.Type == want {
				return msg.Payload
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", want)
		}
	}
}

func recvPayload[P any](t *testing.T, c *Client, want MessageType) P {
	t.Helper()
	raw := recvMessage(t, c, want)
	var payload P
	require.NoError(t, json.Unmarshal(raw, &payload))
	return payload
}

// expectNo asserts that no message of the given type arrives within a short
// window.
func expectNo(t *testing.T, c *Client, unwanted MessageType) {
	t.Helper()
	deadline := time.After(150 * time.Millisecond)
	for {
		select {
		case data := <-c.send:
			var msg Message
			require.NoError(t, json.Unmarshal(data, &msg))
			if msg.Type == unwanted {
				t.Fatalf("unexpected %s message", unwanted)
			}
		case <-deadline:
			return
		}
	}
}

func drain(c *Client) {
	for {
		select {
		case <-c.send:
		default:
			return
		}
	}
}

func joinBoth(t *testing.T, room *SeriesRoom, one, two *Client) {
	t.Helper()
	room.join <- one
	recvMessage(t, one, MessageTypeStateSync)
	room.join <- two
	recvMessage(t, two, MessageTypeStateSync)
	drain(one)
	drain(two)
}

func startDraft(t *testing.T, room *SeriesRoom, one, two *Client) {
	t.Helper()
	joinBoth(t, room, one, two)
	room.ready <- &ReadyRequest{Client: one, Ready: true}
	room.ready <- &ReadyRequest{Client: two, Ready: true}
	recvMessage(t, one, MessageTypeGameStarted)
	recvMessage(t, two, MessageTypeGameStarted)
	drain(one)
	drain(two)
}

func TestRoom_JoinSendsStateSync(t *testing.T) {
	room, one, _ := newTestRoom(t, 1, 1)

	room.join <- one
	sync := recvPayload[StateSyncPayload](t, one, MessageTypeStateSync)

	assert.Equal(t, domain.TeamOne, sync.YourTeam)
	assert.Equal(t, "AB12CD", sync.Series.ShortCode)
	assert.Equal(t, 1, sync.Game.GameNumber)
	assert.Equal(t, domain.GameStatusPending, sync.Game.Status)
	assert.Equal(t, -1, sync.Game.CurrentStep)
	assert.Len(t, sync.Game.BlueBans, domain.BansPerSide)

	update := recvPayload[PlayerUpdatePayload](t, one, MessageTypePlayerUpdate)
	assert.Equal(t, "connected", update.Action)
	assert.Equal(t, "captainOne", update.DisplayName)
}

func TestRoom_SpectatorCannotReady(t *testing.T) {
	room, one, two := newTestRoom(t, 1, 1)
	joinBoth(t, room, one, two)

	watcher := newTestClient(uuid.New(), "watcher")
	room.join <- watcher
	sync := recvPayload[StateSyncPayload](t, watcher, MessageTypeStateSync)
	assert.Empty(t, sync.YourTeam)

	room.ready <- &ReadyRequest{Client: watcher, Ready: true}
	errMsg := recvPayload[ErrorPayload](t, watcher, MessageTypeError)
	assert.Equal(t, "NOT_A_CAPTAIN", errMsg.Code)
}

func TestRoom_ReadyUpStartsGameOne(t *testing.T) {
	room, one, two := newTestRoom(t, 1, 1)
	joinBoth(t, room, one, two)

	room.ready <- &ReadyRequest{Client: one, Ready: true}
	side := recvPayload[SideUpdatePayload](t, two, MessageTypeSideUpdate)
	assert.True(t, side.TeamOneReady)
	assert.False(t, side.TeamTwoReady)
	expectNo(t, two, MessageTypeGameStarted)

	room.ready <- &ReadyRequest{Client: two, Ready: true}
	started := recvPayload[GameStartedPayload](t, one, MessageTypeGameStarted)
	assert.Equal(t, 1, started.GameNumber)
	assert.Equal(t, domain.TeamOne, started.BlueSideTeam)
	assert.Equal(t, 0, started.StepIndex)
	assert.Equal(t, domain.SideBlue, started.Side)
	assert.Equal(t, domain.ActionBan, started.Kind)
	assert.Equal(t, 30000, started.TimerRemainingMs)
}

func TestRoom_SideSelectionFixedInGameOne(t *testing.T) {
	room, one, two := newTestRoom(t, 3, 1)
	joinBoth(t, room, one, two)

	room.selectSide <- &SelectSideRequest{Client: one, Side: domain.SideRed}
	errMsg := recvPayload[ErrorPayload](t, one, MessageTypeError)
	assert.Equal(t, "SIDE_FIXED", errMsg.Code)
}

func TestRoom_SideSelection(t *testing.T) {
	room, one, two := newTestRoom(t, 3, 2)
	joinBoth(t, room, one, two)

	// Ready without a side claim is rejected.
	room.ready <- &ReadyRequest{Client: one, Ready: true}
	errMsg := recvPayload[ErrorPayload](t, one, MessageTypeError)
	assert.Equal(t, "SIDE_NOT_SELECTED", errMsg.Code)

	// A side that is neither blue nor red is bad input, not a claim conflict.
	room.selectSide <- &SelectSideRequest{Client: one, Side: domain.Side("purple")}
	errMsg = recvPayload[ErrorPayload](t, one, MessageTypeError)
	assert.Equal(t, "INVALID_PAYLOAD", errMsg.Code)

	room.selectSide <- &SelectSideRequest{Client: one, Side: domain.SideRed}
	side := recvPayload[SideUpdatePayload](t, two, MessageTypeSideUpdate)
	require.NotNil(t, side.TeamOneSide)
	assert.Equal(t, domain.SideRed, *side.TeamOneSide)

	// The other captain cannot claim the same side.
	room.selectSide <- &SelectSideRequest{Client: two, Side: domain.SideRed}
	errMsg = recvPayload[ErrorPayload](t, two, MessageTypeError)
	assert.Equal(t, "SIDE_TAKEN", errMsg.Code)

	room.selectSide <- &SelectSideRequest{Client: two, Side: domain.SideBlue}
	recvMessage(t, one, MessageTypeSideUpdate) // red claim
	recvMessage(t, one, MessageTypeSideUpdate) // blue claim
	recvMessage(t, two, MessageTypeSideUpdate) // blue claim
	drain(one)
	drain(two)

	// Clearing a side also drops the ready flag.
	room.ready <- &ReadyRequest{Client: two, Ready: true}
	recvMessage(t, one, MessageTypeSideUpdate)
	room.clearSide <- two
	side = recvPayload[SideUpdatePayload](t, one, MessageTypeSideUpdate)
	assert.Nil(t, side.TeamTwoSide)
	assert.False(t, side.TeamTwoReady)
}

func TestRoom_LockInAdvancesDraft(t *testing.T) {
	room, one, two := newTestRoom(t, 1, 1)
	startDraft(t, room, one, two)

	// Step 0 belongs to blue (team one); team two is rejected.
	room.lockIn <- &LockInRequest{Client: two, ChampionID: "Ahri"}
	errMsg := recvPayload[ErrorPayload](t, two, MessageTypeError)
	assert.Equal(t, "NOT_YOUR_TURN", errMsg.Code)

	room.lockIn <- &LockInRequest{Client: one, ChampionID: "Ahri"}
	locked := recvPayload[ChampionLockedPayload](t, two, MessageTypeChampionLocked)
	assert.Equal(t, 0, locked.StepIndex)
	assert.Equal(t, domain.SideBlue, locked.Side)
	assert.Equal(t, domain.ActionBan, locked.Kind)
	assert.Equal(t, "Ahri", locked.ChampionID)
	assert.False(t, locked.ByTimeout)

	step := recvPayload[StepChangedPayload](t, two, MessageTypeStepChanged)
	assert.Equal(t, 1, step.StepIndex)
	assert.Equal(t, domain.SideRed, step.Side)

	// A champion already in the draft is rejected.
	drain(two)
	room.lockIn <- &LockInRequest{Client: two, ChampionID: "Ahri"}
	errMsg = recvPayload[ErrorPayload](t, two, MessageTypeError)
	assert.Equal(t, "INVALID_CHAMPION", errMsg.Code)
}

func TestRoom_TimerExpiryCommitsUnfilled(t *testing.T) {
	room, one, two := newTestRoom(t, 1, 1)
	startDraft(t, room, one, two)

	room.timerExpired <- 0
	locked := recvPayload[ChampionLockedPayload](t, one, MessageTypeChampionLocked)
	assert.Equal(t, 0, locked.StepIndex)
	assert.Equal(t, domain.SlotUnfilled, locked.ChampionID)
	assert.True(t, locked.ByTimeout)

	step := recvPayload[StepChangedPayload](t, one, MessageTypeStepChanged)
	assert.Equal(t, 1, step.StepIndex)

	// A duplicate expiry for the same step is a no-op.
	drain(one)
	room.timerExpired <- 0
	expectNo(t, one, MessageTypeChampionLocked)
}

func TestRoom_FillRecoversExpiredSlot(t *testing.T) {
	room, one, two := newTestRoom(t, 1, 1)
	startDraft(t, room, one, two)

	room.timerExpired <- 0 // blue ban 0 becomes unfilled
	recvMessage(t, one, MessageTypeStepChanged)
	drain(one)
	drain(two)

	// The slot owner is blue (team one); team two cannot fill it.
	room.beginFill <- &BeginFillRequest{Client: two, Kind: domain.ActionBan, SlotIndex: 0}
	errMsg := recvPayload[ErrorPayload](t, two, MessageTypeError)
	assert.Equal(t, "SLOT_NOT_FILLABLE", errMsg.Code)

	room.beginFill <- &BeginFillRequest{Client: one, Kind: domain.ActionBan, SlotIndex: 0}
	room.confirmFill <- &ConfirmFillRequest{Client: one, ChampionID: "Zed"}
	filled := recvPayload[SlotFilledPayload](t, two, MessageTypeSlotFilled)
	assert.Equal(t, domain.SideBlue, filled.Side)
	assert.Equal(t, domain.ActionBan, filled.Kind)
	assert.Equal(t, 0, filled.SlotIndex)
	assert.Equal(t, "Zed", filled.ChampionID)

	// The fill never moves the turn pointer.
	room.syncState <- one
	sync := recvPayload[StateSyncPayload](t, one, MessageTypeStateSync)
	assert.Equal(t, 1, sync.Game.CurrentStep)
	assert.Equal(t, "Zed", sync.Game.BlueBans[0])

	// A normal slot cannot be opened for filling.
	room.beginFill <- &BeginFillRequest{Client: one, Kind: domain.ActionBan, SlotIndex: 1}
	errMsg = recvPayload[ErrorPayload](t, one, MessageTypeError)
	assert.Equal(t, "SLOT_NOT_FILLABLE", errMsg.Code)
}

func TestRoom_HoverBroadcast(t *testing.T) {
	room, one, two := newTestRoom(t, 1, 1)
	startDraft(t, room, one, two)

	champ := "Jinx"
	room.hoverChampion <- &HoverChampionRequest{Client: one, ChampionID: &champ}
	hover := recvPayload[ChampionHoveredPayload](t, two, MessageTypeChampionHovered)
	assert.Equal(t, domain.SideBlue, hover.Side)
	require.NotNil(t, hover.ChampionID)
	assert.Equal(t, "Jinx", *hover.ChampionID)

	// Hovers are ephemeral but visible in a state sync.
	room.syncState <- two
	sync := recvPayload[StateSyncPayload](t, two, MessageTypeStateSync)
	require.NotNil(t, sync.Game.BlueHover)
	assert.Equal(t, "Jinx", *sync.Game.BlueHover)
}

func TestRoom_HoverOnlyForTurnHolder(t *testing.T) {
	room, one, two := newTestRoom(t, 1, 1)
	startDraft(t, room, one, two)

	// Step 0 belongs to blue (team one); red cannot hover yet.
	champ := "Zed"
	room.hoverChampion <- &HoverChampionRequest{Client: two, ChampionID: &champ}
	errMsg := recvPayload[ErrorPayload](t, two, MessageTypeError)
	assert.Equal(t, "NOT_YOUR_TURN", errMsg.Code)
	expectNo(t, one, MessageTypeChampionHovered)
}

func TestRoom_ResumedDraftRearmsTimer(t *testing.T) {
	capOne, capTwo := uuid.New(), uuid.New()
	series := &domain.Series{
		ID:               uuid.New(),
		ShortCode:        "EF34GH",
		TeamOneName:      "Cloud Nine",
		TeamTwoName:      "Team Liquid",
		TeamOneCaptainID: &capOne,
		TeamTwoCaptainID: &capTwo,
		PlannedGames:     1,
		DraftMode:        domain.DraftModeNormal,
		BanTimerSeconds:  1,
		PickTimerSeconds: 1,
		Status:           domain.SeriesStatusInProgress,
	}
	session := draft.NewSession(series.ID, 1, series.DraftMode)
	session.Status = domain.SeriesStatusInProgress

	// A draft already one step in, as a rebuilt room sees it.
	game := draft.NewGame(uuid.New(), 1, domain.TeamOne, nil)
	require.NoError(t, game.Start())
	_, err := game.LockIn(domain.SideBlue, "Ahri")
	require.NoError(t, err)

	room := NewSeriesRoom(series, session, game, nil, nil, zap.NewNop())
	go room.Run()
	t.Cleanup(func() {
		room.Stop()
		room.Wait()
	})

	one := newTestClient(capOne, "captainOne")
	room.join <- one
	sync := recvPayload[StateSyncPayload](t, one, MessageTypeStateSync)
	assert.Greater(t, sync.Game.TimerRemainingMs, 0)

	// The restored step's deadline fires without any captain acting.
	locked := recvPayload[ChampionLockedPayload](t, one, MessageTypeChampionLocked)
	assert.Equal(t, 1, locked.StepIndex)
	assert.True(t, locked.ByTimeout)
	assert.Equal(t, domain.SlotUnfilled, locked.ChampionID)
}

func TestRoom_FullDraftCompletesSingleGameSeries(t *testing.T) {
	room, one, two := newTestRoom(t, 1, 1)
	startDraft(t, room, one, two)

	runFullDraft(t, room, one, two)

	completed := recvPayload[GameCompletedPayload](t, two, MessageTypeGameCompleted)
	assert.Equal(t, 1, completed.GameNumber)
	assert.Nil(t, completed.NextGameNumber)
	for _, slot := range completed.BluePicks {
		assert.False(t, domain.IsSentinel(slot))
	}

	recvMessage(t, two, MessageTypeSeriesCompleted)
}

func TestRoom_SeriesRollsToNextGame(t *testing.T) {
	room, one, two := newTestRoom(t, 3, 1)
	startDraft(t, room, one, two)

	runFullDraft(t, room, one, two)

	completed := recvPayload[GameCompletedPayload](t, one, MessageTypeGameCompleted)
	require.NotNil(t, completed.NextGameNumber)
	assert.Equal(t, 2, *completed.NextGameNumber)

	// Side claims and ready flags reset for the new game.
	side := recvPayload[SideUpdatePayload](t, one, MessageTypeSideUpdate)
	assert.Nil(t, side.TeamOneSide)
	assert.Nil(t, side.TeamTwoSide)
	assert.False(t, side.TeamOneReady)
	assert.False(t, side.TeamTwoReady)

	room.syncState <- one
	sync := recvPayload[StateSyncPayload](t, one, MessageTypeStateSync)
	assert.Equal(t, 2, sync.Game.GameNumber)
	assert.Equal(t, domain.GameStatusPending, sync.Game.Status)
}

func TestRoom_FillAfterGameCompleted(t *testing.T) {
	room, one, two := newTestRoom(t, 3, 1)
	startDraft(t, room, one, two)

	// Expire the first step, then draft the rest normally.
	room.timerExpired <- 0
	recvMessage(t, one, MessageTypeStepChanged)
	for i := 1; i < domain.TotalSteps(); i++ {
		step := domain.DraftOrder[i]
		actor := one
		if step.Side == domain.SideRed {
			actor = two
		}
		room.lockIn <- &LockInRequest{Client: actor, ChampionID: fmt.Sprintf("Champ%d", i)}
		recvMessage(t, one, MessageTypeChampionLocked)
	}
	recvMessage(t, one, MessageTypeGameCompleted)
	drain(one)
	drain(two)

	// Game 2 is pending, but the unfilled slot of game 1 still takes a fill.
	room.beginFill <- &BeginFillRequest{Client: one, Kind: domain.ActionBan, SlotIndex: 0}
	room.confirmFill <- &ConfirmFillRequest{Client: one, ChampionID: "Sona"}
	filled := recvPayload[SlotFilledPayload](t, two, MessageTypeSlotFilled)
	assert.Equal(t, "Sona", filled.ChampionID)
	assert.Equal(t, domain.SideBlue, filled.Side)
}

func runFullDraft(t *testing.T, room *SeriesRoom, one, two *Client) {
	t.Helper()
	for i, step := range domain.DraftOrder {
		actor := one
		if step.Side == domain.SideRed {
			actor = two
		}
		room.lockIn <- &LockInRequest{Client: actor, ChampionID: fmt.Sprintf("Champ%d", i)}
		recvMessage(t, one, MessageTypeChampionLocked)
	}
}
