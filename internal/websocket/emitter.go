package websocket

import (
	"encoding/json"

	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/domain"
)

// EventEmitter is the single broadcast path for a series room. Everything
// except TimerTick is called from the room goroutine; TimerTick arrives from
// the ticker goroutine and goes through the broadcast channel instead.
type EventEmitter struct {
	room *SeriesRoom
}

func NewEventEmitter(room *SeriesRoom) *EventEmitter {
	return &EventEmitter{room: room}
}

// Broadcast sends a message to all clients in the room. Room goroutine only.
func (e *EventEmitter) Broadcast(msg *Message) {
	data, _ := json.Marshal(msg)
	for client := range e.room.clients {
		e.trySend(client, data)
	}
}

// BroadcastAsync routes a message through the room's broadcast channel so it
// can be sent from outside the room goroutine. Dropped if the room stopped.
func (e *EventEmitter) BroadcastAsync(msg *Message) {
	select {
	case e.room.broadcast <- msg:
	case <-e.room.done:
	}
}

// SendTo sends a message to a specific client.
func (e *EventEmitter) SendTo(client *Client, msg *Message) {
	client.Send(msg)
}

// trySend attempts to send to a client, safely handling closed channels.
func (e *EventEmitter) trySend(client *Client, data []byte) {
	defer func() {
		if recover() != nil {
			// Channel closed, client is disconnecting - skip silently
		}
	}()

	select {
	case client.send <- data:
	default:
		// Buffer full, skip
	}
}

func (e *EventEmitter) PlayerUpdate(team domain.TeamSlot, displayName, action string) {
	msg, _ := NewMessage(MessageTypePlayerUpdate, PlayerUpdatePayload{
		Team:        team,
		DisplayName: displayName,
		Action:      action,
	})
	e.Broadcast(msg)
}

func (e *EventEmitter) SideUpdate(s *SideUpdatePayload) {
	msg, _ := NewMessage(MessageTypeSideUpdate, s)
	e.Broadcast(msg)
}

func (e *EventEmitter) GameStarted(gameNumber int, blueSideTeam domain.TeamSlot, step domain.DraftStep, timerMs int) {
	msg, _ := NewMessage(MessageTypeGameStarted, GameStartedPayload{
		GameNumber:       gameNumber,
		BlueSideTeam:     blueSideTeam,
		StepIndex:        0,
		Side:             step.Side,
		Kind:             step.Kind,
		TimerRemainingMs: timerMs,
	})
	e.Broadcast(msg)
}

func (e *EventEmitter) ChampionHovered(side domain.Side, championID *string) {
	msg, _ := NewMessage(MessageTypeChampionHovered, ChampionHoveredPayload{
		Side:       side,
		ChampionID: championID,
	})
	e.Broadcast(msg)
}

func (e *EventEmitter) ChampionLocked(stepIndex int, step domain.DraftStep, championID string, byTimeout bool) {
	msg, _ := NewMessage(MessageTypeChampionLocked, ChampionLockedPayload{
		StepIndex:  stepIndex,
		Side:       step.Side,
		Kind:       step.Kind,
		SlotIndex:  step.SlotIndex,
		ChampionID: championID,
		ByTimeout:  byTimeout,
	})
	e.Broadcast(msg)
}

func (e *EventEmitter) StepChanged(stepIndex int, step domain.DraftStep, timerMs int) {
	msg, _ := NewMessage(MessageTypeStepChanged, StepChangedPayload{
		StepIndex:        stepIndex,
		Side:             step.Side,
		Kind:             step.Kind,
		TimerRemainingMs: timerMs,
	})
	e.Broadcast(msg)
}

func (e *EventEmitter) TimerTick(remainingMs int) {
	msg, _ := NewMessage(MessageTypeTimerTick, TimerTickPayload{
		RemainingMs: remainingMs,
	})
	e.BroadcastAsync(msg)
}

func (e *EventEmitter) SlotFilled(target domain.Side, kind domain.ActionKind, slotIndex int, championID string) {
	msg, _ := NewMessage(MessageTypeSlotFilled, SlotFilledPayload{
		Side:       target,
		Kind:       kind,
		SlotIndex:  slotIndex,
		ChampionID: championID,
	})
	e.Broadcast(msg)
}

func (e *EventEmitter) GameCompleted(p *GameCompletedPayload) {
	msg, _ := NewMessage(MessageTypeGameCompleted, p)
	e.Broadcast(msg)
}

func (e *EventEmitter) SeriesCompleted() {
	msg, _ := NewMessage(MessageTypeSeriesCompleted, nil)
	e.Broadcast(msg)
}

func (e *EventEmitter) SendError(client *Client, code, message string) {
	client.sendError(code, message)
}
