package draft

import (
	"time"

	"github.com/google/uuid"

	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/domain"
)

// Game is the live, server-owned state of one draft. All mutating methods
// validate first and apply second, so a rejected call never changes state.
// Callers are expected to serialize access (the series room goroutine).
type Game struct {
	ID           uuid.UUID
	GameNumber   int
	Status       domain.GameStatus
	CurrentStep  int // -1 until drafting starts
	BlueSideTeam domain.TeamSlot

	BlueBans  []string
	RedBans   []string
	BluePicks []string
	RedPicks  []string

	// Restricted is the fearless set computed from prior games of the
	// series. Fixed at game creation; consulted by LockIn and ConfirmFill.
	Restricted map[string]bool

	StartedAt   *time.Time
	CompletedAt *time.Time

	pendingFills map[domain.Side]*FillTarget
}

// NewGame creates a pending game with all slots empty.
func NewGame(id uuid.UUID, gameNumber int, blueSideTeam domain.TeamSlot, restricted map[string]bool) *Game {
	if restricted == nil {
		restricted = map[string]bool{}
	}
	return &Game{
		ID:           id,
		GameNumber:   gameNumber,
		Status:       domain.GameStatusPending,
		CurrentStep:  -1,
		BlueSideTeam: blueSideTeam,
		BlueBans:     emptySlots(domain.BansPerSide),
		RedBans:      emptySlots(domain.BansPerSide),
		BluePicks:    emptySlots(domain.PicksPerSide),
		RedPicks:     emptySlots(domain.PicksPerSide),
		Restricted:   restricted,
		pendingFills: make(map[domain.Side]*FillTarget),
	}
}

func emptySlots(n int) []string {
	s := make([]string, n)
	for i := range s {
		s[i] = domain.SlotEmpty
	}
	return s
}

// TeamOnSide returns which team occupies the given side in this game.
func (g *Game) TeamOnSide(side domain.Side) domain.TeamSlot {
	if side == domain.SideBlue {
		return g.BlueSideTeam
	}
	if g.BlueSideTeam == domain.TeamOne {
		return domain.TeamTwo
	}
	return domain.TeamOne
}

// ActiveStep resolves the current turn: nil when the game is not drafting or
// the step pointer is out of range.
func (g *Game) ActiveStep() *domain.DraftStep {
	if g.Status != domain.GameStatusDrafting {
		return nil
	}
	return domain.StepAt(g.CurrentStep)
}

// Start transitions pending -> drafting and places the pointer on step 0.
func (g *Game) Start() error {
	if g.Status != domain.GameStatusPending {
		return domain.ErrGameNotDrafting
	}
	g.Status = domain.GameStatusDrafting
	g.CurrentStep = 0
	now := time.Now()
	g.StartedAt = &now
	return nil
}

// LockIn commits championID (or domain.SlotNoBan during a ban step) into the
// slot of the current step and advances the pointer. Returns the step that
// was committed.
func (g *Game) LockIn(side domain.Side, championID string) (*domain.DraftStep, error) {
	step := g.ActiveStep()
	if step == nil {
		return nil, domain.ErrGameNotDrafting
	}
	if side != step.Side {
		return nil, domain.ErrNotYourTurn
	}
	if championID == domain.SlotNoBan {
		if step.Kind != domain.ActionBan {
			return nil, domain.ErrInvalidChampion
		}
	} else if err := g.legalChampion(championID); err != nil {
		return nil, err
	}

	g.slots(step.Side, step.Kind)[step.SlotIndex] = championID
	g.advance()
	return step, nil
}

// ExpireStep commits domain.SlotUnfilled for the given step through the same
// advancement path as LockIn. It reports whether the pointer moved: a stale
// stepIndex (already advanced past) or a non-drafting game is a no-op, which
// makes duplicate expiry signals from the scheduler harmless.
func (g *Game) ExpireStep(stepIndex int) (*domain.DraftStep, bool) {
	if g.Status != domain.GameStatusDrafting || stepIndex != g.CurrentStep {
		return nil, false
	}
	step := domain.StepAt(stepIndex)
	if step == nil {
		return nil, false
	}
	g.slots(step.Side, step.Kind)[step.SlotIndex] = domain.SlotUnfilled
	g.advance()
	return step, true
}

func (g *Game) advance() {
	g.CurrentStep++
	if g.CurrentStep >= domain.TotalSteps() {
		g.Status = domain.GameStatusCompleted
		now := time.Now()
		g.CompletedAt = &now
	}
}

// Cancel aborts the game in any non-completed state.
func (g *Game) Cancel() {
	if g.Status != domain.GameStatusCompleted {
		g.Status = domain.GameStatusCancelled
	}
}

func (g *Game) slots(side domain.Side, kind domain.ActionKind) []string {
	switch {
	case side == domain.SideBlue && kind == domain.ActionBan:
		return g.BlueBans
	case side == domain.SideRed && kind == domain.ActionBan:
		return g.RedBans
	case side == domain.SideBlue && kind == domain.ActionPick:
		return g.BluePicks
	default:
		return g.RedPicks
	}
}

// legalChampion rejects sentinels, champions already in any slot of this
// game, and champions in the fearless set.
func (g *Game) legalChampion(championID string) error {
	if domain.IsSentinel(championID) {
		return domain.ErrInvalidChampion
	}
	if g.championUsed(championID) {
		return domain.ErrInvalidChampion
	}
	if g.Restricted[championID] {
		return domain.ErrInvalidChampion
	}
	return nil
}

func (g *Game) championUsed(championID string) bool {
	for _, arr := range [][]string{g.BlueBans, g.RedBans, g.BluePicks, g.RedPicks} {
		for _, id := range arr {
			if id == championID {
				return true
			}
		}
	}
	return false
}
