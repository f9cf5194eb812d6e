package draft_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/domain"
	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/draft"
)

func TestBeginFill_RejectedWhilePending(t *testing.T) {
	g := draft.NewGame(uuid.New(), 1, domain.TeamOne, nil)
	err := g.BeginFill(domain.SideBlue, domain.ActionBan, 0)
	assert.ErrorIs(t, err, domain.ErrGameNotDrafting)
}

func TestBeginFill_OnlyUnfilledSlots(t *testing.T) {
	g := newDraftingGame(t, nil)

	// Slot not reached yet.
	err := g.BeginFill(domain.SideBlue, domain.ActionBan, 0)
	assert.ErrorIs(t, err, domain.ErrSlotNotFillable)

	// Slot holds a real champion.
	_, err = g.LockIn(domain.SideBlue, "Ahri")
	require.NoError(t, err)
	err = g.BeginFill(domain.SideBlue, domain.ActionBan, 0)
	assert.ErrorIs(t, err, domain.ErrSlotNotFillable)

	// Slot index out of range.
	err = g.BeginFill(domain.SideBlue, domain.ActionBan, domain.BansPerSide)
	assert.ErrorIs(t, err, domain.ErrSlotNotFillable)

	// Slot committed by timer expiry is fillable.
	_, advanced := g.ExpireStep(1)
	require.True(t, advanced)
	err = g.BeginFill(domain.SideRed, domain.ActionBan, 0)
	assert.NoError(t, err)
}

func TestConfirmFill_ValidatesLegality(t *testing.T) {
	g := newDraftingGame(t, map[string]bool{"Jinx": true})

	_, err := g.LockIn(domain.SideBlue, "Ahri")
	require.NoError(t, err)
	_, advanced := g.ExpireStep(1)
	require.True(t, advanced)

	require.NoError(t, g.BeginFill(domain.SideRed, domain.ActionBan, 0))

	// Already used in this game.
	_, err = g.ConfirmFill(domain.SideRed, "Ahri")
	assert.ErrorIs(t, err, domain.ErrInvalidChampion)

	// Fearless-restricted.
	_, err = g.ConfirmFill(domain.SideRed, "Jinx")
	assert.ErrorIs(t, err, domain.ErrInvalidChampion)

	// Sentinels can never be filled in.
	_, err = g.ConfirmFill(domain.SideRed, domain.SlotUnfilled)
	assert.ErrorIs(t, err, domain.ErrInvalidChampion)

	ft, err := g.ConfirmFill(domain.SideRed, "Zed")
	require.NoError(t, err)
	assert.Equal(t, domain.ActionBan, ft.Kind)
	assert.Equal(t, "Zed", g.RedBans[0])
	assert.Nil(t, g.PendingFill(domain.SideRed))
}

func TestConfirmFill_RequiresOpenScope(t *testing.T) {
	g := newDraftingGame(t, nil)
	_, err := g.ConfirmFill(domain.SideBlue, "Ahri")
	assert.ErrorIs(t, err, domain.ErrSlotNotFillable)
}

func TestCancelFill(t *testing.T) {
	g := newDraftingGame(t, nil)
	_, advanced := g.ExpireStep(0)
	require.True(t, advanced)

	require.NoError(t, g.BeginFill(domain.SideBlue, domain.ActionBan, 0))
	require.NotNil(t, g.PendingFill(domain.SideBlue))

	g.CancelFill(domain.SideBlue)
	assert.Nil(t, g.PendingFill(domain.SideBlue))

	_, err := g.ConfirmFill(domain.SideBlue, "Ahri")
	assert.ErrorIs(t, err, domain.ErrSlotNotFillable)
}

func TestFill_AllowedAfterCompletion(t *testing.T) {
	g := newDraftingGame(t, nil)

	_, advanced := g.ExpireStep(0)
	require.True(t, advanced)
	lockUntil(t, g, domain.TotalSteps()-1)
	step := g.ActiveStep()
	_, err := g.LockIn(step.Side, "LastChamp")
	require.NoError(t, err)
	require.Equal(t, domain.GameStatusCompleted, g.Status)

	require.NoError(t, g.BeginFill(domain.SideBlue, domain.ActionBan, 0))
	_, err = g.ConfirmFill(domain.SideBlue, "Ahri")
	require.NoError(t, err)
	assert.Equal(t, "Ahri", g.BlueBans[0])
}
