package draft

import "github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/domain"

// FillTarget is one slot a captain has opened for out-of-order correction.
type FillTarget struct {
	Side      domain.Side
	Kind      domain.ActionKind
	SlotIndex int
}

// BeginFill opens a fill scope for one of the caller's own slots. The slot
// must currently hold the unfilled sentinel, and the game must be drafting or
// completed. At most one fill is open per side; beginning a new one replaces it.
func (g *Game) BeginFill(side domain.Side, kind domain.ActionKind, index int) error {
	if g.Status != domain.GameStatusDrafting && g.Status != domain.GameStatusCompleted {
		return domain.ErrGameNotDrafting
	}
	if !g.fillable(side, kind, index) {
		return domain.ErrSlotNotFillable
	}
	g.pendingFills[side] = &FillTarget{Side: side, Kind: kind, SlotIndex: index}
	return nil
}

// ConfirmFill validates championID against the same legality rules as LockIn
// and writes it into the side's open fill target. The step pointer is never
// touched. Returns the filled target.
func (g *Game) ConfirmFill(side domain.Side, championID string) (*FillTarget, error) {
	ft := g.pendingFills[side]
	if ft == nil {
		return nil, domain.ErrSlotNotFillable
	}
	if !g.fillable(ft.Side, ft.Kind, ft.SlotIndex) {
		delete(g.pendingFills, side)
		return nil, domain.ErrSlotNotFillable
	}
	if err := g.legalChampion(championID); err != nil {
		return nil, err
	}
	g.slots(ft.Side, ft.Kind)[ft.SlotIndex] = championID
	delete(g.pendingFills, side)
	return ft, nil
}

// CancelFill discards the side's open fill scope, if any.
func (g *Game) CancelFill(side domain.Side) {
	delete(g.pendingFills, side)
}

// PendingFill returns the side's open fill target, or nil.
func (g *Game) PendingFill(side domain.Side) *FillTarget {
	return g.pendingFills[side]
}

func (g *Game) fillable(side domain.Side, kind domain.ActionKind, index int) bool {
	arr := g.slots(side, kind)
	if index < 0 || index >= len(arr) {
		return false
	}
	return arr[index] == domain.SlotUnfilled
}
