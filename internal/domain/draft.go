package domain

type Side string

const (
	SideBlue Side = "blue"
	SideRed  Side = "red"
)

type ActionKind string

const (
	ActionBan  ActionKind = "ban"
	ActionPick ActionKind = "pick"
)

// TeamSlot identifies one of the two teams in a series, independent of which
// physical side they occupy in a given game.
type TeamSlot string

const (
	TeamOne TeamSlot = "team1"
	TeamTwo TeamSlot = "team2"
)

type DraftMode string

const (
	DraftModeNormal       DraftMode = "normal"
	DraftModeFearless     DraftMode = "fearless"
	DraftModeFullFearless DraftMode = "full_fearless"
)

const (
	BansPerSide  = 5
	PicksPerSide = 5
)

// Slot sentinels. Champion ids are TitleCase ("Ahri"), sentinels are lowercase
// so the two value spaces cannot collide.
const (
	// SlotEmpty marks a slot whose step the pointer has not reached yet.
	SlotEmpty = ""
	// SlotNoBan marks a ban slot the acting side explicitly skipped.
	SlotNoBan = "none"
	// SlotUnfilled marks a slot committed by timer expiry with no selection.
	// It is the only slot value fill recovery may overwrite.
	SlotUnfilled = "unfilled"
)

// IsSentinel reports whether v is a slot marker rather than a champion id.
func IsSentinel(v string) bool {
	return v == SlotEmpty || v == SlotNoBan || v == SlotUnfilled
}

// DraftStep is one entry of the draft order: which side acts, what they do,
// and which of their slots the result lands in.
type DraftStep struct {
	Side      Side
	Kind      ActionKind
	SlotIndex int
}

// DraftOrder is the standard competitive sequence: three bans per side,
// a partial pick rotation, two more bans per side, the remaining picks.
var DraftOrder = []DraftStep{
	// Ban phase 1
	{SideBlue, ActionBan, 0},
	{SideRed, ActionBan, 0},
	{SideBlue, ActionBan, 1},
	{SideRed, ActionBan, 1},
	{SideBlue, ActionBan, 2},
	{SideRed, ActionBan, 2},
	// Pick phase 1 (B, RR, BB, R)
	{SideBlue, ActionPick, 0},
	{SideRed, ActionPick, 0},
	{SideRed, ActionPick, 1},
	{SideBlue, ActionPick, 1},
	{SideBlue, ActionPick, 2},
	{SideRed, ActionPick, 2},
	// Ban phase 2 (R, B, R, B)
	{SideRed, ActionBan, 3},
	{SideBlue, ActionBan, 3},
	{SideRed, ActionBan, 4},
	{SideBlue, ActionBan, 4},
	// Pick phase 2 (R, BB, R)
	{SideRed, ActionPick, 3},
	{SideBlue, ActionPick, 3},
	{SideBlue, ActionPick, 4},
	{SideRed, ActionPick, 4},
}

// StepAt returns the draft step at the given index, or nil when the index is
// outside the order table.
func StepAt(index int) *DraftStep {
	if index < 0 || index >= len(DraftOrder) {
		return nil
	}
	return &DraftOrder[index]
}

// TotalSteps returns the length of the draft order table.
func TotalSteps() int {
	return len(DraftOrder)
}
