package draft

import (
	"github.com/google/uuid"

	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/domain"
)

// Session is the live per-series state: side claims and ready flags for the
// game currently being set up. Like Game, it relies on the caller (the series
// room goroutine) to serialize mutation.
type Session struct {
	ID           uuid.UUID
	PlannedGames int
	DraftMode    domain.DraftMode
	Status       domain.SeriesStatus

	TeamOneSide  *domain.Side
	TeamTwoSide  *domain.Side
	TeamOneReady bool
	TeamTwoReady bool
}

// NewSession creates lobby-state session data. Game 1 sides come from the
// series creator (team1 blue, team2 red); the side-selection protocol governs
// later games.
func NewSession(id uuid.UUID, plannedGames int, mode domain.DraftMode) *Session {
	blue, red := domain.SideBlue, domain.SideRed
	return &Session{
		ID:           id,
		PlannedGames: plannedGames,
		DraftMode:    mode,
		Status:       domain.SeriesStatusLobby,
		TeamOneSide:  &blue,
		TeamTwoSide:  &red,
	}
}

// SideOf returns the team's current side claim, or nil.
func (s *Session) SideOf(slot domain.TeamSlot) *domain.Side {
	if slot == domain.TeamOne {
		return s.TeamOneSide
	}
	return s.TeamTwoSide
}

// Ready returns the team's ready flag.
func (s *Session) Ready(slot domain.TeamSlot) bool {
	if slot == domain.TeamOne {
		return s.TeamOneReady
	}
	return s.TeamTwoReady
}

// SelectSide claims a side for the team. Rejected when the other team already
// holds that side. Re-claiming the side a team already holds is a no-op.
func (s *Session) SelectSide(slot domain.TeamSlot, side domain.Side) error {
	if side != domain.SideBlue && side != domain.SideRed {
		return domain.ErrInvalidSide
	}
	other := s.SideOf(otherTeam(slot))
	if other != nil && *other == side {
		return domain.ErrSideAlreadyClaimed
	}
	claimed := side
	if slot == domain.TeamOne {
		s.TeamOneSide = &claimed
	} else {
		s.TeamTwoSide = &claimed
	}
	return nil
}

// ClearSide releases the team's own claim and drops its ready flag, since a
// ready flag is only honorable with a side selected.
func (s *Session) ClearSide(slot domain.TeamSlot) {
	if slot == domain.TeamOne {
		s.TeamOneSide = nil
		s.TeamOneReady = false
	} else {
		s.TeamTwoSide = nil
		s.TeamTwoReady = false
	}
}

// SetReady toggles the team's ready flag. Readying up requires a claimed
// side; un-readying is always allowed.
func (s *Session) SetReady(slot domain.TeamSlot, ready bool) error {
	if ready && s.SideOf(slot) == nil {
		return domain.ErrSideNotSelected
	}
	if slot == domain.TeamOne {
		s.TeamOneReady = ready
	} else {
		s.TeamTwoReady = ready
	}
	return nil
}

// CanStartGame reports whether drafting may begin: both captains ready and
// both sides claimed.
func (s *Session) CanStartGame() bool {
	return s.TeamOneReady && s.TeamTwoReady &&
		s.TeamOneSide != nil && s.TeamTwoSide != nil
}

// BlueSideTeam returns which team currently claims blue. Only meaningful when
// sides are resolved.
func (s *Session) BlueSideTeam() domain.TeamSlot {
	if s.TeamOneSide != nil && *s.TeamOneSide == domain.SideBlue {
		return domain.TeamOne
	}
	return domain.TeamTwo
}

// ResetForNextGame clears side claims and ready flags ahead of the next
// game's side-selection and ready-up handshakes.
func (s *Session) ResetForNextGame() {
	s.TeamOneSide = nil
	s.TeamTwoSide = nil
	s.TeamOneReady = false
	s.TeamTwoReady = false
}

func otherTeam(slot domain.TeamSlot) domain.TeamSlot {
	if slot == domain.TeamOne {
		return domain.TeamTwo
	}
	return domain.TeamOne
}
