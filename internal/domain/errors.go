package domain

import "errors"

// Draft engine errors. Every rejection leaves game and series state unchanged.
var (
	ErrNotYourTurn        = errors.New("not your turn")
	ErrInvalidChampion    = errors.New("champion already used or restricted")
	ErrGameNotDrafting    = errors.New("game is not drafting")
	ErrSlotNotFillable    = errors.New("slot is not fillable")
	ErrSideAlreadyClaimed = errors.New("side already claimed by the other team")
)

// Series setup errors.
var (
	ErrSeriesNotFound   = errors.New("series not found")
	ErrTeamSlotTaken    = errors.New("team slot already has a captain")
	ErrInvalidSide      = errors.New("side must be blue or red")
	ErrSideNotSelected  = errors.New("team must select a side before readying")
	ErrEvenSeriesLength = errors.New("planned games must be odd")
)
