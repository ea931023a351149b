package domain

import "errors"

// Domain errors
var (
	ErrTableNotFound        = errors.New("table not found")
	ErrTableFull            = errors.New("table is full")
	ErrNotEnoughPlayers     = errors.New("not enough players to start")
	ErrNoCategoriesSelected = errors.New("no categories selected")
	ErrUnknownCategory      = errors.New("unknown category")
	ErrNoWordsAvailable     = errors.New("no words available in selected categories")
	ErrInvalidTraitorCount  = errors.New("invalid traitor count")
	ErrInvalidPhase         = errors.New("invalid action for current phase")
	ErrInvalidTransition    = errors.New("invalid phase transition")
	ErrPlayerNotFound       = errors.New("player not found")
	ErrDuplicatePlayer      = errors.New("player already at the table")
	ErrEmptyName            = errors.New("name cannot be empty")
	ErrNameTooLong          = errors.New("name is too long")
)
