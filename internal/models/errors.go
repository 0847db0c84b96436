package models

import "errors"

// Custom errors
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key violation")
	ErrInvalidID      = errors.New("invalid ID format")
	ErrUnknownTeam    = errors.New("unknown team code")
	ErrNoOddsForGame  = errors.New("no odds stored for game")
	ErrGameNotFinal   = errors.New("game has no final result")
	ErrInvalidContext = errors.New("invalid contextual input")
)
