package models

import "errors"

// Custom errors
var (
	ErrNotFound            = errors.New("record not found")
	ErrDuplicateKey        = errors.New("duplicate key violation")
	ErrFighterNameRequired = errors.New("fighter name is required")
	ErrNoOddsAvailable     = errors.New("no odds available for fight")
	ErrEmptyCandidatePool  = errors.New("empty parlay candidate pool")
	ErrStaleProfile        = errors.New("fighter profile is stale")
)
