package models

import "errors"

// Custom errors
var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicateKey  = errors.New("duplicate key violation")
	ErrInvalidID     = errors.New("invalid ID format")
	ErrUnknownSport  = errors.New("unknown sport")
	ErrUnknownMarket = errors.New("unknown prop market")
)
