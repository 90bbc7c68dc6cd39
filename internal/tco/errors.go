package tco

import "errors"

var (
	ErrInvalidLifespan    = errors.New("useful_life_years must be positive")
	ErrNegativePrice      = errors.New("prices cannot be negative")
	ErrNegativeAnnualCost = errors.New("annual costs cannot be negative")
)
