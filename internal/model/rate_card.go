package model

import "github.com/shopspring/decimal"

// RateCard maps a position to its hourly rate.
type RateCard struct {
	Position    string          `json:"position"`
	RatePerHour decimal.Decimal `json:"rate_per_hour"`
}
