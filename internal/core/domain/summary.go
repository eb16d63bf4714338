package domain

import "github.com/shopspring/decimal"

// AccountSummary holds balance statistics across a user's accounts.
// All aggregates are zero-valued when the user has no accounts.
type AccountSummary struct {
	AccountCount   int64           `json:"accountCount"`
	TotalBalance   decimal.Decimal `json:"totalBalance"`
	AverageBalance decimal.Decimal `json:"averageBalance"`
	MaxBalance     decimal.Decimal `json:"maxBalance"`
	MinBalance     decimal.Decimal `json:"minBalance"`
}
