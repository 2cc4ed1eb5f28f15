// Package booking holds the reservation rules: stay validation, the
// overlap predicate and nightly pricing. Everything here is pure.
package booking

import "github.com/shopspring/decimal"

type Settings struct {
	MinNights               int
	MaxNights               int
	EnableWeekendSurcharge  bool
	WeekendSurchargePercent decimal.Decimal
}

func DefaultSettings() Settings {
	return Settings{
		MinNights:               1,
		MaxNights:               30,
		EnableWeekendSurcharge:  true,
		WeekendSurchargePercent: decimal.NewFromInt(10),
	}
}
