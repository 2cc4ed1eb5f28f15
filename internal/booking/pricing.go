package booking

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Price sums the nightly rate over [checkIn, checkOut), adding the weekend
// surcharge to Friday and Saturday nights, then rounds to cents half away
// from zero.
func Price(checkIn, checkOut time.Time, pricePerNight decimal.Decimal, s Settings) decimal.Decimal {
	surcharge := decimal.NewFromInt(1).Add(s.WeekendSurchargePercent.Div(hundred))

	total := decimal.Zero
	for d := checkIn; d.Before(checkOut); d = d.AddDate(0, 0, 1) {
		nightly := pricePerNight
		if s.EnableWeekendSurcharge && isWeekendNight(d) {
			nightly = nightly.Mul(surcharge)
		}
		total = total.Add(nightly)
	}
	return total.Round(2)
}

func isWeekendNight(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Friday || wd == time.Saturday
}
