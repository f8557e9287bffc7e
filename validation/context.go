package validation

import "time"

// Periods begin in January 2024; anything earlier is a testing artifact and is
// clamped forward.
const firstPeriodYear = 2024

// ResolvePeriodContext resolves a requested year/month pair to the effective
// period year and month, and reports whether entries for that period may be
// created or updated. A zero year means "the current period". The now argument
// is the caller's clock; nothing here reads ambient time.
func ResolvePeriodContext(now time.Time, year, month int) (int, int, bool) {
	if year == 0 {
		return clampPeriodContext(now.Year(), int(now.Month()), true)
	}

	effMonth := month
	if effMonth == 0 {
		effMonth = 1
	}
	editable := year == now.Year() && effMonth == int(now.Month())
	if effMonth == 1 && now.Year() < firstPeriodYear {
		// Bootstrap allowance for exercising the app before the first period.
		editable = true
	}
	return clampPeriodContext(year, effMonth, editable)
}

func clampPeriodContext(year, month int, editable bool) (int, int, bool) {
	if year < firstPeriodYear {
		return firstPeriodYear, 1, true
	}
	return year, month, editable
}
