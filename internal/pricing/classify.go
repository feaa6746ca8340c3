package pricing

import (
	"errors"
	"time"
)

var ErrInvalidWindow = errors.New("booking window end must be after start")

// TariffMode determines whether a booking is billed by the hour or by the day.
type TariffMode string

const (
	ModeHourly TariffMode = "hourly"
	ModeDaily  TariffMode = "daily"
)

// Classification is the result of classifying a booking window: the tariff
// mode and the number of billable units in that mode.
type Classification struct {
	Mode  TariffMode
	Units int64
}

// Classify decides the tariff mode for the window [start, end) and computes
// the billable unit count.
//
// Windows shorter than 24 hours are billed hourly, everything else daily.
// The 24h boundary is a tariff-switch policy: a 23-hour booking is billed
// hourly even when that exceeds the day rate. Partial units are floored but
// never below one, so every booking is charged at least one unit.
func Classify(start, end time.Time) (Classification, error) {
	delta := end.Sub(start)
	if delta <= 0 {
		return Classification{}, ErrInvalidWindow
	}

	if delta < 24*time.Hour {
		units := int64(delta / time.Hour)
		if units < 1 {
			units = 1
		}
		return Classification{Mode: ModeHourly, Units: units}, nil
	}

	units := int64(delta / (24 * time.Hour))
	if units < 1 {
		units = 1
	}
	return Classification{Mode: ModeDaily, Units: units}, nil
}
