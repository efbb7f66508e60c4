package stats

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodStarts are the inclusive lower bounds of the four reporting periods.
type PeriodStarts struct {
	Day   time.Time
	Week  time.Time
	Month time.Time
	Year  time.Time
}

// StartsAt computes period starts for now in now's location. Calendar
// arithmetic keeps midnight on DST changes.
func StartsAt(now time.Time, weekStart time.Weekday) PeriodStarts {
	loc := now.Location()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	daysIntoWeek := (int(now.Weekday()) - int(weekStart) + 7) % 7
	return PeriodStarts{
		Day:   day,
		Week:  day.AddDate(0, 0, -daysIntoWeek),
		Month: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc),
		Year:  time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc),
	}
}

// CalculateTotals sums records per period. Only the lower bound is checked,
// so records later than now are counted too.
func CalculateTotals(records []Record, now time.Time, weekStart time.Weekday) Totals {
	starts := StartsAt(now, weekStart)
	day, week := starts.Day.UnixMilli(), starts.Week.UnixMilli()
	month, year := starts.Month.UnixMilli(), starts.Year.UnixMilli()

	totals := Totals{Daily: decimal.Zero, Weekly: decimal.Zero, Monthly: decimal.Zero, Yearly: decimal.Zero}
	for _, r := range records {
		if r.Timestamp >= day {
			totals.Daily = totals.Daily.Add(r.Amount)
		}
		if r.Timestamp >= week {
			totals.Weekly = totals.Weekly.Add(r.Amount)
		}
		if r.Timestamp >= month {
			totals.Monthly = totals.Monthly.Add(r.Amount)
		}
		if r.Timestamp >= year {
			totals.Yearly = totals.Yearly.Add(r.Amount)
		}
	}
	return totals
}
