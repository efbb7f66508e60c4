package stats

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

const week = 7 * 24 * time.Hour

// DailyTrend returns the last n calendar days ending today, oldest first.
// Every day is present, days without records are zero.
func DailyTrend(records []Record, now time.Time, n int) []TrendPoint {
	if n <= 0 {
		return []TrendPoint{}
	}
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	points := make([]TrendPoint, 0, n)
	index := make(map[string]int, n)
	for i := n - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		index[day.Format(time.DateOnly)] = len(points)
		points = append(points, TrendPoint{
			Label:  fmt.Sprintf("%d/%d", day.Day(), int(day.Month())),
			Start:  day,
			Amount: decimal.Zero,
		})
	}

	for _, r := range records {
		if i, ok := index[r.Time().In(loc).Format(time.DateOnly)]; ok {
			points[i].Amount = points[i].Amount.Add(r.Amount)
		}
	}
	return points
}

// WeeklyTrend returns n trailing 7-day windows measured back from now, oldest
// first and labelled W1..Wn. A record falls in window floor((now-ts)/7d);
// records older than n windows or later than now are left out.
func WeeklyTrend(records []Record, now time.Time, n int) []TrendPoint {
	if n <= 0 {
		return []TrendPoint{}
	}
	points := make([]TrendPoint, n)
	for k := 0; k < n; k++ {
		points[n-1-k] = TrendPoint{
			Label:  fmt.Sprintf("W%d", n-k),
			Start:  now.Add(-time.Duration(k+1) * week),
			Amount: decimal.Zero,
		}
	}

	nowMs := now.UnixMilli()
	weekMs := week.Milliseconds()
	for _, r := range records {
		elapsed := nowMs - r.Timestamp
		if elapsed < 0 {
			continue
		}
		k := int(elapsed / weekMs)
		if k > n-1 {
			continue
		}
		points[n-1-k].Amount = points[n-1-k].Amount.Add(r.Amount)
	}
	return points
}

type monthKey struct {
	year  int
	month time.Month
}

// MonthlyTrend groups records by calendar month in location and keeps the n
// most recent months that have records, in chronological order. Months
// without records are not filled in.
func MonthlyTrend(records []Record, location *time.Location, n int) []TrendPoint {
	if n <= 0 {
		return []TrendPoint{}
	}
	if location == nil {
		location = time.Local
	}
	sums := make(map[monthKey]decimal.Decimal)
	for _, r := range records {
		t := r.Time().In(location)
		key := monthKey{t.Year(), t.Month()}
		sums[key] = sums[key].Add(r.Amount)
	}

	keys := make([]monthKey, 0, len(sums))
	for key := range sums {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b monthKey) int {
		if a.year != b.year {
			return a.year - b.year
		}
		return int(a.month) - int(b.month)
	})
	if len(keys) > n {
		keys = keys[len(keys)-n:]
	}

	points := make([]TrendPoint, 0, len(keys))
	for _, key := range keys {
		points = append(points, TrendPoint{
			Label:  fmt.Sprintf("%d-%d", key.year, int(key.month)),
			Start:  time.Date(key.year, key.month, 1, 0, 0, 0, 0, location),
			Amount: sums[key],
		})
	}
	return points
}
