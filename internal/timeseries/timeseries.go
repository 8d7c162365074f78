// Package timeseries turns the raw portfolio value history into chartable
// bucketed series: daily, weekly (ISO weeks starting Monday), monthly, and
// yearly views, each truncated to the most recent buckets.
package timeseries

import (
	"fmt"
	"sort"
	"time"
)

// HistoryPoint is one raw observation: the portfolio's total USD value on
// a calendar date ("2006-01-02").
type HistoryPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Point is one chart point. The label is purely cosmetic; ordering comes
// from the aggregation, oldest first.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type observation struct {
	at    time.Time
	value float64
}

// Aggregate buckets the history by the given period. Within a bucket the
// chronologically last observation wins; points with malformed dates are
// dropped. The result keeps only the most recent buckets for the period,
// oldest first.
func Aggregate(points []HistoryPoint, period Period) []Point {
	obs := make([]observation, 0, len(points))
	for _, p := range points {
		t, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			continue
		}
		obs = append(obs, observation{at: t, value: p.Value})
	}

	sort.SliceStable(obs, func(i, j int) bool { return obs[i].at.Before(obs[j].at) })

	var order []string
	buckets := make(map[string]Point)
	for _, o := range obs {
		key, label := bucketKey(o.at, period)
		if _, seen := buckets[key]; !seen {
			order = append(order, key)
		}
		// Later observations overwrite earlier ones in the same bucket.
		buckets[key] = Point{Label: label, Value: o.value}
	}

	out := make([]Point, 0, len(order))
	for _, key := range order {
		out = append(out, buckets[key])
	}

	if max := period.maxPoints(); len(out) > max {
		out = out[len(out)-max:]
	}
	return out
}

func bucketKey(t time.Time, period Period) (key, label string) {
	switch period {
	case Week:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week), weekRangeLabel(t)
	case Month:
		return fmt.Sprintf("%d-%02d", t.Year(), int(t.Month())), t.Format("Jan '06")
	case Year:
		return t.Format("2006"), t.Format("2006")
	default:
		return t.Format("2006-01-02"), t.Format("02/01")
	}
}

// weekRangeLabel renders the Monday–Sunday span containing t, e.g.
// "02-08/03" for the week of 2 March.
func weekRangeLabel(t time.Time) string {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday closes the ISO week
	}
	start := t.AddDate(0, 0, 1-weekday)
	end := start.AddDate(0, 0, 6)
	return fmt.Sprintf("%02d-%02d/%02d", start.Day(), end.Day(), int(end.Month()))
}
