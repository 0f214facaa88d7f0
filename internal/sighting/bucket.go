package sighting

import (
	"fmt"
	"time"
)

// Bucketing conventions, applied consistently across statistics and
// forecasting:
//
//   - days are calendar days in UTC, keyed "2006-01-02"
//   - weeks are ISO-8601 weeks starting Monday, keyed "2006-W02"
//   - months are calendar months, keyed "2006-01"
//
// Every bucketing function zero-fills periods without sightings between the
// first and last observed date, so averages and trend fits are not biased by
// silently skipping empty periods.

// DailyBuckets groups records into contiguous per-day counts.
func DailyBuckets(records []Record) []Bucket {
	return fillBuckets(records, dayKey, func(t time.Time) time.Time {
		return DateOnly(t)
	}, func(t time.Time) time.Time {
		return t.AddDate(0, 0, 1)
	})
}

// WeeklyBuckets groups records into contiguous ISO-week counts.
func WeeklyBuckets(records []Record) []Bucket {
	return fillBuckets(records, isoWeekKey, mondayOfWeek, func(t time.Time) time.Time {
		return t.AddDate(0, 0, 7)
	})
}

// MonthlyBuckets groups records into contiguous calendar-month counts.
func MonthlyBuckets(records []Record) []Bucket {
	return fillBuckets(records, monthKey, firstOfMonth, func(t time.Time) time.Time {
		return t.AddDate(0, 1, 0)
	})
}

// fillBuckets walks period starts from the period containing the earliest
// record to the period containing the latest, emitting one bucket per
// period. Records are assumed non-empty checks are the caller's concern;
// an empty input yields nil.
func fillBuckets(records []Record, key func(time.Time) string, align func(time.Time) time.Time, next func(time.Time) time.Time) []Bucket {
	if len(records) == 0 {
		return nil
	}

	counts := make(map[string]int, len(records))
	minDate := DateOnly(records[0].Date)
	maxDate := minDate
	for _, r := range records {
		d := DateOnly(r.Date)
		counts[key(d)]++
		if d.Before(minDate) {
			minDate = d
		}
		if d.After(maxDate) {
			maxDate = d
		}
	}

	var buckets []Bucket
	last := align(maxDate)
	for cursor := align(minDate); !cursor.After(last); cursor = next(cursor) {
		k := key(cursor)
		buckets = append(buckets, Bucket{Period: k, Count: counts[k]})
	}
	return buckets
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func isoWeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

// mondayOfWeek returns the Monday of the ISO week containing t.
func mondayOfWeek(t time.Time) time.Time {
	d := DateOnly(t)
	weekday := int(d.Weekday())
	if weekday == 0 { // time.Sunday
		weekday = 7
	}
	return d.AddDate(0, 0, -(weekday - 1))
}

func firstOfMonth(t time.Time) time.Time {
	d := DateOnly(t)
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}
