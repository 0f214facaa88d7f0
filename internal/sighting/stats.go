package sighting

import (
	"time"

	"github.com/montanaflynn/stats"
)

// Aggregate computes the statistics view over an already-filtered record
// set. The record slice must be ordered by date ascending, which is the
// repository's ByFilter contract. The comparison against the preceding
// window needs data outside the filtered set and is attached separately by
// the Service.
//
// Averages are means over the zero-filled bucket counts, so a span with
// empty weeks is not biased upward by skipping them.
func Aggregate(records []Record, now time.Time) Statistics {
	if len(records) == 0 {
		return Statistics{}
	}

	weekly := WeeklyBuckets(records)
	monthly := MonthlyBuckets(records)

	pastYearCutoff := DateOnly(now).AddDate(0, 0, -365)
	pastYear := 0
	for _, r := range records {
		if !DateOnly(r.Date).Before(pastYearCutoff) {
			pastYear++
		}
	}

	return Statistics{
		TotalSightings:    len(records),
		OldestSighting:    DateOnly(records[0].Date),
		NewestSighting:    DateOnly(records[len(records)-1].Date),
		WeeklyCounts:      weekly,
		MonthlyCounts:     monthly,
		AverageWeekly:     bucketMean(weekly),
		AverageMonthly:    bucketMean(monthly),
		SightingsPastYear: pastYear,
	}
}

func bucketMean(buckets []Bucket) float64 {
	if len(buckets) == 0 {
		return 0
	}
	counts := make(stats.Float64Data, len(buckets))
	for i, b := range buckets {
		counts[i] = float64(b.Count)
	}
	mean, err := stats.Mean(counts)
	if err != nil {
		return 0
	}
	return mean
}
