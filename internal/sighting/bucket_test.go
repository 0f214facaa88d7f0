package sighting

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func recordsOn(dates ...time.Time) []Record {
	out := make([]Record, 0, len(dates))
	for i, d := range dates {
		out = append(out, Record{ID: string(rune('a' + i)), Date: d, Location: "Utrecht", Species: "Castor Bean Tick"})
	}
	return out
}

func TestWeeklyBucketsZeroFillAndOrder(t *testing.T) {
	// Two sightings three ISO weeks apart; the week in between must be
	// present with a zero count.
	records := recordsOn(
		date(2025, time.March, 3),  // Monday, 2025-W10
		date(2025, time.March, 17), // Monday, 2025-W12
	)

	buckets := WeeklyBuckets(records)
	if len(buckets) != 3 {
		t.Fatalf("expected 3 contiguous weekly buckets, got %d: %+v", len(buckets), buckets)
	}
	want := []Bucket{
		{Period: "2025-W10", Count: 1},
		{Period: "2025-W11", Count: 0},
		{Period: "2025-W12", Count: 1},
	}
	for i, b := range buckets {
		if b != want[i] {
			t.Fatalf("bucket %d = %+v, want %+v", i, b, want[i])
		}
	}
}

func TestWeeksStartOnMonday(t *testing.T) {
	// Sunday 2025-03-09 still belongs to the week that started Monday
	// 2025-03-03 under the ISO convention.
	records := recordsOn(
		date(2025, time.March, 3), // Monday
		date(2025, time.March, 9), // Sunday, same ISO week
	)
	buckets := WeeklyBuckets(records)
	if len(buckets) != 1 {
		t.Fatalf("expected a single ISO week, got %d buckets: %+v", len(buckets), buckets)
	}
	if buckets[0].Period != "2025-W10" || buckets[0].Count != 2 {
		t.Fatalf("bucket = %+v, want 2025-W10 with count 2", buckets[0])
	}
}

func TestMonthlyBucketsSpanYearBoundary(t *testing.T) {
	records := recordsOn(
		date(2024, time.November, 20),
		date(2025, time.January, 5),
	)
	buckets := MonthlyBuckets(records)
	want := []Bucket{
		{Period: "2024-11", Count: 1},
		{Period: "2024-12", Count: 0},
		{Period: "2025-01", Count: 1},
	}
	if len(buckets) != len(want) {
		t.Fatalf("expected %d monthly buckets, got %d: %+v", len(want), len(buckets), buckets)
	}
	for i, b := range buckets {
		if b != want[i] {
			t.Fatalf("bucket %d = %+v, want %+v", i, b, want[i])
		}
	}
}

func TestBucketPartitionLaw(t *testing.T) {
	// The sum of weekly bucket counts must equal the total record count
	// regardless of how the records are spread.
	records := recordsOn(
		date(2025, time.April, 1),
		date(2025, time.April, 1),
		date(2025, time.April, 9),
		date(2025, time.April, 28),
		date(2025, time.May, 2),
	)

	for name, buckets := range map[string][]Bucket{
		"daily":   DailyBuckets(records),
		"weekly":  WeeklyBuckets(records),
		"monthly": MonthlyBuckets(records),
	} {
		sum := 0
		for _, b := range buckets {
			sum += b.Count
		}
		if sum != len(records) {
			t.Fatalf("%s buckets sum to %d, want %d", name, sum, len(records))
		}
	}
}

func TestDailyBucketsAreContiguous(t *testing.T) {
	records := recordsOn(
		date(2025, time.June, 1),
		date(2025, time.June, 5),
	)
	buckets := DailyBuckets(records)
	if len(buckets) != 5 {
		t.Fatalf("expected 5 contiguous daily buckets, got %d", len(buckets))
	}
	if buckets[1].Count != 0 || buckets[2].Count != 0 || buckets[3].Count != 0 {
		t.Fatalf("interior days should be zero-filled: %+v", buckets)
	}
}
