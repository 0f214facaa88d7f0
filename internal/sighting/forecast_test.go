package sighting

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"
)

// linearHistory builds count sightings per day for each entry, starting at
// start and advancing one day per entry.
func linearHistory(start time.Time, counts ...int) []Record {
	var out []Record
	id := 0
	for i, c := range counts {
		day := start.AddDate(0, 0, i)
		for j := 0; j < c; j++ {
			id++
			out = append(out, Record{
				ID:       fmt.Sprintf("r%d", id),
				Date:     day,
				Location: "Arnhem",
				Species:  "Castor Bean Tick",
			})
		}
	}
	return out
}

func TestForecastProjectsLinearTrend(t *testing.T) {
	// Perfectly linear history 10, 12, 14, 16 must continue as 18, 20.
	start := date(2025, time.May, 1)
	records := linearHistory(start, 10, 12, 14, 16)

	result, err := Forecast(records, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(result.Slope-2) > 1e-9 {
		t.Fatalf("slope = %v, want 2", result.Slope)
	}
	if math.Abs(result.Intercept-10) > 1e-9 {
		t.Fatalf("intercept = %v, want 10", result.Intercept)
	}
	if len(result.Points) != 2 {
		t.Fatalf("expected 2 forecast points, got %d", len(result.Points))
	}
	if result.Points[0].Predicted != 18 || result.Points[1].Predicted != 20 {
		t.Fatalf("predictions = [%d, %d], want [18, 20]",
			result.Points[0].Predicted, result.Points[1].Predicted)
	}
	if result.PredictedTotal != 38 {
		t.Fatalf("predicted total = %d, want 38", result.PredictedTotal)
	}

	wantFirst := date(2025, time.May, 5)
	if !result.Points[0].Date.Equal(wantFirst) {
		t.Fatalf("first forecast date = %v, want %v", result.Points[0].Date, wantFirst)
	}
}

func TestForecastRequiresTwoDistinctDays(t *testing.T) {
	// Many sightings on one single day are still a single period.
	day := date(2025, time.May, 1)
	records := linearHistory(day, 25)

	_, err := Forecast(records, 7)
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}

	if _, err := Forecast(nil, 7); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData on empty history, got %v", err)
	}
}

func TestForecastClampsNegativePredictions(t *testing.T) {
	// A steep downward trend must bottom out at zero, never go negative.
	records := linearHistory(date(2025, time.May, 1), 9, 6, 3)

	result, err := Forecast(records, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, p := range result.Points {
		if p.Predicted < 0 {
			t.Fatalf("point %d predicted %d, counts cannot be negative", i, p.Predicted)
		}
	}
	// Slope -3 from 3 at the last observed day: 0 from the first
	// projected day onward.
	if result.Points[0].Predicted != 0 || result.Points[3].Predicted != 0 {
		t.Fatalf("expected flat zero projection, got %+v", result.Points)
	}
}

func TestForecastZeroFillsGaps(t *testing.T) {
	// One sighting on day 1 and one on day 5: the empty days in between
	// take part in the fit, so the trend is flat-ish, not rising.
	records := recordsOn(
		date(2025, time.June, 1),
		date(2025, time.June, 5),
	)
	result, err := Forecast(records, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Series is [1 0 0 0 1]: symmetric, slope exactly 0.
	if math.Abs(result.Slope) > 1e-9 {
		t.Fatalf("slope = %v, want 0 over symmetric zero-filled series", result.Slope)
	}
}

func TestForecastRejectsNonPositiveHorizon(t *testing.T) {
	records := linearHistory(date(2025, time.May, 1), 1, 2)
	if _, err := Forecast(records, 0); err == nil {
		t.Fatalf("expected error for zero horizon")
	}
}
