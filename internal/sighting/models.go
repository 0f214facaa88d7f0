package sighting

import (
	"time"
)

// Record is a single observed tick event, normalized at ingestion time.
// Records are append-only: once written they are never mutated.
type Record struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"` // date only, midnight UTC
	Location string    `json:"location"`
	Species  string    `json:"species"`

	// Optional descriptive fields carried over from the source data.
	LatinName string `json:"latinName,omitempty"`
	Habitat   string `json:"habitat,omitempty"`
	Host      string `json:"host,omitempty"`
}

// Filter is a query specification. Absent fields impose no constraint;
// provided fields combine with AND semantics. The date range is inclusive
// on both ends.
type Filter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Location  string
	Species   string
}

// IsZero reports whether the filter matches the full dataset.
func (f Filter) IsZero() bool {
	return f.StartDate == nil && f.EndDate == nil && f.Location == "" && f.Species == ""
}

// Bucket is a time-grouped sighting count. Period is a day ("2006-01-02"),
// an ISO week ("2006-W02") or a month ("2006-01") key depending on the
// grouping. Bucket sequences are chronological and zero-filled.
type Bucket struct {
	Period string `json:"period"`
	Count  int    `json:"count"`
}

// Comparison contrasts the current window against the equally long window
// immediately before it, with the same location/species constraints applied.
type Comparison struct {
	CurrentStart  time.Time `json:"currentStart"`
	CurrentEnd    time.Time `json:"currentEnd"`
	PreviousStart time.Time `json:"previousStart"`
	PreviousEnd   time.Time `json:"previousEnd"`
	CurrentCount  int       `json:"currentCount"`
	PreviousCount int       `json:"previousCount"`

	// ChangePercent is nil when the previous window has zero sightings.
	ChangePercent *float64 `json:"changePercent"`
}

// Statistics is the aggregate view over a filtered record set.
type Statistics struct {
	TotalSightings    int       `json:"totalSightings"`
	OldestSighting    time.Time `json:"oldestSighting"`
	NewestSighting    time.Time `json:"newestSighting"`
	WeeklyCounts      []Bucket  `json:"weeklyCounts"`
	MonthlyCounts     []Bucket  `json:"monthlyCounts"`
	AverageWeekly     float64   `json:"averageWeekly"`
	AverageMonthly    float64   `json:"averageMonthly"`
	SightingsPastYear int       `json:"sightingsPastYear"`

	// PreviousPeriod is nil when there is not enough history before the
	// current window to form a full window of equal length.
	PreviousPeriod *Comparison `json:"previousPeriod"`
}

// ForecastPoint is a single projected day.
type ForecastPoint struct {
	Date      time.Time `json:"date"`
	Predicted int       `json:"predicted"`
}

// ForecastResult carries the projected daily counts plus the fitted model
// parameters so callers can inspect the trend the projection is based on.
type ForecastResult struct {
	Horizon        int             `json:"horizon"`
	Slope          float64         `json:"slope"`
	Intercept      float64         `json:"intercept"`
	Points         []ForecastPoint `json:"dailyPredictions"`
	PredictedTotal int             `json:"predictedTotalSightings"`
	AverageDaily   float64         `json:"averageDaily"`
}

// DateOnly normalizes a timestamp to midnight UTC, one bucket per day.
func DateOnly(t time.Time) time.Time {
	tt := t.UTC()
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, time.UTC)
}
