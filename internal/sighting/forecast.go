package sighting

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// Forecast fits an ordinary-least-squares linear trend over the zero-filled
// daily series of the given records and projects it `horizon` days past the
// last observed day. Projected counts are rounded to integers and clamped
// at zero: a downward trend must not predict negative sightings.
//
// The fit is stateless: every call refits from the records it is handed, so
// forecasts always reflect the live filter criteria.
func Forecast(records []Record, horizon int) (ForecastResult, error) {
	if horizon <= 0 {
		return ForecastResult{}, fmt.Errorf("horizon must be greater than zero")
	}
	if len(records) == 0 {
		return ForecastResult{}, ErrNoData
	}

	daily := DailyBuckets(records)
	if len(daily) < 2 {
		return ForecastResult{}, ErrInsufficientData
	}

	xs := make(stats.Float64Data, len(daily))
	ys := make(stats.Float64Data, len(daily))
	for i, b := range daily {
		xs[i] = float64(i)
		ys[i] = float64(b.Count)
	}

	slope, intercept, err := fitLine(xs, ys)
	if err != nil {
		return ForecastResult{}, fmt.Errorf("trend fit: %w", err)
	}

	lastDay := DateOnly(records[0].Date)
	for _, r := range records {
		if d := DateOnly(r.Date); d.After(lastDay) {
			lastDay = d
		}
	}

	result := ForecastResult{
		Horizon:   horizon,
		Slope:     slope,
		Intercept: intercept,
		Points:    make([]ForecastPoint, 0, horizon),
	}

	lastIndex := float64(len(daily) - 1)
	total := 0
	for i := 1; i <= horizon; i++ {
		predicted := intercept + slope*(lastIndex+float64(i))
		count := int(math.Round(math.Max(predicted, 0)))
		total += count
		result.Points = append(result.Points, ForecastPoint{
			Date:      lastDay.AddDate(0, 0, i),
			Predicted: count,
		})
	}
	result.PredictedTotal = total
	result.AverageDaily = float64(total) / float64(horizon)

	return result, nil
}

// fitLine computes OLS slope and intercept with day index as the
// independent variable. Population covariance over population variance
// keeps the normalization consistent, so the ratio is the exact OLS slope.
func fitLine(xs, ys stats.Float64Data) (slope, intercept float64, err error) {
	covariance, err := stats.CovariancePopulation(xs, ys)
	if err != nil {
		return 0, 0, err
	}
	variance, err := stats.PopulationVariance(xs)
	if err != nil {
		return 0, 0, err
	}
	if variance == 0 {
		return 0, 0, ErrInsufficientData
	}

	meanX, err := stats.Mean(xs)
	if err != nil {
		return 0, 0, err
	}
	meanY, err := stats.Mean(ys)
	if err != nil {
		return 0, 0, err
	}

	slope = covariance / variance
	intercept = meanY - slope*meanX
	return slope, intercept, nil
}
