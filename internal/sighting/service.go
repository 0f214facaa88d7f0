package sighting

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Service is the read-side entry point: it resolves filters against the
// repository and feeds the resolved set to the statistics and forecasting
// computations. It never writes; bulk writes are the ingestion pipeline's
// business.
type Service struct {
	repo       Repository
	normalizer *Normalizer

	// now is injectable so that time-relative statistics are testable.
	now func() time.Time
}

// NewService creates a Service around a repository and normalizer.
func NewService(repo Repository, normalizer *Normalizer) *Service {
	return &Service{
		repo:       repo,
		normalizer: normalizer,
		now:        time.Now,
	}
}

// List returns the records matching the filter, ordered by date ascending.
// ErrNoData is returned when the store itself is empty, so callers can
// distinguish "nothing imported yet" from "filters matched nothing".
func (s *Service) List(ctx context.Context, f Filter) ([]Record, error) {
	if err := s.ensurePopulated(ctx); err != nil {
		return nil, err
	}
	return s.repo.ByFilter(ctx, s.normalizeFilter(f))
}

// Statistics aggregates the filtered set and attaches the comparison
// against the immediately preceding window of equal length.
func (s *Service) Statistics(ctx context.Context, f Filter) (Statistics, error) {
	if err := s.ensurePopulated(ctx); err != nil {
		return Statistics{}, err
	}

	nf := s.normalizeFilter(f)
	records, err := s.repo.ByFilter(ctx, nf)
	if err != nil {
		return Statistics{}, err
	}

	result := Aggregate(records, s.now())
	if len(records) == 0 {
		return result, nil
	}

	comparison, err := s.previousWindow(ctx, nf, records)
	if err != nil {
		return Statistics{}, err
	}
	result.PreviousPeriod = comparison
	return result, nil
}

// Forecast resolves the filter and fits a fresh trend over the result.
func (s *Service) Forecast(ctx context.Context, f Filter, horizon int) (ForecastResult, error) {
	if err := s.ensurePopulated(ctx); err != nil {
		return ForecastResult{}, err
	}

	records, err := s.repo.ByFilter(ctx, s.normalizeFilter(f))
	if err != nil {
		return ForecastResult{}, err
	}
	if len(records) == 0 {
		return ForecastResult{}, fmt.Errorf("%w: no sightings match the filters", ErrNoData)
	}
	return Forecast(records, horizon)
}

// TotalRecords reports the store size, mainly for health and summary output.
func (s *Service) TotalRecords(ctx context.Context) (int64, error) {
	return s.repo.Total(ctx)
}

// DateBounds reports the overall dataset span.
func (s *Service) DateBounds(ctx context.Context) (time.Time, time.Time, error) {
	return s.repo.DateBounds(ctx)
}

// previousWindow counts sightings in the same-length window immediately
// before the current one, keeping location/species constraints. Returns
// nil when the dataset does not reach back far enough for a full window:
// a partial window would make the comparison misleading.
func (s *Service) previousWindow(ctx context.Context, f Filter, records []Record) (*Comparison, error) {
	currentStart := DateOnly(records[0].Date)
	if f.StartDate != nil {
		currentStart = DateOnly(*f.StartDate)
	}
	currentEnd := DateOnly(records[len(records)-1].Date)
	if f.EndDate != nil {
		currentEnd = DateOnly(*f.EndDate)
	}

	windowDays := int(currentEnd.Sub(currentStart).Hours()/24) + 1
	previousEnd := currentStart.AddDate(0, 0, -1)
	previousStart := previousEnd.AddDate(0, 0, -(windowDays - 1))

	datasetMin, _, err := s.repo.DateBounds(ctx)
	if err != nil {
		if errors.Is(err, ErrNoData) {
			return nil, nil
		}
		return nil, err
	}
	if previousStart.Before(datasetMin) {
		return nil, nil
	}

	previousFilter := Filter{
		StartDate: &previousStart,
		EndDate:   &previousEnd,
		Location:  f.Location,
		Species:   f.Species,
	}
	previousCount, err := s.repo.CountByFilter(ctx, previousFilter)
	if err != nil {
		return nil, err
	}

	comparison := &Comparison{
		CurrentStart:  currentStart,
		CurrentEnd:    currentEnd,
		PreviousStart: previousStart,
		PreviousEnd:   previousEnd,
		CurrentCount:  len(records),
		PreviousCount: int(previousCount),
	}
	if previousCount > 0 {
		change := (float64(len(records)) - float64(previousCount)) / float64(previousCount) * 100
		comparison.ChangePercent = &change
	}
	return comparison, nil
}

// normalizeFilter applies the same normalization used at ingestion, so a
// filter typed as "amsterdam" matches rows stored as "Amsterdam".
func (s *Service) normalizeFilter(f Filter) Filter {
	if f.Location != "" {
		f.Location = s.normalizer.Location(f.Location)
	}
	if f.Species != "" {
		f.Species, _ = s.normalizer.Species(f.Species)
	}
	return f
}

func (s *Service) ensurePopulated(ctx context.Context) error {
	total, err := s.repo.Total(ctx)
	if err != nil {
		return err
	}
	if total == 0 {
		return fmt.Errorf("%w: store is empty, import data first", ErrNoData)
	}
	return nil
}
