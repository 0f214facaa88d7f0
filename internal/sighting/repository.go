package sighting

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNoData is returned when the store holds no records at all, or no
	// records match the given filter where at least one is required.
	ErrNoData = errors.New("no sighting data available")

	// ErrInsufficientData is returned when a forecast is requested over
	// fewer than two distinct observation days.
	ErrInsufficientData = errors.New("insufficient data to fit a trend")
)

// Repository is the contract any persistent sighting store must satisfy.
// Implementations must be safe for concurrent reads; bulk writes happen
// only through the offline ingestion path.
type Repository interface {
	// ByFilter returns matching records ordered by date ascending
	// (ties broken by id for deterministic pagination).
	ByFilter(ctx context.Context, f Filter) ([]Record, error)

	// CountByFilter returns the number of matching records without
	// materializing them.
	CountByFilter(ctx context.Context, f Filter) (int64, error)

	// ByID returns a single record or ErrNoData when absent.
	ByID(ctx context.Context, id string) (Record, error)

	// BulkInsert writes all records in one transaction: either every
	// record is committed or none are.
	BulkInsert(ctx context.Context, records []Record) error

	// DateBounds returns the earliest and latest observation dates in
	// the whole store, ignoring filters. ErrNoData when empty.
	DateBounds(ctx context.Context) (min, max time.Time, err error)

	// Total returns the size of the whole store.
	Total(ctx context.Context) (int64, error)

	// Reset removes every record. Used before an intentional re-import.
	Reset(ctx context.Context) error
}
