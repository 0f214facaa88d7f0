// Package sqlite persists sighting records in a single SQLite database via
// gorm, using the CGO-free modernc driver. SQLite's transaction isolation
// gives readers a consistent snapshot, so the one-shot bulk import is
// invisible to concurrent reads until it commits.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"github.com/tickwatch/tickwatch/internal/sighting"
)

// Open opens (creating if needed) the SQLite database at path.
func Open(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        path,
	}, &gorm.Config{})
}

// SightingRepository implements sighting.Repository on SQLite.
type SightingRepository struct {
	db *gorm.DB
}

// NewSightingRepository wraps an open gorm handle.
func NewSightingRepository(db *gorm.DB) *SightingRepository {
	return &SightingRepository{db: db}
}

// ByFilter returns matching records ordered by date then id, so paging and
// repeated reads are deterministic.
func (r *SightingRepository) ByFilter(ctx context.Context, f sighting.Filter) ([]sighting.Record, error) {
	rows := make([]SightingModel, 0)
	if err := r.filtered(ctx, f).Order("date ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query sightings: %w", err)
	}

	result := make([]sighting.Record, 0, len(rows))
	for _, m := range rows {
		result = append(result, toRecord(m))
	}
	return result, nil
}

// CountByFilter counts matching records without loading them.
func (r *SightingRepository) CountByFilter(ctx context.Context, f sighting.Filter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, f).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count sightings: %w", err)
	}
	return count, nil
}

// ByID returns one record or sighting.ErrNoData.
func (r *SightingRepository) ByID(ctx context.Context, id string) (sighting.Record, error) {
	var m SightingModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return sighting.Record{}, sighting.ErrNoData
		}
		return sighting.Record{}, fmt.Errorf("load sighting %s: %w", id, err)
	}
	return toRecord(m), nil
}

// BulkInsert writes all records inside one transaction. A failure on any
// row rolls the whole batch back, so readers never observe a partial
// import.
func (r *SightingRepository) BulkInsert(ctx context.Context, records []sighting.Record) error {
	if len(records) == 0 {
		return nil
	}

	models := make([]SightingModel, 0, len(records))
	now := time.Now().UTC()
	for _, rec := range records {
		models = append(models, SightingModel{
			ID:        rec.ID,
			Date:      sighting.DateOnly(rec.Date),
			Location:  rec.Location,
			Species:   rec.Species,
			LatinName: rec.LatinName,
			Habitat:   rec.Habitat,
			Host:      rec.Host,
			CreatedAt: now,
		})
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.CreateInBatches(models, 500).Error; err != nil {
			return fmt.Errorf("insert sightings: %w", err)
		}
		return nil
	})
}

// DateBounds returns the earliest and latest observation dates stored.
func (r *SightingRepository) DateBounds(ctx context.Context) (time.Time, time.Time, error) {
	var oldest, newest SightingModel
	if err := r.db.WithContext(ctx).Order("date ASC").First(&oldest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, time.Time{}, sighting.ErrNoData
		}
		return time.Time{}, time.Time{}, fmt.Errorf("date bounds: %w", err)
	}
	if err := r.db.WithContext(ctx).Order("date DESC").First(&newest).Error; err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("date bounds: %w", err)
	}
	return sighting.DateOnly(oldest.Date), sighting.DateOnly(newest.Date), nil
}

// Total returns the number of stored records.
func (r *SightingRepository) Total(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&SightingModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count sightings: %w", err)
	}
	return count, nil
}

// Reset removes every record. The ingestion CLI calls this before an
// intentional re-import; re-running an import without it appends.
func (r *SightingRepository) Reset(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&SightingModel{}).Error; err != nil {
		return fmt.Errorf("reset sightings: %w", err)
	}
	return nil
}

func (r *SightingRepository) filtered(ctx context.Context, f sighting.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&SightingModel{})
	if f.StartDate != nil {
		q = q.Where("date >= ?", sighting.DateOnly(*f.StartDate))
	}
	if f.EndDate != nil {
		q = q.Where("date <= ?", sighting.DateOnly(*f.EndDate))
	}
	if f.Location != "" {
		q = q.Where("location = ?", f.Location)
	}
	if f.Species != "" {
		q = q.Where("species = ?", f.Species)
	}
	return q
}

func toRecord(m SightingModel) sighting.Record {
	return sighting.Record{
		ID:        m.ID,
		Date:      sighting.DateOnly(m.Date),
		Location:  m.Location,
		Species:   m.Species,
		LatinName: m.LatinName,
		Habitat:   m.Habitat,
		Host:      m.Host,
	}
}
