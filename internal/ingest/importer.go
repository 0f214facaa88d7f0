// Package ingest implements the one-shot ETL pipeline: it reads a raw
// sighting spreadsheet, normalizes and validates every row, and writes the
// accepted rows to the repository in a single transaction.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/tickwatch/tickwatch/internal/sighting"
)

var (
	// ErrSourceNotFound is returned when the source file does not exist
	// or cannot be opened as a spreadsheet.
	ErrSourceNotFound = errors.New("source file not found")

	// ErrNoValidRows is returned when every data row was rejected.
	ErrNoValidRows = errors.New("no valid rows in source file")
)

// Rejection records why a single source row was dropped. Row numbers are
// 1-based as shown in a spreadsheet editor.
type Rejection struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// Summary reports the outcome of an import. Rejected rows are counted and
// explained rather than silently discarded; unknown species that were kept
// as-is show up as non-fatal warnings.
type Summary struct {
	Accepted   int         `json:"accepted"`
	Rejected   int         `json:"rejected"`
	Rejections []Rejection `json:"rejections,omitempty"`
	Warnings   []string    `json:"warnings,omitempty"`
}

// Importer is the ingestion pipeline. It is the only component that
// performs bulk writes. Re-running an import without resetting the store
// first appends duplicates; that is a designed constraint of the one-shot
// model, and callers who want a clean re-import reset explicitly.
type Importer struct {
	repo       sighting.Repository
	normalizer *sighting.Normalizer
	now        func() time.Time
}

// NewImporter creates an Importer writing through the given repository.
func NewImporter(repo sighting.Repository, normalizer *sighting.Normalizer) *Importer {
	return &Importer{repo: repo, normalizer: normalizer, now: time.Now}
}

// ImportFile reads the first sheet of an xlsx file and imports its rows.
// Either every accepted row is committed or none are.
func (imp *Importer) ImportFile(ctx context.Context, path string) (Summary, error) {
	if _, err := os.Stat(path); err != nil {
		return Summary{}, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %s: %v", ErrSourceNotFound, path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Summary{}, fmt.Errorf("%w: %s has no sheets", ErrSourceNotFound, path)
	}

	// Raw cell values keep excel date serials intact instead of handing
	// us locale-formatted strings.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return Summary{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return Summary{}, ErrNoValidRows
	}

	columns, err := mapColumns(rows[0])
	if err != nil {
		return Summary{}, err
	}

	var (
		summary  Summary
		accepted []sighting.Record
		warned   = map[string]bool{}
		today    = sighting.DateOnly(imp.now())
	)

	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header

		rec, reason := imp.buildRecord(columns, row, today)
		if reason != "" {
			summary.Rejected++
			summary.Rejections = append(summary.Rejections, Rejection{Row: rowNum, Reason: reason})
			continue
		}

		canonical, known := imp.normalizer.Species(cell(row, columns.species))
		if !known && !warned[canonical] {
			warned[canonical] = true
			summary.Warnings = append(summary.Warnings,
				fmt.Sprintf("unrecognized species %q kept as-is", canonical))
		}

		accepted = append(accepted, rec)
	}

	if len(accepted) == 0 {
		return summary, ErrNoValidRows
	}

	if err := imp.repo.BulkInsert(ctx, accepted); err != nil {
		return summary, fmt.Errorf("store import batch: %w", err)
	}
	summary.Accepted = len(accepted)
	return summary, nil
}

// buildRecord validates and normalizes one source row. A non-empty reason
// means the row is rejected.
func (imp *Importer) buildRecord(cols columnMap, row []string, today time.Time) (sighting.Record, string) {
	rawDate := cell(row, cols.date)
	location := cell(row, cols.location)
	species := cell(row, cols.species)

	switch {
	case rawDate == "":
		return sighting.Record{}, "missing date"
	case location == "":
		return sighting.Record{}, "missing location"
	case species == "":
		return sighting.Record{}, "missing species"
	}

	date, err := parseDate(rawDate)
	if err != nil {
		return sighting.Record{}, fmt.Sprintf("unparseable date %q", rawDate)
	}
	if date.After(today) {
		return sighting.Record{}, fmt.Sprintf("date %s is in the future", date.Format("2006-01-02"))
	}

	id := cell(row, cols.id)
	if id == "" {
		id = uuid.NewString()
	}

	canonicalSpecies, _ := imp.normalizer.Species(species)

	return sighting.Record{
		ID:        id,
		Date:      date,
		Location:  imp.normalizer.Location(location),
		Species:   canonicalSpecies,
		LatinName: cell(row, cols.latinName),
		Habitat:   cell(row, cols.habitat),
		Host:      cell(row, cols.host),
	}, ""
}

// columnMap holds the index of each recognized column, -1 when absent.
type columnMap struct {
	id, date, location, species, latinName, habitat, host int
}

func mapColumns(header []string) (columnMap, error) {
	cols := columnMap{id: -1, date: -1, location: -1, species: -1, latinName: -1, habitat: -1, host: -1}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "id":
			cols.id = i
		case "date":
			cols.date = i
		case "location", "region":
			cols.location = i
		case "species":
			cols.species = i
		case "latinname", "latin_name", "latin name":
			cols.latinName = i
		case "habitat":
			cols.habitat = i
		case "host", "host animal", "host_animal":
			cols.host = i
		}
	}

	var missing []string
	if cols.date == -1 {
		missing = append(missing, "date")
	}
	if cols.location == -1 {
		missing = append(missing, "location")
	}
	if cols.species == -1 {
		missing = append(missing, "species")
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("source is missing required columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// excelEpoch is day zero of the 1900 date system used by xlsx serials.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// dateLayouts are tried in order against textual date cells. Sources have
// been seen with ISO dates, European day-first dates and full timestamps.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02-01-2006",
	"02/01/2006",
	"2-1-2006",
	"2006/01/02",
}

// parseDate handles both excel date serial numbers and the textual formats
// that appear in source spreadsheets. The result is truncated to a
// calendar date at midnight UTC.
func parseDate(raw string) (time.Time, error) {
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		// Plausible serial range: 1954..2077. Anything else is more
		// likely a mistyped cell than a real observation date.
		if serial < 20000 || serial > 65000 {
			return time.Time{}, fmt.Errorf("excel serial %v out of range", serial)
		}
		return sighting.DateOnly(excelEpoch.AddDate(0, 0, int(serial))), nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return sighting.DateOnly(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format %q", raw)
}
