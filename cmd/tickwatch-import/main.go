// tickwatch-import is the offline ingestion command. It reads one xlsx
// source file, normalizes and validates its rows, and writes them to the
// sighting store in a single transaction. It is deliberately one-shot:
// re-running it against a populated store appends, so pass -reset when a
// clean re-import is intended.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/tickwatch/tickwatch/internal/config"
	"github.com/tickwatch/tickwatch/internal/ingest"
	"github.com/tickwatch/tickwatch/internal/sighting"
	"github.com/tickwatch/tickwatch/internal/store/sqlite"
)

func main() {
	reset := flag.Bool("reset", false, "clear the store before importing")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-reset] <source.xlsx>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	sourcePath := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	synonyms, err := cfg.Synonyms()
	if err != nil {
		log.Fatalf("failed to load species synonyms: %v", err)
	}

	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database %s: %v", cfg.DBPath, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := sqlite.RunMigrations(ctx, db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	repo := sqlite.NewSightingRepository(db)

	if *reset {
		if err := repo.Reset(ctx); err != nil {
			log.Fatalf("failed to reset store: %v", err)
		}
		log.Println("store cleared before import")
	}

	importer := ingest.NewImporter(repo, sighting.NewNormalizer(synonyms))
	summary, err := importer.ImportFile(ctx, sourcePath)
	if err != nil {
		switch {
		case errors.Is(err, ingest.ErrSourceNotFound):
			log.Fatalf("source not found: %v", err)
		case errors.Is(err, ingest.ErrNoValidRows):
			reportSummary(summary)
			log.Fatalf("import failed: %v", err)
		default:
			log.Fatalf("import failed: %v", err)
		}
	}

	reportSummary(summary)
	log.Printf("successfully imported %d sightings from %s into %s", summary.Accepted, sourcePath, cfg.DBPath)
}

func reportSummary(summary ingest.Summary) {
	log.Printf("import summary: %d accepted, %d rejected", summary.Accepted, summary.Rejected)
	for _, rejection := range summary.Rejections {
		log.Printf("  row %d rejected: %s", rejection.Row, rejection.Reason)
	}
	for _, warning := range summary.Warnings {
		log.Printf("  warning: %s", warning)
	}
}
