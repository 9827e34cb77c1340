// Command genmock fetches a live EONET window and writes JSON fixtures for
// the test suites and local development. It uses the actual feed client so
// fixtures match real decoding behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -days 30 \
//	  -events-out data/mock/eonet_events_30d.json \
//	  -categories-out data/mock/eonet_categories.json
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/goccy/go-json"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/eonet-tracker/internal/adapter/eonet"
	"github.com/couchcryptid/eonet-tracker/internal/domain"
	"github.com/couchcryptid/eonet-tracker/internal/observability"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	baseURL := flag.String("base-url", "https://eonet.gsfc.nasa.gov/api/v3", "EONET API base URL")
	days := flag.Int("days", 30, "event window in days")
	eventsOut := flag.String("events-out", "", "output path for the events JSON fixture")
	categoriesOut := flag.String("categories-out", "", "output path for the categories JSON fixture")
	flag.Parse()

	if *eventsOut == "" || *categoriesOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -events-out, -categories-out")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	client := eonet.NewClient(*baseURL, 30*time.Second, clockwork.NewRealClock(), observability.NewMetrics(), logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	events, err := client.FetchEvents(ctx, *days)
	if err != nil {
		return fmt.Errorf("fetching events: %w", err)
	}
	log.Printf("fetched %d events over %d days", len(events), *days)

	categories, err := client.FetchCategories(ctx)
	if err != nil {
		return fmt.Errorf("fetching categories: %w", err)
	}
	log.Printf("fetched %d categories", len(categories))

	if err := writeJSON(*eventsOut, events); err != nil {
		return fmt.Errorf("writing events fixture: %w", err)
	}
	log.Printf("wrote events fixture: %s", *eventsOut)

	if err := writeJSON(*categoriesOut, categories); err != nil {
		return fmt.Errorf("writing categories fixture: %w", err)
	}
	log.Printf("wrote categories fixture: %s", *categoriesOut)

	printStats(events)
	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

// statsResult holds aggregated counts for printStats reporting.
type statsResult struct {
	categoryCounts map[string]int
	regionCounts   map[string]int
	withMagnitude  int
	withPoint      int
	minDate        string
	maxDate        string
}

func collectStats(events []domain.Event) statsResult {
	s := statsResult{
		categoryCounts: map[string]int{},
		regionCounts:   map[string]int{},
	}
	for _, ev := range events {
		if cat, ok := ev.PrimaryCategory(); ok {
			s.categoryCounts[cat.Title]++
		}
		if _, ok := ev.EffectiveMagnitude(); ok {
			s.withMagnitude++
		}
		if p, ok := ev.Point(); ok {
			s.withPoint++
			s.regionCounts[string(domain.RegionFor(p.Lat()))]++
		}
		if date, ok := ev.Date(); ok {
			if s.minDate == "" || date < s.minDate {
				s.minDate = date
			}
			if date > s.maxDate {
				s.maxDate = date
			}
		}
	}
	return s
}

type labelCount struct {
	label string
	count int
}

func printStats(events []domain.Event) {
	stats := collectStats(events)

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d\n", len(events))
	fmt.Printf("With magnitude: %d\n", stats.withMagnitude)
	fmt.Printf("With coordinates: %d\n", stats.withPoint)
	fmt.Printf("Date range: %s .. %s\n", stats.minDate, stats.maxDate)

	printSortedCounts("Categories", stats.categoryCounts)
	printSortedCounts("Regions", stats.regionCounts)
	printFirstEvent(events)
}

func printSortedCounts(title string, counts map[string]int) {
	lc := make([]labelCount, 0, len(counts))
	for label, count := range counts {
		lc = append(lc, labelCount{label, count})
	}
	sort.Slice(lc, func(i, j int) bool { return lc[i].count > lc[j].count })
	fmt.Printf("%s (%d): ", title, len(lc))
	for _, c := range lc {
		fmt.Printf("%s=%d ", c.label, c.count)
	}
	fmt.Println()
}

func printFirstEvent(events []domain.Event) {
	if len(events) == 0 {
		return
	}
	e := events[0]
	fmt.Printf("\nFirst event:\n")
	fmt.Printf("  ID: %s\n", e.ID)
	fmt.Printf("  Title: %s\n", e.Title)
	if cat, ok := e.PrimaryCategory(); ok {
		fmt.Printf("  Category: %s (%s)\n", cat.Title, cat.ID)
	}
	if date, ok := e.Date(); ok {
		fmt.Printf("  Date: %s\n", date)
	}
	if p, ok := e.Point(); ok {
		fmt.Printf("  Point: lon=%g, lat=%g (%s)\n", p.Lon(), p.Lat(), domain.RegionFor(p.Lat()))
	}
	if mag, ok := e.EffectiveMagnitude(); ok {
		fmt.Printf("  Magnitude: %g\n", mag)
	}
	fmt.Printf("  Frames: %d\n", len(e.Geometry))
}
