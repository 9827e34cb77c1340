// Command validate performs integrity checks on generated EONET fixtures:
// event field invariants, geometry frame sanity, category cross-references,
// and the derived views the analytics engine depends on. It exits non-zero
// when any phase reports errors.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -events-json data/mock/eonet_events_30d.json \
//	  -categories-json data/mock/eonet_categories.json
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/couchcryptid/eonet-tracker/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	eventsJSON := flag.String("events-json", "", "path to the events JSON fixture")
	categoriesJSON := flag.String("categories-json", "", "path to the categories JSON fixture")
	flag.Parse()

	if *eventsJSON == "" || *categoriesJSON == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*eventsJSON, *categoriesJSON); code != 0 {
		os.Exit(code)
	}
}

func run(eventsPath, categoriesPath string) int {
	fmt.Println("=== EONET Fixture Validation ===")
	fmt.Println()

	events, err := loadJSON[domain.Event](eventsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load events JSON: %v\n", err)
		return 1
	}

	categories, err := loadJSON[domain.Category](categoriesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load categories JSON: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateEvents(events),
		validateFrames(events),
		validateCategoryRefs(events, categories),
		validateDerivedViews(events),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d events, %d categories\n", len(events), len(categories))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ── Phase 1: Event Integrity ──
// Validates top-level event fields and ID uniqueness.

func validateEvents(events []domain.Event) *phase {
	p := &phase{name: "Phase 1: Event Integrity"}

	if len(events) == 0 {
		p.errorf("fixture contains no events")
		return p
	}

	seen := map[string]int{}
	for i, ev := range events {
		if ev.ID == "" {
			p.errorf("event %d: missing ID", i)
			continue
		}
		if prev, dup := seen[ev.ID]; dup {
			p.errorf("event %d: duplicate ID %q (first at %d)", i, ev.ID, prev)
		}
		seen[ev.ID] = i

		if ev.Title == "" {
			p.errorf("event %d (%s): missing title", i, ev.ID)
		}
		if len(ev.Geometry) == 0 {
			p.errorf("event %d (%s): no geometry frames", i, ev.ID)
		}
		if len(ev.Categories) == 0 {
			p.errorf("event %d (%s): no categories", i, ev.ID)
		}
	}
	return p
}

// ── Phase 2: Frame Integrity ──
// Validates per-frame dates, coordinate ranges, and magnitude readings.

func validateFrames(events []domain.Event) *phase {
	p := &phase{name: "Phase 2: Frame Integrity"}

	for _, ev := range events {
		for j, frame := range ev.Geometry {
			if frame.Date == "" {
				p.errorf("%s frame %d: missing date", ev.ID, j)
			} else if !validDate(frame.Date) {
				p.errorf("%s frame %d: unparseable date %q", ev.ID, j, frame.Date)
			}

			if frame.Coordinates != nil {
				lon, lat := frame.Coordinates.Lon(), frame.Coordinates.Lat()
				if lat < -90 || lat > 90 {
					p.errorf("%s frame %d: latitude %g out of range", ev.ID, j, lat)
				}
				if lon < -180 || lon > 180 {
					p.errorf("%s frame %d: longitude %g out of range", ev.ID, j, lon)
				}
			}

			if frame.Magnitude.Valid && math.IsNaN(frame.Magnitude.Value) {
				p.errorf("%s frame %d: magnitude is NaN", ev.ID, j)
			}
		}
	}
	return p
}

// ── Phase 3: Category Cross-Reference ──
// Validates the catalog and that every event category appears in it.

func validateCategoryRefs(events []domain.Event, categories []domain.Category) *phase {
	p := &phase{name: "Phase 3: Category Cross-Reference"}

	catalog := map[string]bool{}
	for i, cat := range categories {
		if cat.ID == "" {
			p.errorf("category %d: missing ID", i)
			continue
		}
		if catalog[cat.ID] {
			p.errorf("category %d: duplicate ID %q", i, cat.ID)
		}
		catalog[cat.ID] = true
		if cat.Title == "" {
			p.errorf("category %s: missing title", cat.ID)
		}
	}

	for _, ev := range events {
		for _, cat := range ev.Categories {
			if !catalog[cat.ID] {
				p.errorf("%s: category %q not in catalog", ev.ID, cat.ID)
			}
		}
	}
	return p
}

// ── Phase 4: Derived Views ──
// Validates the representative-field resolution the engine builds on.

func validateDerivedViews(events []domain.Event) *phase {
	p := &phase{name: "Phase 4: Derived Views"}

	var withDate, withPoint, withMagnitude int
	for _, ev := range events {
		if date, ok := ev.Date(); ok {
			withDate++
			if _, err := time.Parse("2006-01-02", date); err != nil {
				p.errorf("%s: representative date %q is not a calendar day", ev.ID, date)
			}
		}
		if _, ok := ev.Point(); ok {
			withPoint++
		}
		if mag, ok := ev.EffectiveMagnitude(); ok {
			withMagnitude++
			if math.IsNaN(mag) {
				p.errorf("%s: effective magnitude is NaN", ev.ID)
			}
		}
	}

	fmt.Printf("  Derived: %d with date, %d with point, %d with magnitude (of %d)\n",
		withDate, withPoint, withMagnitude, len(events))
	return p
}

// validDate accepts RFC 3339 timestamps and bare calendar days, the two
// shapes the feed has been observed to emit.
func validDate(s string) bool {
	if _, err := time.Parse(time.RFC3339, s); err == nil {
		return true
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
