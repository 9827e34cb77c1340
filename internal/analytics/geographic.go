package analytics

import (
	"github.com/couchcryptid/eonet-tracker/internal/domain"
)

// Geographic counts events per latitude region, always reporting all six
// regions, zeros included. Events without a representative coordinate are
// excluded from the counts.
func (e *Engine) Geographic() map[string]int {
	counts := make(map[string]int, len(domain.Regions()))
	for _, r := range domain.Regions() {
		counts[string(r)] = 0
	}

	for _, ev := range e.snapshot() {
		p, ok := ev.Point()
		if !ok {
			continue
		}
		counts[string(domain.RegionFor(p.Lat()))]++
	}
	return counts
}
