package search

import (
	"sort"

	"github.com/skipool/skipool/internal/domain/geo"
	"github.com/skipool/skipool/internal/domain/resort"
	"github.com/skipool/skipool/internal/domain/search/result"
)

// FuzzySearch scores every active resort against the query and keeps those
// whose best name or alias score reaches threshold.
// Results are ordered by score descending; equal scores fall back to name, then ID.
func FuzzySearch(query string, threshold float64, resorts []resort.Resort) []result.ScoredResort {
	matches := make([]result.ScoredResort, 0)
	for i := range resorts {
		r := &resorts[i]
		if !r.IsActive() {
			continue
		}
		best := 0.0
		for _, name := range r.SearchableNames() {
			if s := Score(query, name); s > best {
				best = s
			}
		}
		if best >= threshold {
			matches = append(matches, result.New(*r, best))
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score() != matches[j].Score() {
			return matches[i].Score() > matches[j].Score()
		}
		ri, rj := matches[i].Resort(), matches[j].Resort()
		if ri.Name() != rj.Name() {
			return ri.Name() < rj.Name()
		}
		return ri.ID() < rj.ID()
	})

	return matches
}

// RankByDistance attaches the distance from origin (km, one decimal) to each
// match and reorders them nearest first. Matches at the same distance keep
// their relevance order.
func RankByDistance(matches []result.ScoredResort, origin geo.Point) []result.ScoredResort {
	ranked := make([]result.ScoredResort, len(matches))
	for i := range matches {
		r := matches[i].Resort()
		km := geo.RoundKm(geo.HaversineKm(origin, r.Location()))
		ranked[i] = matches[i].WithDistance(km)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return *ranked[i].DistanceKm() < *ranked[j].DistanceKm()
	})

	return ranked
}
