package result

import (
	"github.com/skipool/skipool/internal/domain/resort"
	"github.com/skipool/skipool/internal/domain/ride"
)

// ScoredResort is a resort matched by a search, with its similarity score and,
// when the caller sent a position, the distance to it.
type ScoredResort struct {
	resort     resort.Resort
	score      float64
	distanceKm *float64
	rides      []ride.Offer
}

// New creates a scored resort without distance.
func New(r resort.Resort, score float64) ScoredResort {
	return ScoredResort{resort: r, score: score}
}

// Resort returns the matched resort.
func (s *ScoredResort) Resort() resort.Resort { return s.resort }

// Score returns the best similarity score in [0, 1].
func (s *ScoredResort) Score() float64 { return s.score }

// DistanceKm returns the distance from the caller, nil when unknown.
func (s *ScoredResort) DistanceKm() *float64 { return s.distanceKm }

// Rides returns the upcoming ride offers attached to the result.
func (s *ScoredResort) Rides() []ride.Offer { return s.rides }

// WithDistance returns a copy carrying the given distance.
func (s *ScoredResort) WithDistance(km float64) ScoredResort {
	c := *s
	c.distanceKm = &km
	return c
}

// WithRides returns a copy carrying the given ride offers.
func (s *ScoredResort) WithRides(rides []ride.Offer) ScoredResort {
	c := *s
	c.rides = rides
	return c
}
