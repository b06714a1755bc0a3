package search

import (
	"context"
	"time"

	"github.com/skipool/skipool/internal/domain/resort"
	"github.com/skipool/skipool/internal/domain/ride"
)

// ResortReader supplies the search universe.
type ResortReader interface {
	ListActive(ctx context.Context) ([]resort.Resort, error)
}

// RideReader supplies bookable ride offers towards a resort, soonest first.
type RideReader interface {
	Upcoming(ctx context.Context, resortID string, after time.Time, limit int) ([]ride.Offer, error)
}
