package ride

import (
	"context"
	"time"

	domresort "github.com/skipool/skipool/internal/domain/resort"
	domride "github.com/skipool/skipool/internal/domain/ride"
)

// Repository defines the storage contract for ride offers.
type Repository interface {
	Save(ctx context.Context, o domride.Offer) error
	Upcoming(ctx context.Context, resortID string, after time.Time, limit int) ([]domride.Offer, error)
}

// ResortReader resolves the destination resort of an offer.
type ResortReader interface {
	Get(ctx context.Context, id string) (domresort.Resort, error)
}
