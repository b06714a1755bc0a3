package booking

import (
	"context"

	dombooking "github.com/skipool/skipool/internal/domain/booking"
	domride "github.com/skipool/skipool/internal/domain/ride"
)

// Repository defines the storage contract for bookings.
type Repository interface {
	Create(ctx context.Context, b dombooking.Booking) error
}

// RideReader loads the ride a passenger asks to join.
type RideReader interface {
	Get(ctx context.Context, id string) (domride.Offer, error)
}
