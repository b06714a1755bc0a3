package booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/skipool/skipool/internal/domain"
	dombooking "github.com/skipool/skipool/internal/domain/booking"
)

// store is the consumer interface for bookings.
type store interface {
	HSetNX(ctx context.Context, key, field, value string) (bool, error)
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, keys ...string) error
}

// Repo stores one hash per (ride, passenger) pair. The pair key is claimed
// with HSETNX so concurrent requests cannot both succeed.
type Repo struct {
	store store
}

// New creates a booking repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Create stores b, or returns domain.ErrAlreadyBooked when the passenger
// already holds a booking on the ride.
func (r *Repo) Create(ctx context.Context, b dombooking.Booking) error {
	if b.ID() == "" || b.RideID() == "" || b.PassengerID() == "" {
		return errors.New("booking id, ride id and passenger id are required")
	}
	key := bookingKey(b.RideID(), b.PassengerID())

	claimed, err := r.store.HSetNX(ctx, key, "id", b.ID())
	if err != nil {
		return fmt.Errorf("claim booking %s: %w", key, err)
	}
	if !claimed {
		return domain.ErrAlreadyBooked
	}
	if err := r.store.HSet(ctx, key, bookingToHash(b)); err != nil {
		// release the claim so the passenger can retry
		_ = r.store.Del(ctx, key)
		return fmt.Errorf("hset booking %s: %w", key, err)
	}
	return nil
}

// Get loads the passenger's booking on a ride or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, rideID, passengerID string) (dombooking.Booking, error) {
	m, err := r.store.HGetAll(ctx, bookingKey(rideID, passengerID))
	if err != nil {
		return dombooking.Booking{}, fmt.Errorf("hgetall booking: %w", err)
	}
	if len(m) == 0 {
		return dombooking.Booking{}, domain.ErrNotFound
	}
	return bookingFromHash(m)
}

// Key pattern: skipool:ride-booking:{ride_id}:{passenger_id}
func bookingKey(rideID, passengerID string) string {
	return domain.KeyPrefix + "ride-booking:" + rideID + ":" + passengerID
}

func bookingToHash(b dombooking.Booking) map[string]string {
	return map[string]string{
		"id":             b.ID(),
		"ride_id":        b.RideID(),
		"passenger_id":   b.PassengerID(),
		"seats_reserved": strconv.Itoa(b.SeatsReserved()),
		"status":         string(b.Status()),
		"created_at":     b.CreatedAt().Format(time.RFC3339Nano),
	}
}

func bookingFromHash(m map[string]string) (dombooking.Booking, error) {
	seats, err := strconv.Atoi(m["seats_reserved"])
	if err != nil {
		return dombooking.Booking{}, fmt.Errorf("invalid seats_reserved: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, m["created_at"])
	if err != nil {
		return dombooking.Booking{}, fmt.Errorf("invalid created_at: %w", err)
	}
	return dombooking.Reconstruct(dombooking.Params{
		ID:            m["id"],
		RideID:        m["ride_id"],
		PassengerID:   m["passenger_id"],
		SeatsReserved: seats,
		Status:        dombooking.Status(m["status"]),
		CreatedAt:     createdAt,
	}), nil
}
