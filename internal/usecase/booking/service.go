package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/skipool/skipool/internal/domain"
	dombooking "github.com/skipool/skipool/internal/domain/booking"
	logpkg "github.com/skipool/skipool/internal/logger"
)

// Input is a passenger's seat request.
type Input struct {
	RideID      string
	PassengerID string
	// Seats defaults to 1 when zero.
	Seats int
}

// Service records seat requests on published rides. Requests start as
// requested and do not hold seats until the driver answers.
type Service struct {
	bookings Repository
	rides    RideReader
	now      func() time.Time
	newID    func() string
}

// New creates a booking service.
func New(bookings Repository, rides RideReader) *Service {
	return &Service{bookings: bookings, rides: rides, now: time.Now, newID: uuid.NewString}
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithIDGenerator overrides how booking ids are assigned.
func (s *Service) WithIDGenerator(fn func() string) *Service {
	s.newID = fn
	return s
}

// Book requests seats on a ride for a passenger.
func (s *Service) Book(ctx context.Context, in Input) (dombooking.Booking, error) {
	now := s.now()
	b, err := dombooking.New(dombooking.Params{
		ID:            s.newID(),
		RideID:        in.RideID,
		PassengerID:   in.PassengerID,
		SeatsReserved: in.Seats,
	}, now)
	if err != nil {
		return dombooking.Booking{}, fmt.Errorf("%w: %w", domain.ErrInvalidBooking, err)
	}

	ride, err := s.rides.Get(ctx, in.RideID)
	if errors.Is(err, domain.ErrNotFound) {
		return dombooking.Booking{}, fmt.Errorf("ride %s: %w", in.RideID, domain.ErrRideNotFound)
	}
	if err != nil {
		return dombooking.Booking{}, fmt.Errorf("load ride %s: %w", in.RideID, err)
	}

	if ride.DriverID() == in.PassengerID {
		return dombooking.Booking{}, fmt.Errorf("%w: drivers cannot book their own ride", domain.ErrInvalidBooking)
	}
	if !ride.IsBookable(now) {
		return dombooking.Booking{}, fmt.Errorf("ride %s: %w", in.RideID, domain.ErrRideUnavailable)
	}
	if b.SeatsReserved() > ride.SeatsAvailable() {
		return dombooking.Booking{}, fmt.Errorf("ride %s has %d seats left: %w",
			in.RideID, ride.SeatsAvailable(), domain.ErrRideUnavailable)
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		return dombooking.Booking{}, fmt.Errorf("save booking: %w", err)
	}

	logpkg.FromContext(ctx).Info("ride booked",
		zap.String("booking_id", b.ID()),
		zap.String("ride_id", b.RideID()),
		zap.Int("seats", b.SeatsReserved()),
	)
	return b, nil
}
