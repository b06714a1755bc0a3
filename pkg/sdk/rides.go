package skipool

import (
	"context"
	"fmt"
	"time"

	bookinguc "github.com/skipool/skipool/internal/usecase/booking"
	rideuc "github.com/skipool/skipool/internal/usecase/ride"
)

// RideService publishes, lists and books ride offers.
type RideService struct {
	svc      rideUseCase
	bookings bookingUseCase
	obs      *observer
}

// Publish stores a new ride offer towards an active resort.
func (s *RideService) Publish(ctx context.Context, in PublishRide) (_ Ride, err error) {
	start := time.Now()
	defer func() { s.obs.observe("ride.publish", start, err) }()

	o, err := s.svc.Publish(ctx, rideuc.PublishInput{
		ResortID:       in.ResortID,
		DriverID:       in.DriverID,
		Destination:    in.Destination,
		DepartureTime:  in.DepartureTime,
		PickupLabel:    in.PickupLabel,
		PickupLat:      in.Pickup.Lat,
		PickupLng:      in.Pickup.Lng,
		PricePerSeat:   in.PricePerSeat,
		SeatsTotal:     in.SeatsTotal,
		SeatsAvailable: in.SeatsAvailable,
	})
	if err != nil {
		return Ride{}, fmt.Errorf("publish ride: %w", err)
	}
	return fromInternalRide(o), nil
}

// Upcoming lists bookable offers, soonest first. An empty resortID spans
// every resort; limit <= 0 uses the default of 20.
func (s *RideService) Upcoming(ctx context.Context, resortID string, limit int) (_ []Ride, err error) {
	start := time.Now()
	defer func() { s.obs.observe("ride.upcoming", start, err) }()

	offers, err := s.svc.Upcoming(ctx, resortID, limit)
	if err != nil {
		return nil, fmt.Errorf("upcoming rides: %w", err)
	}
	return fromInternalRides(offers), nil
}

// Book requests seats on a ride. A passenger may hold one booking per ride;
// a second attempt fails with ErrAlreadyBooked.
func (s *RideService) Book(ctx context.Context, in BookRide) (_ Booking, err error) {
	start := time.Now()
	defer func() { s.obs.observe("ride.book", start, err) }()

	b, err := s.bookings.Book(ctx, bookinguc.Input{
		RideID:      in.RideID,
		PassengerID: in.PassengerID,
		Seats:       in.Seats,
	})
	if err != nil {
		return Booking{}, fmt.Errorf("book ride: %w", err)
	}
	return fromInternalBooking(b), nil
}
