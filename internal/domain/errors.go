package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidQuery signals a search text that is missing, too short or too long.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidThreshold signals a similarity threshold that is not a number in [0, 1].
	ErrInvalidThreshold = errors.New("invalid threshold")
	// ErrInvalidResort signals a resort record that fails validation.
	ErrInvalidResort = errors.New("invalid resort")
	// ErrInvalidRide signals a ride offer that fails validation.
	ErrInvalidRide = errors.New("invalid ride offer")
	// ErrResortInactive signals an operation against a resort hidden from search.
	ErrResortInactive = errors.New("resort is not active")
	// ErrRideNotFound signals a booking against an unknown ride.
	ErrRideNotFound = errors.New("ride not found")
	// ErrInvalidBooking signals a seat request that fails validation.
	ErrInvalidBooking = errors.New("invalid booking")
	// ErrRideUnavailable signals a ride that departed, closed or lacks the requested seats.
	ErrRideUnavailable = errors.New("ride is not bookable")
	// ErrAlreadyBooked signals a second booking by the same passenger on one ride.
	ErrAlreadyBooked = errors.New("passenger already booked this ride")
)
