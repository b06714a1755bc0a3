package skipool

import "github.com/skipool/skipool/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound         = domain.ErrNotFound
	ErrInvalidQuery     = domain.ErrInvalidQuery
	ErrInvalidThreshold = domain.ErrInvalidThreshold
	ErrInvalidResort    = domain.ErrInvalidResort
	ErrInvalidRide      = domain.ErrInvalidRide
	ErrResortInactive   = domain.ErrResortInactive
	ErrRideNotFound     = domain.ErrRideNotFound
	ErrInvalidBooking   = domain.ErrInvalidBooking
	ErrRideUnavailable  = domain.ErrRideUnavailable
	ErrAlreadyBooked    = domain.ErrAlreadyBooked
)
