package booking

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of a seat request.
type Status string

// Booking statuses. Only Requested is produced today; the rest are accepted
// when reading stored records.
const (
	Requested Status = "requested"
	Accepted  Status = "accepted"
	Rejected  Status = "rejected"
	Cancelled Status = "cancelled"
	Completed Status = "completed"
)

// IsValid checks if the status is one of the supported values.
func (s Status) IsValid() bool {
	switch s {
	case Requested, Accepted, Rejected, Cancelled, Completed:
		return true
	}
	return false
}

// Params carries the attributes of a booking.
type Params struct {
	ID            string
	RideID        string
	PassengerID   string
	SeatsReserved int
	Status        Status
	CreatedAt     time.Time
}

// Booking is a passenger's request for seats on one ride. A passenger holds
// at most one booking per ride.
type Booking struct {
	id            string
	rideID        string
	passengerID   string
	seatsReserved int
	status        Status
	createdAt     time.Time
}

// New validates p and returns a requested booking created at now. Seats
// default to 1.
func New(p Params, now time.Time) (Booking, error) {
	if p.RideID == "" {
		return Booking{}, fmt.Errorf("ride_id is required")
	}
	if p.PassengerID == "" {
		return Booking{}, fmt.Errorf("passenger_id is required")
	}
	if p.SeatsReserved == 0 {
		p.SeatsReserved = 1
	}
	if p.SeatsReserved < 0 {
		return Booking{}, fmt.Errorf("seats must be positive")
	}
	p.Status = Requested
	p.CreatedAt = now.UTC()
	return Reconstruct(p), nil
}

// Reconstruct rebuilds a booking from stored fields without validation.
func Reconstruct(p Params) Booking {
	return Booking{
		id:            p.ID,
		rideID:        p.RideID,
		passengerID:   p.PassengerID,
		seatsReserved: p.SeatsReserved,
		status:        p.Status,
		createdAt:     p.CreatedAt,
	}
}

func (b *Booking) ID() string           { return b.id }
func (b *Booking) RideID() string       { return b.rideID }
func (b *Booking) PassengerID() string  { return b.passengerID }
func (b *Booking) SeatsReserved() int   { return b.seatsReserved }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
