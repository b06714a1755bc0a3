package ride

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/skipool/skipool/internal/domain/geo"
)

// MaxSeats is the largest number of passenger seats an offer may publish.
const MaxSeats = 8

// MaxPriceCents is the largest per-seat price, 999999.99.
const MaxPriceCents int64 = 99_999_999

// Status is the lifecycle state of a ride offer.
type Status string

// Offer statuses.
const (
	Published Status = "published"
	Cancelled Status = "cancelled"
	Completed Status = "completed"
)

// IsValid checks if the status is one of the supported values.
func (s Status) IsValid() bool {
	return s == Published || s == Cancelled || s == Completed
}

// Params carries the attributes of a ride offer.
type Params struct {
	ID             string
	ResortID       string
	DriverID       string
	Destination    string
	DepartureTime  time.Time
	PickupLabel    string
	Pickup         geo.Point
	PriceCents     int64
	SeatsTotal     int
	SeatsAvailable int
	Status         Status
	CreatedAt      time.Time
}

// Offer is a published car ride towards a resort (immutable value object).
type Offer struct {
	id             string
	resortID       string
	driverID       string
	destination    string
	departureTime  time.Time
	pickupLabel    string
	pickup         geo.Point
	priceCents     int64
	seatsTotal     int
	seatsAvailable int
	status         Status
	createdAt      time.Time
}

// NewOffer validates and creates an Offer relative to now.
// Departure must be in the future, seats 1-8, price 0-999999.99.
// Status defaults to published and CreatedAt to now.
func NewOffer(p Params, now time.Time) (Offer, error) {
	if p.ResortID == "" {
		return Offer{}, fmt.Errorf("resort_id is required")
	}
	if p.DriverID == "" {
		return Offer{}, fmt.Errorf("driver_id is required")
	}
	if !p.DepartureTime.After(now) {
		return Offer{}, fmt.Errorf("departure_time must be in the future")
	}
	if p.PickupLabel == "" {
		return Offer{}, fmt.Errorf("pickup_label is required")
	}
	if !geo.ValidateCoordinates(p.Pickup.Lat, p.Pickup.Lng) {
		return Offer{}, fmt.Errorf("invalid pickup coordinates")
	}
	if p.PriceCents < 0 || p.PriceCents > MaxPriceCents {
		return Offer{}, fmt.Errorf("price_per_seat must be between 0 and %s", FormatPrice(MaxPriceCents))
	}
	if p.SeatsTotal < 1 || p.SeatsTotal > MaxSeats {
		return Offer{}, fmt.Errorf("seats_total must be between 1 and %d", MaxSeats)
	}
	if p.SeatsAvailable < 0 || p.SeatsAvailable > p.SeatsTotal {
		return Offer{}, fmt.Errorf("seats_available must be between 0 and seats_total")
	}
	if p.Status == "" {
		p.Status = Published
	}
	if !p.Status.IsValid() {
		return Offer{}, fmt.Errorf("invalid status %q", p.Status)
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	return Reconstruct(p), nil
}

// Reconstruct creates an Offer without validation (storage hydration).
func Reconstruct(p Params) Offer {
	return Offer{
		id:             p.ID,
		resortID:       p.ResortID,
		driverID:       p.DriverID,
		destination:    p.Destination,
		departureTime:  p.DepartureTime.UTC(),
		pickupLabel:    p.PickupLabel,
		pickup:         p.Pickup,
		priceCents:     p.PriceCents,
		seatsTotal:     p.SeatsTotal,
		seatsAvailable: p.SeatsAvailable,
		status:         p.Status,
		createdAt:      p.CreatedAt.UTC(),
	}
}

// ID returns the offer identifier.
func (o *Offer) ID() string { return o.id }

// ResortID returns the identifier of the destination resort.
func (o *Offer) ResortID() string { return o.resortID }

// DriverID returns the identifier of the publishing driver.
func (o *Offer) DriverID() string { return o.driverID }

// Destination returns the free-form drop-off label.
func (o *Offer) Destination() string { return o.destination }

// DepartureTime returns the departure instant in UTC.
func (o *Offer) DepartureTime() time.Time { return o.departureTime }

// PickupLabel returns the meeting point description.
func (o *Offer) PickupLabel() string { return o.pickupLabel }

// Pickup returns the meeting point coordinates.
func (o *Offer) Pickup() geo.Point { return o.pickup }

// PriceCents returns the price per passenger seat in cents.
func (o *Offer) PriceCents() int64 { return o.priceCents }

// Price returns the per-seat price formatted with two decimals.
func (o *Offer) Price() string { return FormatPrice(o.priceCents) }

// SeatsTotal returns the number of passenger seats offered.
func (o *Offer) SeatsTotal() int { return o.seatsTotal }

// SeatsAvailable returns the number of seats not yet reserved.
func (o *Offer) SeatsAvailable() int { return o.seatsAvailable }

// Status returns the lifecycle state.
func (o *Offer) Status() Status { return o.status }

// CreatedAt returns the publication instant in UTC.
func (o *Offer) CreatedAt() time.Time { return o.createdAt }

// WithID returns a copy carrying the given identifier.
func (o *Offer) WithID(id string) Offer {
	c := *o
	c.id = id
	return c
}

// IsBookable reports whether a passenger could still join the ride at now.
func (o *Offer) IsBookable(now time.Time) bool {
	return o.status == Published && o.departureTime.After(now) && o.seatsAvailable >= 1
}

// ParsePrice converts a decimal amount with at most two fractional digits
// ("15", "12.5", "12.50") to cents without going through floating point.
func ParsePrice(s string) (int64, error) {
	s = strings.TrimSpace(s)
	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" || (hasFrac && (frac == "" || len(frac) > 2)) {
		return 0, fmt.Errorf("invalid price %q: want at most two decimals", s)
	}
	for _, part := range []string{whole, frac} {
		if strings.Trim(part, "0123456789") != "" {
			return 0, fmt.Errorf("invalid price %q", s)
		}
	}
	if len(whole) > 6 {
		return 0, fmt.Errorf("invalid price %q: above %s", s, FormatPrice(MaxPriceCents))
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", s, err)
	}
	cents := int64(0)
	if frac != "" {
		for len(frac) < 2 {
			frac += "0"
		}
		if cents, err = strconv.ParseInt(frac, 10, 64); err != nil {
			return 0, fmt.Errorf("invalid price %q: %w", s, err)
		}
	}
	return units*100 + cents, nil
}

// FormatPrice renders cents as a two-decimal amount.
func FormatPrice(cents int64) string {
	sign := ""
	if cents < 0 {
		sign, cents = "-", -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
