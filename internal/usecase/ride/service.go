package ride

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/skipool/skipool/internal/domain"
	"github.com/skipool/skipool/internal/domain/geo"
	domride "github.com/skipool/skipool/internal/domain/ride"
	logpkg "github.com/skipool/skipool/internal/logger"
)

// Listing limits for Upcoming.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// PublishInput is what a driver submits to offer a ride.
type PublishInput struct {
	ResortID      string
	DriverID      string
	Destination   string
	DepartureTime time.Time
	PickupLabel   string
	PickupLat     float64
	PickupLng     float64
	// PricePerSeat is a decimal amount with at most two decimals, e.g. "12.50".
	PricePerSeat string
	SeatsTotal   int
	// SeatsAvailable defaults to SeatsTotal when nil.
	SeatsAvailable *int
}

// Service publishes and lists ride offers.
type Service struct {
	rides   Repository
	resorts ResortReader
	now     func() time.Time
	newID   func() string
}

// New creates a ride service.
func New(rides Repository, resorts ResortReader) *Service {
	return &Service{rides: rides, resorts: resorts, now: time.Now, newID: uuid.NewString}
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithIDGenerator overrides how offer ids are assigned.
func (s *Service) WithIDGenerator(fn func() string) *Service {
	s.newID = fn
	return s
}

// Publish validates and stores a new offer towards an active resort.
func (s *Service) Publish(ctx context.Context, in PublishInput) (domride.Offer, error) {
	res, err := s.resorts.Get(ctx, in.ResortID)
	if err != nil {
		return domride.Offer{}, fmt.Errorf("resolve resort %s: %w", in.ResortID, err)
	}
	if !res.IsActive() {
		return domride.Offer{}, fmt.Errorf("resort %s: %w", in.ResortID, domain.ErrResortInactive)
	}

	seatsAvailable := in.SeatsTotal
	if in.SeatsAvailable != nil {
		seatsAvailable = *in.SeatsAvailable
	}
	priceCents, err := domride.ParsePrice(in.PricePerSeat)
	if err != nil {
		return domride.Offer{}, fmt.Errorf("%w: price_per_seat: %w", domain.ErrInvalidRide, err)
	}
	destination := in.Destination
	if destination == "" {
		destination = res.Name()
	}

	offer, err := domride.NewOffer(domride.Params{
		ID:             s.newID(),
		ResortID:       res.ID(),
		DriverID:       in.DriverID,
		Destination:    destination,
		DepartureTime:  in.DepartureTime,
		PickupLabel:    in.PickupLabel,
		Pickup:         geo.Point{Lat: in.PickupLat, Lng: in.PickupLng},
		PriceCents:     priceCents,
		SeatsTotal:     in.SeatsTotal,
		SeatsAvailable: seatsAvailable,
	}, s.now())
	if err != nil {
		return domride.Offer{}, fmt.Errorf("%w: %w", domain.ErrInvalidRide, err)
	}

	if err := s.rides.Save(ctx, offer); err != nil {
		return domride.Offer{}, fmt.Errorf("save ride: %w", err)
	}

	logpkg.FromContext(ctx).Info("ride published",
		zap.String("ride_id", offer.ID()),
		zap.String("resort_id", offer.ResortID()),
		zap.Time("departure", offer.DepartureTime()),
	)
	return offer, nil
}

// Upcoming lists bookable offers, soonest first. An empty resortID spans
// every resort; limit is clamped to [1, MaxLimit] with DefaultLimit for 0.
func (s *Service) Upcoming(ctx context.Context, resortID string, limit int) ([]domride.Offer, error) {
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	if resortID != "" {
		if _, err := s.resorts.Get(ctx, resortID); err != nil {
			return nil, fmt.Errorf("resolve resort %s: %w", resortID, err)
		}
	}

	offers, err := s.rides.Upcoming(ctx, resortID, s.now(), limit)
	if err != nil {
		return nil, fmt.Errorf("upcoming rides: %w", err)
	}
	return offers, nil
}
