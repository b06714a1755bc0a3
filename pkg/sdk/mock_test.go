package skipool

import (
	"context"
	"time"

	dombooking "github.com/skipool/skipool/internal/domain/booking"
	"github.com/skipool/skipool/internal/domain/geo"
	domresort "github.com/skipool/skipool/internal/domain/resort"
	domride "github.com/skipool/skipool/internal/domain/ride"
	"github.com/skipool/skipool/internal/domain/search/request"
	bookinguc "github.com/skipool/skipool/internal/usecase/booking"
	healthuc "github.com/skipool/skipool/internal/usecase/health"
	resortuc "github.com/skipool/skipool/internal/usecase/resort"
	rideuc "github.com/skipool/skipool/internal/usecase/ride"
	searchuc "github.com/skipool/skipool/internal/usecase/search"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, req *request.Request) (searchuc.Response, error)
}

func (m *mockSearchUC) Search(ctx context.Context, req *request.Request) (searchuc.Response, error) {
	return m.searchFn(ctx, req)
}

// --- resortUseCase mock ---

type mockResortUC struct {
	listFn   func(ctx context.Context, f resortuc.Filter) ([]domresort.Resort, error)
	getFn    func(ctx context.Context, id string) (domresort.Resort, error)
	importFn func(ctx context.Context, resorts []domresort.Resort, clearFirst bool) (resortuc.ImportStats, error)
}

func (m *mockResortUC) List(ctx context.Context, f resortuc.Filter) ([]domresort.Resort, error) {
	return m.listFn(ctx, f)
}

func (m *mockResortUC) Get(ctx context.Context, id string) (domresort.Resort, error) {
	return m.getFn(ctx, id)
}

func (m *mockResortUC) Import(
	ctx context.Context, resorts []domresort.Resort, clearFirst bool,
) (resortuc.ImportStats, error) {
	return m.importFn(ctx, resorts, clearFirst)
}

// --- rideUseCase mock ---

type mockRideUC struct {
	publishFn  func(ctx context.Context, in rideuc.PublishInput) (domride.Offer, error)
	upcomingFn func(ctx context.Context, resortID string, limit int) ([]domride.Offer, error)
}

func (m *mockRideUC) Publish(ctx context.Context, in rideuc.PublishInput) (domride.Offer, error) {
	return m.publishFn(ctx, in)
}

func (m *mockRideUC) Upcoming(ctx context.Context, resortID string, limit int) ([]domride.Offer, error) {
	return m.upcomingFn(ctx, resortID, limit)
}

// --- bookingUseCase mock ---

type mockBookingUC struct {
	bookFn func(ctx context.Context, in bookinguc.Input) (dombooking.Booking, error)
}

func (m *mockBookingUC) Book(ctx context.Context, in bookinguc.Input) (dombooking.Booking, error) {
	return m.bookFn(ctx, in)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }

// --- helpers ---

var departure = time.Date(2026, 1, 10, 7, 30, 0, 0, time.UTC)

func testResort() domresort.Resort {
	return domresort.Reconstruct(domresort.Params{
		ID:          "r1",
		Name:        "Bormio",
		Aliases:     "Bormio 2000, Bormio 3000",
		Region:      domresort.Lombardia,
		Province:    "Sondrio",
		Lat:         46.4683,
		Lng:         10.3717,
		AltitudeMin: 1225,
		AltitudeMax: 3012,
		KmSlopes:    50,
		LiftsCount:  14,
		Active:      true,
	})
}

func testOffer() domride.Offer {
	return domride.Reconstruct(domride.Params{
		ID:             "o1",
		ResortID:       "r1",
		DriverID:       "d1",
		Destination:    "Bormio",
		DepartureTime:  departure,
		PickupLabel:    "Milano Lambrate",
		Pickup:         geo.Point{Lat: 45.4847, Lng: 9.2364},
		PriceCents:     1250,
		SeatsTotal:     3,
		SeatsAvailable: 2,
		Status:         domride.Published,
		CreatedAt:      departure.Add(-24 * time.Hour),
	})
}
