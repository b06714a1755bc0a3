package chi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/skipool/skipool/internal/domain"
	dombooking "github.com/skipool/skipool/internal/domain/booking"
	domresort "github.com/skipool/skipool/internal/domain/resort"
	domride "github.com/skipool/skipool/internal/domain/ride"
	"github.com/skipool/skipool/internal/domain/search/request"
	"github.com/skipool/skipool/internal/domain/search/result"
	bookinguc "github.com/skipool/skipool/internal/usecase/booking"
	healthuc "github.com/skipool/skipool/internal/usecase/health"
	resortuc "github.com/skipool/skipool/internal/usecase/resort"
	rideuc "github.com/skipool/skipool/internal/usecase/ride"
	searchuc "github.com/skipool/skipool/internal/usecase/search"
)

// --- Mocks ---

type mockSearcher struct {
	resp   searchuc.Response
	err    error
	gotReq *request.Request
}

func (m *mockSearcher) Search(_ context.Context, req *request.Request) (searchuc.Response, error) {
	m.gotReq = req
	if m.err != nil {
		return searchuc.Response{}, m.err
	}
	resp := m.resp
	resp.Query = req.Text()
	return resp, nil
}

type mockCatalogue struct {
	list      []domresort.Resort
	listErr   error
	gotFilter resortuc.Filter
	byID      map[string]domresort.Resort
}

func (m *mockCatalogue) List(_ context.Context, f resortuc.Filter) ([]domresort.Resort, error) {
	m.gotFilter = f
	return m.list, m.listErr
}

func (m *mockCatalogue) Get(_ context.Context, id string) (domresort.Resort, error) {
	r, ok := m.byID[id]
	if !ok {
		return domresort.Resort{}, domain.ErrNotFound
	}
	return r, nil
}

type mockBoard struct {
	published   rideuc.PublishInput
	publishErr  error
	upcoming    []domride.Offer
	upcomingErr error
	gotResortID string
	gotLimit    int
}

func (m *mockBoard) Publish(_ context.Context, in rideuc.PublishInput) (domride.Offer, error) {
	m.published = in
	if m.publishErr != nil {
		return domride.Offer{}, m.publishErr
	}
	seats := in.SeatsTotal
	if in.SeatsAvailable != nil {
		seats = *in.SeatsAvailable
	}
	cents, err := domride.ParsePrice(in.PricePerSeat)
	if err != nil {
		return domride.Offer{}, fmt.Errorf("%w: %w", domain.ErrInvalidRide, err)
	}
	return domride.Reconstruct(domride.Params{
		ID: "ride-1", ResortID: in.ResortID, DriverID: in.DriverID, Destination: "Bormio",
		DepartureTime: in.DepartureTime, PickupLabel: in.PickupLabel, PriceCents: cents,
		SeatsTotal: in.SeatsTotal, SeatsAvailable: seats, Status: domride.Published, CreatedAt: fixedNow,
	}), nil
}

func (m *mockBoard) Upcoming(_ context.Context, resortID string, limit int) ([]domride.Offer, error) {
	m.gotResortID, m.gotLimit = resortID, limit
	return m.upcoming, m.upcomingErr
}

type mockDesk struct {
	got bookinguc.Input
	err error
}

func (m *mockDesk) Book(_ context.Context, in bookinguc.Input) (dombooking.Booking, error) {
	m.got = in
	if m.err != nil {
		return dombooking.Booking{}, m.err
	}
	seats := in.Seats
	if seats == 0 {
		seats = 1
	}
	return dombooking.Reconstruct(dombooking.Params{
		ID: "booking-1", RideID: in.RideID, PassengerID: in.PassengerID,
		SeatsReserved: seats, Status: dombooking.Requested, CreatedAt: fixedNow,
	}), nil
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(_ context.Context) healthuc.Report { return m.report }

// --- Fixtures ---

var fixedNow = time.Date(2026, 1, 20, 7, 0, 0, 0, time.UTC)

const testAPIKey = "test-key"

func bormio() domresort.Resort {
	return domresort.Reconstruct(domresort.Params{
		ID: "bormio", Name: "Bormio", Aliases: "Bormio Ski, Bormio 3000",
		Region: domresort.Lombardia, Province: "SO", Lat: 46.4683, Lng: 10.37,
		AltitudeMin: 1225, AltitudeMax: 3012, KmSlopes: 50, LiftsCount: 14,
		Website: "https://www.bormioski.eu", Active: true,
	})
}

func livigno() domresort.Resort {
	return domresort.Reconstruct(domresort.Params{
		ID: "livigno", Name: "Livigno", Region: domresort.Lombardia, Province: "SO",
		Lat: 46.5383, Lng: 10.135, AltitudeMin: 1816, AltitudeMax: 2798, KmSlopes: 115, Active: true,
	})
}

func offer(id string) domride.Offer {
	return domride.Reconstruct(domride.Params{
		ID: id, ResortID: "bormio", DriverID: "driver-1", Destination: "Bormio",
		DepartureTime: fixedNow.Add(3 * time.Hour), PickupLabel: "Milano",
		PriceCents: 1250, SeatsTotal: 3, SeatsAvailable: 2, Status: domride.Published, CreatedAt: fixedNow,
	})
}

type testEnv struct {
	handler  http.Handler
	search   *mockSearcher
	resorts  *mockCatalogue
	rides    *mockBoard
	bookings *mockDesk
	health   *mockHealth
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		search:   &mockSearcher{},
		resorts:  &mockCatalogue{byID: map[string]domresort.Resort{"bormio": bormio()}},
		rides:    &mockBoard{},
		bookings: &mockDesk{},
		health: &mockHealth{report: healthuc.Report{
			Status: healthuc.Healthy,
			Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckOK},
		}},
	}
	srv := NewServer(env.search, env.resorts, env.rides, env.health).WithBookings(env.bookings)
	env.handler = NewRouter(srv, []string{testAPIKey}, zap.NewNop())
	return env
}

func (e *testEnv) do(t *testing.T, method, target, body string, headers ...string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	var rdr io.Reader = http.NoBody
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr, rr.Body.String()
}

func scored(r domresort.Resort, score float64) result.ScoredResort {
	return result.New(r, score)
}
