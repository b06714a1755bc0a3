package chi

import (
	"encoding/json"
	"time"

	dombooking "github.com/skipool/skipool/internal/domain/booking"
	domresort "github.com/skipool/skipool/internal/domain/resort"
	domride "github.com/skipool/skipool/internal/domain/ride"
	"github.com/skipool/skipool/internal/domain/search/result"
)

// ErrorCode is the stable machine-readable error identifier.
type ErrorCode string

// Error codes returned in ErrorResponse.
const (
	CodeBadRequest       ErrorCode = "bad_request"
	CodeUnauthorized     ErrorCode = "unauthorized"
	CodeValidationFailed ErrorCode = "validation_failed"
	CodeResortNotFound   ErrorCode = "resort_not_found"
	CodeResortInactive   ErrorCode = "resort_inactive"
	CodeRideNotFound     ErrorCode = "ride_not_found"
	CodeRideUnavailable  ErrorCode = "ride_unavailable"
	CodeAlreadyBooked    ErrorCode = "already_booked"
	CodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// Resort is the public resort representation.
type Resort struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Aliases     []string `json:"aliases"`
	Region      string   `json:"region"`
	RegionLabel string   `json:"region_label"`
	Province    string   `json:"province"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	AltitudeMin int      `json:"altitude_min"`
	AltitudeMax int      `json:"altitude_max"`
	KmSlopes    int      `json:"km_slopes"`
	LiftsCount  int      `json:"lifts_count"`
	Website     string   `json:"website,omitempty"`
}

// ResortList is the body of GET /api/v1/resorts.
type ResortList struct {
	Items []Resort `json:"items"`
	Count int      `json:"count"`
}

// SearchResultItem is a resort match with its score and upcoming rides.
type SearchResultItem struct {
	Resort
	Score      float64  `json:"score"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
	Rides      []Ride   `json:"rides"`
}

// SearchResponse is the body of GET /api/v1/resorts/search.
type SearchResponse struct {
	Query   string             `json:"query"`
	Count   int                `json:"count"`
	Results []SearchResultItem `json:"results"`
}

// Ride is the public ride offer representation.
type Ride struct {
	ID             string    `json:"id"`
	ResortID       string    `json:"resort_id"`
	DriverID       string    `json:"driver_id"`
	Destination    string    `json:"destination"`
	DepartureTime  time.Time `json:"departure_time"`
	PickupLabel    string    `json:"pickup_label"`
	PickupLat      float64   `json:"pickup_lat"`
	PickupLng      float64   `json:"pickup_lng"`
	PricePerSeat   string    `json:"price_per_seat"`
	SeatsTotal     int       `json:"seats_total"`
	SeatsAvailable int       `json:"seats_available"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// RideList is the body of GET /api/v1/rides.
type RideList struct {
	Items []Ride `json:"items"`
	Count int    `json:"count"`
}

// PublishRideRequest is the body of POST /api/v1/rides.
type PublishRideRequest struct {
	ResortID      string    `json:"resort_id"`
	DriverID      string    `json:"driver_id"`
	Destination   string    `json:"destination"`
	DepartureTime time.Time `json:"departure_time"`
	PickupLabel   string    `json:"pickup_label"`
	PickupLat     float64   `json:"pickup_lat"`
	PickupLng     float64   `json:"pickup_lng"`
	// PricePerSeat accepts 15, 12.5 or "12.50"; more than two decimals is rejected.
	PricePerSeat   json.Number `json:"price_per_seat"`
	SeatsTotal     int         `json:"seats_total"`
	SeatsAvailable *int        `json:"seats_available"`
}

// BookRideRequest is the body of POST /api/v1/rides/{id}/bookings.
type BookRideRequest struct {
	PassengerID string `json:"passenger_id"`
	Seats       int    `json:"seats"`
}

// Booking is the public booking representation.
type Booking struct {
	ID            string    `json:"id"`
	RideID        string    `json:"ride_id"`
	PassengerID   string    `json:"passenger_id"`
	SeatsReserved int       `json:"seats_reserved"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func resortToDTO(r domresort.Resort) Resort {
	loc := r.Location()
	aliases := r.Aliases()
	if aliases == nil {
		aliases = []string{}
	}
	return Resort{
		ID:          r.ID(),
		Name:        r.Name(),
		Aliases:     aliases,
		Region:      string(r.Region()),
		RegionLabel: r.Region().Label(),
		Province:    r.Province(),
		Lat:         loc.Lat,
		Lng:         loc.Lng,
		AltitudeMin: r.AltitudeMin(),
		AltitudeMax: r.AltitudeMax(),
		KmSlopes:    r.KmSlopes(),
		LiftsCount:  r.LiftsCount(),
		Website:     r.Website(),
	}
}

func rideToDTO(o domride.Offer) Ride {
	pickup := o.Pickup()
	return Ride{
		ID:             o.ID(),
		ResortID:       o.ResortID(),
		DriverID:       o.DriverID(),
		Destination:    o.Destination(),
		DepartureTime:  o.DepartureTime(),
		PickupLabel:    o.PickupLabel(),
		PickupLat:      pickup.Lat,
		PickupLng:      pickup.Lng,
		PricePerSeat:   o.Price(),
		SeatsTotal:     o.SeatsTotal(),
		SeatsAvailable: o.SeatsAvailable(),
		Status:         string(o.Status()),
		CreatedAt:      o.CreatedAt(),
	}
}

func bookingToDTO(b dombooking.Booking) Booking {
	return Booking{
		ID:            b.ID(),
		RideID:        b.RideID(),
		PassengerID:   b.PassengerID(),
		SeatsReserved: b.SeatsReserved(),
		Status:        string(b.Status()),
		CreatedAt:     b.CreatedAt(),
	}
}

func ridesToDTO(offers []domride.Offer) []Ride {
	out := make([]Ride, len(offers))
	for i := range offers {
		out[i] = rideToDTO(offers[i])
	}
	return out
}

func searchResultToDTO(m result.ScoredResort) SearchResultItem {
	return SearchResultItem{
		Resort:     resortToDTO(m.Resort()),
		Score:      m.Score(),
		DistanceKm: m.DistanceKm(),
		Rides:      ridesToDTO(m.Rides()),
	}
}
