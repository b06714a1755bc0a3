package skipool

import (
	"time"

	dombooking "github.com/skipool/skipool/internal/domain/booking"
	domresort "github.com/skipool/skipool/internal/domain/resort"
	domride "github.com/skipool/skipool/internal/domain/ride"
	"github.com/skipool/skipool/internal/domain/search/result"
)

// Point is a WGS 84 position in decimal degrees.
type Point struct {
	Lat float64
	Lng float64
}

// Resort is a ski area.
type Resort struct {
	ID          string
	Name        string
	Aliases     []string
	Region      string
	RegionLabel string
	Province    string
	Location    Point
	AltitudeMin int
	AltitudeMax int
	KmSlopes    int
	LiftsCount  int
	Website     string
	Active      bool
}

// ResortInput describes a resort to import. Aliases is comma-separated.
// Active defaults to true when nil.
type ResortInput struct {
	Name        string
	Aliases     string
	Region      string
	Province    string
	Lat         float64
	Lng         float64
	AltitudeMin int
	AltitudeMax int
	KmSlopes    int
	LiftsCount  int
	Website     string
	Active      *bool
}

// ResortFilter narrows List. Empty fields are ignored.
type ResortFilter struct {
	Region string
	Name   string
}

// ImportStats summarises an import run.
type ImportStats struct {
	Created int
	Updated int
	Deleted int
	// RidesDeleted counts ride offers removed by a clearing import.
	RidesDeleted int
	Total        int
}

// Ride is a published car ride towards a resort.
type Ride struct {
	ID             string
	ResortID       string
	DriverID       string
	Destination    string
	DepartureTime  time.Time
	PickupLabel    string
	Pickup         Point
	PricePerSeat   string
	SeatsTotal     int
	SeatsAvailable int
	Status         string
	CreatedAt      time.Time
}

// PublishRide describes a new ride offer. SeatsAvailable defaults to SeatsTotal.
type PublishRide struct {
	ResortID      string
	DriverID      string
	Destination   string
	DepartureTime time.Time
	PickupLabel   string
	Pickup        Point
	// PricePerSeat is a decimal amount with at most two decimals, e.g. "12.50".
	PricePerSeat   string
	SeatsTotal     int
	SeatsAvailable *int
}

// Booking is a passenger's seat request on a ride.
type Booking struct {
	ID            string
	RideID        string
	PassengerID   string
	SeatsReserved int
	Status        string
	CreatedAt     time.Time
}

// BookRide requests seats on a ride. Seats defaults to 1.
type BookRide struct {
	RideID      string
	PassengerID string
	Seats       int
}

// SearchQuery is a fuzzy resort lookup. Threshold nil means the default 0.4.
// With Near set, results are ordered by distance instead of relevance.
type SearchQuery struct {
	Text      string
	Threshold *float64
	Near      *Point
}

// SearchResult is one matching resort.
type SearchResult struct {
	Resort
	Score      float64
	DistanceKm *float64
	Rides      []Ride
}

// SearchResponse lists matching resorts in ranking order.
type SearchResponse struct {
	Query   string
	Count   int
	Results []SearchResult
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "degraded"
	Checks map[string]string // component → "ok"/"error"
}

func fromInternalResort(r domresort.Resort) Resort {
	loc := r.Location()
	return Resort{
		ID:          r.ID(),
		Name:        r.Name(),
		Aliases:     r.Aliases(),
		Region:      string(r.Region()),
		RegionLabel: r.Region().Label(),
		Province:    r.Province(),
		Location:    Point{Lat: loc.Lat, Lng: loc.Lng},
		AltitudeMin: r.AltitudeMin(),
		AltitudeMax: r.AltitudeMax(),
		KmSlopes:    r.KmSlopes(),
		LiftsCount:  r.LiftsCount(),
		Website:     r.Website(),
		Active:      r.IsActive(),
	}
}

func fromInternalBooking(b dombooking.Booking) Booking {
	return Booking{
		ID:            b.ID(),
		RideID:        b.RideID(),
		PassengerID:   b.PassengerID(),
		SeatsReserved: b.SeatsReserved(),
		Status:        string(b.Status()),
		CreatedAt:     b.CreatedAt(),
	}
}

func fromInternalRide(o domride.Offer) Ride {
	p := o.Pickup()
	return Ride{
		ID:             o.ID(),
		ResortID:       o.ResortID(),
		DriverID:       o.DriverID(),
		Destination:    o.Destination(),
		DepartureTime:  o.DepartureTime(),
		PickupLabel:    o.PickupLabel(),
		Pickup:         Point{Lat: p.Lat, Lng: p.Lng},
		PricePerSeat:   o.Price(),
		SeatsTotal:     o.SeatsTotal(),
		SeatsAvailable: o.SeatsAvailable(),
		Status:         string(o.Status()),
		CreatedAt:      o.CreatedAt(),
	}
}

func fromInternalRides(offers []domride.Offer) []Ride {
	out := make([]Ride, len(offers))
	for i := range offers {
		out[i] = fromInternalRide(offers[i])
	}
	return out
}

func fromInternalResult(s result.ScoredResort) SearchResult {
	return SearchResult{
		Resort:     fromInternalResort(s.Resort()),
		Score:      s.Score(),
		DistanceKm: s.DistanceKm(),
		Rides:      fromInternalRides(s.Rides()),
	}
}

func toInternalResort(in ResortInput) (domresort.Resort, error) {
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	return domresort.New(domresort.Params{
		Name:        in.Name,
		Aliases:     in.Aliases,
		Region:      domresort.Region(in.Region),
		Province:    in.Province,
		Lat:         in.Lat,
		Lng:         in.Lng,
		AltitudeMin: in.AltitudeMin,
		AltitudeMax: in.AltitudeMax,
		KmSlopes:    in.KmSlopes,
		LiftsCount:  in.LiftsCount,
		Website:     in.Website,
		Active:      active,
	})
}
