package ride

import (
	"fmt"
	"strconv"
	"time"

	"github.com/skipool/skipool/internal/domain/geo"
	domride "github.com/skipool/skipool/internal/domain/ride"
)

func offerToHash(o domride.Offer) map[string]string {
	pickup := o.Pickup()
	return map[string]string{
		"id":              o.ID(),
		"resort_id":       o.ResortID(),
		"driver_id":       o.DriverID(),
		"destination":     o.Destination(),
		"departure_time":  o.DepartureTime().Format(time.RFC3339Nano),
		"pickup_label":    o.PickupLabel(),
		"pickup_lat":      strconv.FormatFloat(pickup.Lat, 'f', -1, 64),
		"pickup_lng":      strconv.FormatFloat(pickup.Lng, 'f', -1, 64),
		"price_per_seat":  o.Price(),
		"seats_total":     strconv.Itoa(o.SeatsTotal()),
		"seats_available": strconv.Itoa(o.SeatsAvailable()),
		"status":          string(o.Status()),
		"created_at":      o.CreatedAt().Format(time.RFC3339Nano),
	}
}

func offerFromHash(m map[string]string) (domride.Offer, error) {
	departure, err := time.Parse(time.RFC3339Nano, m["departure_time"])
	if err != nil {
		return domride.Offer{}, fmt.Errorf("invalid departure_time: %w", err)
	}
	var createdAt time.Time
	if s := m["created_at"]; s != "" {
		if createdAt, err = time.Parse(time.RFC3339Nano, s); err != nil {
			return domride.Offer{}, fmt.Errorf("invalid created_at: %w", err)
		}
	}

	floats := make(map[string]float64, 2)
	for _, f := range []string{"pickup_lat", "pickup_lng"} {
		if floats[f], err = strconv.ParseFloat(orZero(m[f]), 64); err != nil {
			return domride.Offer{}, fmt.Errorf("invalid %s: %w", f, err)
		}
	}
	price, err := domride.ParsePrice(orZero(m["price_per_seat"]))
	if err != nil {
		return domride.Offer{}, fmt.Errorf("invalid price_per_seat: %w", err)
	}
	ints := make(map[string]int, 2)
	for _, f := range []string{"seats_total", "seats_available"} {
		if ints[f], err = strconv.Atoi(orZero(m[f])); err != nil {
			return domride.Offer{}, fmt.Errorf("invalid %s: %w", f, err)
		}
	}

	return domride.Reconstruct(domride.Params{
		ID:             m["id"],
		ResortID:       m["resort_id"],
		DriverID:       m["driver_id"],
		Destination:    m["destination"],
		DepartureTime:  departure,
		PickupLabel:    m["pickup_label"],
		Pickup:         geo.Point{Lat: floats["pickup_lat"], Lng: floats["pickup_lng"]},
		PriceCents:     price,
		SeatsTotal:     ints["seats_total"],
		SeatsAvailable: ints["seats_available"],
		Status:         domride.Status(m["status"]),
		CreatedAt:      createdAt,
	}), nil
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
