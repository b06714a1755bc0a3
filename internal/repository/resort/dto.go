package resort

import (
	"fmt"
	"strconv"

	domresort "github.com/skipool/skipool/internal/domain/resort"
)

func resortToHash(r domresort.Resort) map[string]string {
	loc := r.Location()
	active := "0"
	if r.IsActive() {
		active = "1"
	}
	return map[string]string{
		"id":           r.ID(),
		"name":         r.Name(),
		"aliases":      r.RawAliases(),
		"region":       string(r.Region()),
		"province":     r.Province(),
		"lat":          strconv.FormatFloat(loc.Lat, 'f', -1, 64),
		"lng":          strconv.FormatFloat(loc.Lng, 'f', -1, 64),
		"altitude_min": strconv.Itoa(r.AltitudeMin()),
		"altitude_max": strconv.Itoa(r.AltitudeMax()),
		"km_slopes":    strconv.Itoa(r.KmSlopes()),
		"lifts_count":  strconv.Itoa(r.LiftsCount()),
		"website":      r.Website(),
		"active":       active,
	}
}

// resortFromHash hydrates a Resort from an HGETALL map.
// Numeric fields that are absent default to zero; malformed ones are an error.
func resortFromHash(m map[string]string) (domresort.Resort, error) {
	lat, err := parseFloat(m, "lat")
	if err != nil {
		return domresort.Resort{}, err
	}
	lng, err := parseFloat(m, "lng")
	if err != nil {
		return domresort.Resort{}, err
	}

	ints := map[string]int{}
	for _, f := range []string{"altitude_min", "altitude_max", "km_slopes", "lifts_count"} {
		v, err := parseInt(m, f)
		if err != nil {
			return domresort.Resort{}, err
		}
		ints[f] = v
	}

	return domresort.Reconstruct(domresort.Params{
		ID:          m["id"],
		Name:        m["name"],
		Aliases:     m["aliases"],
		Region:      domresort.Region(m["region"]),
		Province:    m["province"],
		Lat:         lat,
		Lng:         lng,
		AltitudeMin: ints["altitude_min"],
		AltitudeMax: ints["altitude_max"],
		KmSlopes:    ints["km_slopes"],
		LiftsCount:  ints["lifts_count"],
		Website:     m["website"],
		Active:      m["active"] == "1",
	}), nil
}

func parseFloat(m map[string]string, field string) (float64, error) {
	s := m[field]
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", field, err)
	}
	return v, nil
}

func parseInt(m map[string]string, field string) (int, error) {
	s := m[field]
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", field, err)
	}
	return v, nil
}
