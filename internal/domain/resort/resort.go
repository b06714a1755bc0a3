package resort

import (
	"fmt"
	"strings"

	"github.com/skipool/skipool/internal/domain/geo"
)

// MaxNameLength is the maximum resort name length in bytes.
const MaxNameLength = 120

// Params carries the attributes of a resort. Aliases is the raw comma-separated field.
type Params struct {
	ID          string
	Name        string
	Aliases     string
	Region      Region
	Province    string
	Lat         float64
	Lng         float64
	AltitudeMin int
	AltitudeMax int
	KmSlopes    int
	LiftsCount  int
	Website     string
	Active      bool
}

// Resort is a ski area (immutable value object).
type Resort struct {
	id          string
	name        string
	rawAliases  string
	aliases     []string
	region      Region
	province    string
	location    geo.Point
	altitudeMin int
	altitudeMax int
	kmSlopes    int
	liftsCount  int
	website     string
	active      bool
}

// New validates and creates a Resort.
// Name: non-empty, max 120 bytes. Coordinates: valid WGS 84. Region: known code.
func New(p Params) (Resort, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return Resort{}, fmt.Errorf("resort name is required")
	}
	if len(name) > MaxNameLength {
		return Resort{}, fmt.Errorf("resort name too long (max %d)", MaxNameLength)
	}
	if !p.Region.IsValid() {
		return Resort{}, fmt.Errorf("unknown region %q", p.Region)
	}
	if !geo.ValidateCoordinates(p.Lat, p.Lng) {
		return Resort{}, fmt.Errorf("invalid coordinates (%v, %v)", p.Lat, p.Lng)
	}
	if p.AltitudeMin < 0 || p.AltitudeMax < p.AltitudeMin {
		return Resort{}, fmt.Errorf("altitude range %d-%d is invalid", p.AltitudeMin, p.AltitudeMax)
	}
	if p.KmSlopes < 0 || p.LiftsCount < 0 {
		return Resort{}, fmt.Errorf("slopes and lifts must not be negative")
	}
	p.Name = name
	return Reconstruct(p), nil
}

// Reconstruct creates a Resort without validation (storage hydration).
func Reconstruct(p Params) Resort {
	return Resort{
		id:          p.ID,
		name:        p.Name,
		rawAliases:  p.Aliases,
		aliases:     ParseAliases(p.Aliases),
		region:      p.Region,
		province:    p.Province,
		location:    geo.Point{Lat: p.Lat, Lng: p.Lng},
		altitudeMin: p.AltitudeMin,
		altitudeMax: p.AltitudeMax,
		kmSlopes:    p.KmSlopes,
		liftsCount:  p.LiftsCount,
		website:     p.Website,
		active:      p.Active,
	}
}

// ParseAliases splits a comma-separated alias field into trimmed, non-empty names.
func ParseAliases(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ID returns the resort identifier.
func (r *Resort) ID() string { return r.id }

// Name returns the canonical display name.
func (r *Resort) Name() string { return r.name }

// RawAliases returns the alias field as stored.
func (r *Resort) RawAliases() string { return r.rawAliases }

// Aliases returns the parsed alternative names.
func (r *Resort) Aliases() []string { return r.aliases }

// Region returns the region code.
func (r *Resort) Region() Region { return r.region }

// Province returns the province or canton.
func (r *Resort) Province() string { return r.province }

// Location returns the resort coordinates.
func (r *Resort) Location() geo.Point { return r.location }

// AltitudeMin returns the lowest skiable altitude in metres.
func (r *Resort) AltitudeMin() int { return r.altitudeMin }

// AltitudeMax returns the highest skiable altitude in metres.
func (r *Resort) AltitudeMax() int { return r.altitudeMax }

// KmSlopes returns the total slope length in kilometres.
func (r *Resort) KmSlopes() int { return r.kmSlopes }

// LiftsCount returns the number of lifts.
func (r *Resort) LiftsCount() int { return r.liftsCount }

// Website returns the resort homepage.
func (r *Resort) Website() string { return r.website }

// IsActive reports whether the resort is visible to search.
func (r *Resort) IsActive() bool { return r.active }

// WithID returns a copy carrying the given identifier.
func (r *Resort) WithID(id string) Resort {
	c := *r
	c.id = id
	return c
}

// SearchableNames returns the lower-cased canonical name followed by the
// lower-cased aliases, without duplicates.
func (r *Resort) SearchableNames() []string {
	names := make([]string, 0, 1+len(r.aliases))
	seen := make(map[string]struct{}, 1+len(r.aliases))
	add := func(s string) {
		s = strings.ToLower(s)
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		names = append(names, s)
	}
	add(r.name)
	for _, a := range r.aliases {
		add(a)
	}
	return names
}
