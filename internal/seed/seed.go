// Package seed holds the resort catalogue loaded by skipool-seed.
package seed

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/skipool/skipool/internal/domain"
	domresort "github.com/skipool/skipool/internal/domain/resort"
)

//go:embed resorts.yaml
var catalogue []byte

type file struct {
	Resorts []entry `yaml:"resorts"`
}

type entry struct {
	Name        string  `yaml:"name"`
	Aliases     string  `yaml:"aliases"`
	Region      string  `yaml:"region"`
	Province    string  `yaml:"province"`
	Lat         float64 `yaml:"lat"`
	Lng         float64 `yaml:"lng"`
	AltitudeMin int     `yaml:"altitude_min"`
	AltitudeMax int     `yaml:"altitude_max"`
	KmSlopes    int     `yaml:"km_slopes"`
	LiftsCount  int     `yaml:"lifts_count"`
	Website     string  `yaml:"website"`
	Active      *bool   `yaml:"active"`
}

// Default returns the embedded catalogue.
func Default() ([]domresort.Resort, error) {
	return Parse(catalogue)
}

// LoadFile reads a catalogue from disk.
func LoadFile(path string) ([]domresort.Resort, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the operator's -file flag
	if err != nil {
		return nil, fmt.Errorf("open catalogue: %w", err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read catalogue: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalogue. Entries are active unless they say otherwise.
func Parse(data []byte) ([]domresort.Resort, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalogue: %w", err)
	}

	out := make([]domresort.Resort, 0, len(f.Resorts))
	seen := make(map[string]int, len(f.Resorts))
	for i, e := range f.Resorts {
		active := true
		if e.Active != nil {
			active = *e.Active
		}
		r, err := domresort.New(domresort.Params{
			Name:        e.Name,
			Aliases:     e.Aliases,
			Region:      domresort.Region(e.Region),
			Province:    e.Province,
			Lat:         e.Lat,
			Lng:         e.Lng,
			AltitudeMin: e.AltitudeMin,
			AltitudeMax: e.AltitudeMax,
			KmSlopes:    e.KmSlopes,
			LiftsCount:  e.LiftsCount,
			Website:     e.Website,
			Active:      active,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", domain.ErrInvalidResort, i, err)
		}
		if prev, dup := seen[r.Name()]; dup {
			return nil, fmt.Errorf("%w: entry %d duplicates entry %d (%q)", domain.ErrInvalidResort, i, prev, r.Name())
		}
		seen[r.Name()] = i
		out = append(out, r)
	}
	return out, nil
}
