package ride

import (
	"context"
	"path"
	"sort"
	"strconv"
	"testing"
	"time"

	"github.com/skipool/skipool/internal/domain/geo"
	domride "github.com/skipool/skipool/internal/domain/ride"
)

type mockStore struct {
	hashes    map[string]map[string]string
	zsets     map[string]map[string]float64
	hsetErr   error
	zaddErr   error
	zrangeErr error
	scanErr   error
	multiErr  error
	delErr    error
	patterns  []string
	zranges   []string
}

func (m *mockStore) HSet(_ context.Context, key string, fields map[string]string) error {
	if m.hsetErr != nil {
		return m.hsetErr
	}
	m.hashes[key] = fields
	return nil
}

func (m *mockStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	if m.multiErr != nil {
		return nil, m.multiErr
	}
	return m.hashes[key], nil
}

func (m *mockStore) ZAdd(_ context.Context, key string, score float64, member string) error {
	if m.zaddErr != nil {
		return m.zaddErr
	}
	if m.zsets[key] == nil {
		m.zsets[key] = map[string]float64{}
	}
	m.zsets[key][member] = score
	return nil
}

// ZRangeByScore supports a numeric inclusive min and "+inf" max, which is
// all the repo asks for.
func (m *mockStore) ZRangeByScore(_ context.Context, key, minScore, _ string) ([]string, error) {
	m.zranges = append(m.zranges, key)
	if m.zrangeErr != nil {
		return nil, m.zrangeErr
	}
	lo, err := strconv.ParseFloat(minScore, 64)
	if err != nil {
		return nil, err
	}
	var members []string
	for member, score := range m.zsets[key] {
		if score >= lo {
			members = append(members, member)
		}
	}
	sort.Slice(members, func(i, j int) bool {
		si, sj := m.zsets[key][members[i]], m.zsets[key][members[j]]
		if si != sj {
			return si < sj
		}
		return members[i] < members[j]
	})
	return members, nil
}

func (m *mockStore) Del(_ context.Context, keys ...string) error {
	if m.delErr != nil {
		return m.delErr
	}
	for _, k := range keys {
		delete(m.hashes, k)
		delete(m.zsets, k)
	}
	return nil
}

func (m *mockStore) HGetAllMulti(_ context.Context, keys []string) ([]map[string]string, error) {
	if m.multiErr != nil {
		return nil, m.multiErr
	}
	out := make([]map[string]string, len(keys))
	for i, k := range keys {
		out[i] = m.hashes[k]
	}
	return out, nil
}

func (m *mockStore) Scan(_ context.Context, pattern string) ([]string, error) {
	m.patterns = append(m.patterns, pattern)
	if m.scanErr != nil {
		return nil, m.scanErr
	}
	var keys []string
	for k := range m.hashes {
		if ok, _ := path.Match(pattern, k); ok {
			keys = append(keys, k)
		}
	}
	for k := range m.zsets {
		if ok, _ := path.Match(pattern, k); ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

var baseTime = time.Date(2026, 2, 1, 6, 30, 0, 0, time.UTC)

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{
		hashes: map[string]map[string]string{},
		zsets:  map[string]map[string]float64{},
	}
	return New(ms), ms
}

type offerOpt func(*domride.Params)

func testOffer(id, resortID string, departIn time.Duration, opts ...offerOpt) domride.Offer {
	p := domride.Params{
		ID:             id,
		ResortID:       resortID,
		DriverID:       "driver-1",
		Destination:    "Bormio",
		DepartureTime:  baseTime.Add(departIn),
		PickupLabel:    "Milano Centrale",
		Pickup:         geo.Point{Lat: 45.4859, Lng: 9.2040},
		PriceCents:     1250,
		SeatsTotal:     3,
		SeatsAvailable: 3,
		Status:         domride.Published,
		CreatedAt:      baseTime.Add(-time.Hour),
	}
	for _, o := range opts {
		o(&p)
	}
	return domride.Reconstruct(p)
}

func seats(n int) offerOpt { return func(p *domride.Params) { p.SeatsAvailable = n } }

func status(s domride.Status) offerOpt { return func(p *domride.Params) { p.Status = s } }
