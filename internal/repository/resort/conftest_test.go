package resort

import (
	"context"
	"path"
	"sort"
	"testing"

	"github.com/skipool/skipool/internal/db"
	domresort "github.com/skipool/skipool/internal/domain/resort"
)

// memStore is an in-memory store with per-operation error injection.
type memStore struct {
	hashes map[string]map[string]string
	values map[string][]byte

	hsetErr  error
	hgetErr  error
	multiErr error
	scanErr  error
	delErr   error
	getErr   error
	setErr   error
}

func newMemStore() *memStore {
	return &memStore{
		hashes: map[string]map[string]string{},
		values: map[string][]byte{},
	}
}

func (m *memStore) HSet(_ context.Context, key string, fields map[string]string) error {
	if m.hsetErr != nil {
		return m.hsetErr
	}
	h, ok := m.hashes[key]
	if !ok {
		h = map[string]string{}
		m.hashes[key] = h
	}
	for k, v := range fields {
		h[k] = v
	}
	return nil
}

func (m *memStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	if m.hgetErr != nil {
		return nil, m.hgetErr
	}
	out := map[string]string{}
	for k, v := range m.hashes[key] {
		out[k] = v
	}
	return out, nil
}

func (m *memStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	if m.multiErr != nil {
		return nil, m.multiErr
	}
	out := make([]map[string]string, len(keys))
	for i, k := range keys {
		out[i], _ = m.HGetAll(ctx, k)
	}
	return out, nil
}

func (m *memStore) Del(_ context.Context, keys ...string) error {
	if m.delErr != nil {
		return m.delErr
	}
	for _, k := range keys {
		delete(m.hashes, k)
		delete(m.values, k)
	}
	return nil
}

func (m *memStore) Scan(_ context.Context, pattern string) ([]string, error) {
	if m.scanErr != nil {
		return nil, m.scanErr
	}
	var keys []string
	for k := range m.hashes {
		if ok, _ := path.Match(pattern, k); ok {
			keys = append(keys, k)
		}
	}
	for k := range m.values {
		if ok, _ := path.Match(pattern, k); ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.values[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func newTestRepo(t *testing.T) (*Repo, *memStore) {
	t.Helper()
	ms := newMemStore()
	return New(ms), ms
}

func testResort(t *testing.T, id, name string, active bool) domresort.Resort {
	t.Helper()
	r, err := domresort.New(domresort.Params{
		ID:          id,
		Name:        name,
		Aliases:     name + " Ski",
		Region:      domresort.Lombardia,
		Province:    "SO",
		Lat:         46.4683,
		Lng:         10.37,
		AltitudeMin: 1225,
		AltitudeMax: 3012,
		KmSlopes:    50,
		LiftsCount:  14,
		Website:     "https://example.org",
		Active:      active,
	})
	if err != nil {
		t.Fatalf("resort.New: %v", err)
	}
	return r
}
