package resort

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/skipool/skipool/internal/domain"
	domresort "github.com/skipool/skipool/internal/domain/resort"
)

// --- Mocks ---

type mockRepo struct {
	byID      map[string]domresort.Resort
	saved     []domresort.Resort
	listErr   error
	findErr   error
	saveErr   error
	deleteErr error
}

func newMockRepo(resorts ...domresort.Resort) *mockRepo {
	m := &mockRepo{byID: map[string]domresort.Resort{}}
	for _, r := range resorts {
		m.byID[r.ID()] = r
	}
	return m
}

func (m *mockRepo) Save(_ context.Context, r domresort.Resort) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, r)
	m.byID[r.ID()] = r
	return nil
}

func (m *mockRepo) Get(_ context.Context, id string) (domresort.Resort, error) {
	r, ok := m.byID[id]
	if !ok {
		return domresort.Resort{}, domain.ErrNotFound
	}
	return r, nil
}

func (m *mockRepo) FindByName(_ context.Context, name string) (domresort.Resort, error) {
	if m.findErr != nil {
		return domresort.Resort{}, m.findErr
	}
	for _, r := range m.byID {
		if strings.EqualFold(r.Name(), name) {
			return r, nil
		}
	}
	return domresort.Resort{}, domain.ErrNotFound
}

func (m *mockRepo) List(_ context.Context) ([]domresort.Resort, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]domresort.Resort, 0, len(m.byID))
	for _, r := range m.byID {
		out = append(out, r)
	}
	return out, nil
}

// ListActive returns resorts in the fixed order tests insert them by name.
func (m *mockRepo) ListActive(ctx context.Context) ([]domresort.Resort, error) {
	all, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, r := range all {
		if r.IsActive() {
			out = append(out, r)
		}
	}
	sortByName(out)
	return out, nil
}

func (m *mockRepo) DeleteAll(_ context.Context) (int, error) {
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	n := len(m.byID)
	m.byID = map[string]domresort.Resort{}
	return n, nil
}

type mockRides struct {
	count    int
	calls    int
	purgeErr error
}

func (m *mockRides) DeleteAll(_ context.Context) (int, error) {
	m.calls++
	if m.purgeErr != nil {
		return 0, m.purgeErr
	}
	n := m.count
	m.count = 0
	return n, nil
}

func sortByName(rs []domresort.Resort) {
	for i := 1; i < len(rs); i++ {
		for j := i; j > 0 && rs[j].Name() < rs[j-1].Name(); j-- {
			rs[j], rs[j-1] = rs[j-1], rs[j]
		}
	}
}

func makeResort(id, name, aliases, province string, region domresort.Region, active bool) domresort.Resort {
	return domresort.Reconstruct(domresort.Params{
		ID: id, Name: name, Aliases: aliases, Province: province,
		Region: region, Lat: 46, Lng: 10, Active: active,
	})
}

func catalogue() *mockRepo {
	return newMockRepo(
		makeResort("1", "Bormio", "Bormio Ski, Cima Bianca", "SO", domresort.Lombardia, true),
		makeResort("2", "Livigno", "Mottolino, Carosello 3000", "SO", domresort.Lombardia, true),
		makeResort("3", "Cervinia", "Breuil-Cervinia, Matterhorn Ski Paradise", "AO", domresort.ValleAosta, true),
		makeResort("4", "Sestriere", "Via Lattea", "TO", domresort.Piemonte, true),
		makeResort("5", "Closed Resort", "", "SO", domresort.Lombardia, false),
	)
}

func names(rs []domresort.Resort) []string {
	out := make([]string, len(rs))
	for i := range rs {
		out[i] = rs[i].Name()
	}
	return out
}

// --- List ---

func TestList_AllActiveByName(t *testing.T) {
	got, err := New(catalogue()).List(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Bormio,Cervinia,Livigno,Sestriere"
	if strings.Join(names(got), ",") != want {
		t.Errorf("got %v, want %s", names(got), want)
	}
}

func TestList_Region(t *testing.T) {
	got, err := New(catalogue()).List(context.Background(), Filter{Region: domresort.Lombardia})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Join(names(got), ",") != "Bormio,Livigno" {
		t.Errorf("got %v", names(got))
	}
}

func TestList_UnknownRegion(t *testing.T) {
	_, err := New(catalogue()).List(context.Background(), Filter{Region: "atlantis"})
	if !errors.Is(err, domain.ErrInvalidResort) {
		t.Fatalf("expected ErrInvalidResort, got %v", err)
	}
}

func TestList_NameFilter(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"bormio", "Bormio"},
		{"MOTTOLINO", "Livigno"},
		{"matterhorn", "Cervinia"},
		{"3000", "Livigno"},
		{"bmo", "Bormio,Cervinia"},
		{"zzz", ""},
	}
	svc := New(catalogue())
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.List(context.Background(), Filter{Name: tc.name})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if strings.Join(names(got), ",") != tc.want {
				t.Errorf("got %v, want %q", names(got), tc.want)
			}
		})
	}
}

func TestList_RepoError(t *testing.T) {
	repo := catalogue()
	repo.listErr = errors.New("down")
	if _, err := New(repo).List(context.Background(), Filter{}); err == nil {
		t.Fatal("expected error")
	}
}

// --- Get ---

func TestGet(t *testing.T) {
	svc := New(catalogue())

	r, err := svc.Get(context.Background(), "3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Name() != "Cervinia" {
		t.Errorf("Name = %s", r.Name())
	}

	for _, id := range []string{"5", "missing"} {
		if _, err := svc.Get(context.Background(), id); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("Get(%s): expected ErrNotFound, got %v", id, err)
		}
	}
}

// --- Import ---

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("new-%d", n)
	}
}

func TestImport_CreatesAndUpdatesByName(t *testing.T) {
	repo := catalogue()
	svc := New(repo).WithIDGenerator(sequentialIDs())

	incoming := []domresort.Resort{
		makeResort("", "bormio", "Bormio 2000", "SO", domresort.Lombardia, true), // matches "Bormio"
		makeResort("", "Aprica", "", "SO", domresort.Lombardia, true),
		makeResort("", "Pila", "", "AO", domresort.ValleAosta, true),
	}

	stats, err := svc.Import(context.Background(), incoming, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Created != 2 || stats.Updated != 1 || stats.Deleted != 0 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.Total != 7 {
		t.Errorf("Total = %d, want 7", stats.Total)
	}
	if repo.saved[0].ID() != "1" {
		t.Errorf("update kept id %q, want 1", repo.saved[0].ID())
	}
	if repo.saved[1].ID() != "new-1" || repo.saved[2].ID() != "new-2" {
		t.Errorf("new ids = %s, %s", repo.saved[1].ID(), repo.saved[2].ID())
	}
}

func TestImport_ClearFirst(t *testing.T) {
	repo := catalogue()
	svc := New(repo).WithIDGenerator(sequentialIDs())

	stats, err := svc.Import(context.Background(), []domresort.Resort{
		makeResort("", "Bormio", "", "SO", domresort.Lombardia, true),
	}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := ImportStats{Created: 1, Deleted: 5, Total: 1}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
}

func TestImport_ClearFirstPurgesRides(t *testing.T) {
	repo := catalogue()
	rides := &mockRides{count: 4}
	svc := New(repo).WithIDGenerator(sequentialIDs()).WithRidePurger(rides)

	stats, err := svc.Import(context.Background(), []domresort.Resort{
		makeResort("", "Bormio", "", "SO", domresort.Lombardia, true),
	}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := ImportStats{Created: 1, Deleted: 5, RidesDeleted: 4, Total: 1}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
	if rides.count != 0 {
		t.Errorf("%d rides still point at deleted resorts", rides.count)
	}
}

func TestImport_UpsertKeepsRides(t *testing.T) {
	rides := &mockRides{count: 4}
	svc := New(catalogue()).WithRidePurger(rides)

	if _, err := svc.Import(context.Background(), []domresort.Resort{
		makeResort("", "Bormio", "", "SO", domresort.Lombardia, true),
	}, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rides.calls != 0 {
		t.Error("upsert must not purge rides")
	}
}

func TestImport_RidePurgeError(t *testing.T) {
	repo := catalogue()
	svc := New(repo).WithRidePurger(&mockRides{purgeErr: errors.New("readonly")})

	if _, err := svc.Import(context.Background(), nil, true); err == nil {
		t.Fatal("expected purge error")
	}
	if len(repo.byID) != 5 {
		t.Error("resorts must survive a failed ride purge")
	}
}

func TestImport_Idempotent(t *testing.T) {
	repo := newMockRepo()
	svc := New(repo)
	batch := []domresort.Resort{
		makeResort("", "Bormio", "", "SO", domresort.Lombardia, true),
		makeResort("", "Livigno", "", "SO", domresort.Lombardia, true),
	}

	if _, err := svc.Import(context.Background(), batch, false); err != nil {
		t.Fatal(err)
	}
	stats, err := svc.Import(context.Background(), batch, false)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Created != 0 || stats.Updated != 2 || stats.Total != 2 {
		t.Errorf("second run stats = %+v", stats)
	}
}

func TestImport_Errors(t *testing.T) {
	one := []domresort.Resort{makeResort("", "Bormio", "", "SO", domresort.Lombardia, true)}

	repo := newMockRepo()
	repo.deleteErr = errors.New("readonly")
	if _, err := New(repo).Import(context.Background(), one, true); err == nil {
		t.Error("expected clear error")
	}

	repo = newMockRepo()
	repo.findErr = errors.New("timeout")
	if _, err := New(repo).Import(context.Background(), one, false); err == nil {
		t.Error("expected lookup error")
	}

	repo = newMockRepo()
	repo.saveErr = errors.New("oom")
	stats, err := New(repo).Import(context.Background(), one, false)
	if err == nil {
		t.Error("expected save error")
	}
	if stats.Created != 1 {
		t.Errorf("partial stats = %+v", stats)
	}
}
