package resort

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"
	"go.uber.org/zap"

	"github.com/skipool/skipool/internal/domain"
	domresort "github.com/skipool/skipool/internal/domain/resort"
	logpkg "github.com/skipool/skipool/internal/logger"
)

// Filter narrows the resort listing. Zero values disable a criterion.
type Filter struct {
	Region domresort.Region
	// Name is matched as a subsequence against name, aliases and province.
	Name string
}

// ImportStats summarises an Import run.
type ImportStats struct {
	Created      int
	Updated      int
	Deleted      int
	RidesDeleted int
	Total        int
}

// Service handles resort catalogue reads and bulk imports.
type Service struct {
	repo  Repository
	rides RidePurger
	newID func() string
}

// New creates a resort service.
func New(repo Repository) *Service {
	return &Service{repo: repo, newID: uuid.NewString}
}

// WithIDGenerator overrides how ids are assigned to new resorts.
func (s *Service) WithIDGenerator(fn func() string) *Service {
	s.newID = fn
	return s
}

// WithRidePurger makes a clearing import also delete every ride offer.
func (s *Service) WithRidePurger(p RidePurger) *Service {
	s.rides = p
	return s
}

// List returns active resorts ordered by name.
func (s *Service) List(ctx context.Context, f Filter) ([]domresort.Resort, error) {
	if f.Region != "" && !f.Region.IsValid() {
		return nil, fmt.Errorf("%w: unknown region %q", domain.ErrInvalidResort, f.Region)
	}

	all, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list resorts: %w", err)
	}

	out := make([]domresort.Resort, 0, len(all))
	for i := range all {
		if f.Region == "" || all[i].Region() == f.Region {
			out = append(out, all[i])
		}
	}

	if name := strings.ToLower(strings.TrimSpace(f.Name)); name != "" {
		out = filterByName(name, out)
	}
	return out, nil
}

// Get returns an active resort by id.
func (s *Service) Get(ctx context.Context, id string) (domresort.Resort, error) {
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return domresort.Resort{}, fmt.Errorf("get resort: %w", err)
	}
	if !r.IsActive() {
		return domresort.Resort{}, fmt.Errorf("get resort %s: %w", id, domain.ErrNotFound)
	}
	return r, nil
}

// Import upserts resorts by name. With clearFirst set, every stored resort is
// deleted first, along with all rides when a RidePurger is set, since
// re-imported resorts get fresh ids. Incoming ids are ignored.
func (s *Service) Import(ctx context.Context, resorts []domresort.Resort, clearFirst bool) (ImportStats, error) {
	logger := logpkg.FromContext(ctx)
	var stats ImportStats

	if clearFirst && s.rides != nil {
		n, err := s.rides.DeleteAll(ctx)
		if err != nil {
			return stats, fmt.Errorf("clear rides: %w", err)
		}
		stats.RidesDeleted = n
		logger.Info("rides cleared", zap.Int("deleted", n))
	}
	if clearFirst {
		n, err := s.repo.DeleteAll(ctx)
		if err != nil {
			return stats, fmt.Errorf("clear resorts: %w", err)
		}
		stats.Deleted = n
		logger.Info("resorts cleared", zap.Int("deleted", n))
	}

	for i := range resorts {
		r := resorts[i]
		existing, err := s.repo.FindByName(ctx, r.Name())
		switch {
		case err == nil:
			r = r.WithID(existing.ID())
			stats.Updated++
		case errors.Is(err, domain.ErrNotFound):
			r = r.WithID(s.newID())
			stats.Created++
		default:
			return stats, fmt.Errorf("lookup resort %q: %w", r.Name(), err)
		}

		if err := s.repo.Save(ctx, r); err != nil {
			return stats, fmt.Errorf("save resort %q: %w", r.Name(), err)
		}
		logger.Debug("resort imported", zap.String("id", r.ID()), zap.String("name", r.Name()))
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return stats, fmt.Errorf("count resorts: %w", err)
	}
	stats.Total = len(all)
	return stats, nil
}

// haystack exposes the searchable text of each resort to sahilm/fuzzy.
type haystack []domresort.Resort

func (h haystack) Len() int { return len(h) }

func (h haystack) String(i int) string {
	return strings.ToLower(h[i].Name() + " " + h[i].RawAliases() + " " + h[i].Province())
}

// filterByName keeps resorts whose text contains pattern as a subsequence,
// preserving the input order.
func filterByName(pattern string, resorts []domresort.Resort) []domresort.Resort {
	matches := fuzzy.FindFrom(pattern, haystack(resorts))
	keep := make([]bool, len(resorts))
	for _, m := range matches {
		keep[m.Index] = true
	}
	out := make([]domresort.Resort, 0, len(matches))
	for i := range resorts {
		if keep[i] {
			out = append(out, resorts[i])
		}
	}
	return out
}
