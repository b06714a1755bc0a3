package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/skipool/skipool/internal/domain/search/request"
	"github.com/skipool/skipool/internal/domain/search/result"
	logpkg "github.com/skipool/skipool/internal/logger"
	"github.com/skipool/skipool/internal/metrics"
)

// Enrichment defaults.
const (
	DefaultRidesPerResort = 5
	DefaultConcurrency    = 4
)

// Response is the outcome of a resort search.
type Response struct {
	Query   string
	Count   int
	Results []result.ScoredResort
}

// Service matches resorts by name and ranks them by relevance or distance.
type Service struct {
	resorts        ResortReader
	rides          RideReader
	ridesPerResort int
	concurrency    int
	now            func() time.Time
}

// New creates a search service. rides can be nil to skip ride enrichment.
func New(resorts ResortReader, rides RideReader) *Service {
	return &Service{
		resorts:        resorts,
		rides:          rides,
		ridesPerResort: DefaultRidesPerResort,
		concurrency:    DefaultConcurrency,
		now:            time.Now,
	}
}

// WithRidesPerResort sets how many ride offers are attached to each result.
func (s *Service) WithRidesPerResort(n int) *Service {
	if n > 0 {
		s.ridesPerResort = n
	}
	return s
}

// WithConcurrency bounds the number of parallel ride lookups.
func (s *Service) WithConcurrency(n int) *Service {
	if n > 0 {
		s.concurrency = n
	}
	return s
}

// WithClock overrides the time source used to decide which rides are upcoming.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Search runs the fuzzy match over active resorts, reorders by distance when
// the request carries a location, and attaches upcoming rides to each hit.
func (s *Service) Search(ctx context.Context, req *request.Request) (Response, error) {
	logger := logpkg.FromContext(ctx)

	resorts, err := s.resorts.ListActive(ctx)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return Response{}, fmt.Errorf("list active resorts: %w", err)
	}

	start := time.Now()
	matches := FuzzySearch(req.Text(), req.Threshold(), resorts)
	metrics.SearchScoringDuration.Observe(time.Since(start).Seconds())

	if loc := req.Location(); loc != nil {
		matches = RankByDistance(matches, *loc)
		metrics.SearchLocationTotal.WithLabelValues("distance").Inc()
	} else {
		metrics.SearchLocationTotal.WithLabelValues("score").Inc()
	}

	if s.rides != nil && len(matches) > 0 {
		matches, err = s.attachRides(ctx, matches)
		if err != nil {
			metrics.SearchRequestsTotal.WithLabelValues(metrics.OutcomeError).Inc()
			return Response{}, err
		}
	}

	outcome := metrics.OutcomeHit
	if len(matches) == 0 {
		outcome = metrics.OutcomeMiss
	}
	metrics.SearchRequestsTotal.WithLabelValues(outcome).Inc()
	metrics.SearchMatches.Observe(float64(len(matches)))

	logger.Debug("resort search",
		zap.String("query", req.Text()),
		zap.Float64("threshold", req.Threshold()),
		zap.Bool("by_distance", req.Location() != nil),
		zap.Int("universe", len(resorts)),
		zap.Int("matches", len(matches)),
	)

	return Response{Query: req.Text(), Count: len(matches), Results: matches}, nil
}

// attachRides fetches the soonest bookable offers for every match in parallel.
func (s *Service) attachRides(
	ctx context.Context, matches []result.ScoredResort,
) ([]result.ScoredResort, error) {
	now := s.now()
	out := make([]result.ScoredResort, len(matches))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i := range matches {
		g.Go(func() error {
			r := matches[i].Resort()
			offers, err := s.rides.Upcoming(gCtx, r.ID(), now, s.ridesPerResort)
			if err != nil {
				return fmt.Errorf("upcoming rides for resort %s: %w", r.ID(), err)
			}
			if len(offers) > s.ridesPerResort {
				offers = offers[:s.ridesPerResort]
			}
			out[i] = matches[i].WithRides(offers)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err //nolint:wrapcheck // already wrapped per resort
	}
	return out, nil
}
