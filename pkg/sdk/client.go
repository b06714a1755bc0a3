package skipool

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/skipool/skipool/internal/db"
	dbRedis "github.com/skipool/skipool/internal/db/redis"
	dombooking "github.com/skipool/skipool/internal/domain/booking"
	domresort "github.com/skipool/skipool/internal/domain/resort"
	domride "github.com/skipool/skipool/internal/domain/ride"
	"github.com/skipool/skipool/internal/domain/search/request"
	bookingrepo "github.com/skipool/skipool/internal/repository/booking"
	resortrepo "github.com/skipool/skipool/internal/repository/resort"
	riderepo "github.com/skipool/skipool/internal/repository/ride"
	bookinguc "github.com/skipool/skipool/internal/usecase/booking"
	healthuc "github.com/skipool/skipool/internal/usecase/health"
	resortuc "github.com/skipool/skipool/internal/usecase/resort"
	rideuc "github.com/skipool/skipool/internal/usecase/ride"
	searchuc "github.com/skipool/skipool/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, swapped for mocks in tests.
type searchUseCase interface {
	Search(ctx context.Context, req *request.Request) (searchuc.Response, error)
}

type resortUseCase interface {
	List(ctx context.Context, f resortuc.Filter) ([]domresort.Resort, error)
	Get(ctx context.Context, id string) (domresort.Resort, error)
	Import(ctx context.Context, resorts []domresort.Resort, clearFirst bool) (resortuc.ImportStats, error)
}

type rideUseCase interface {
	Publish(ctx context.Context, in rideuc.PublishInput) (domride.Offer, error)
	Upcoming(ctx context.Context, resortID string, limit int) ([]domride.Offer, error)
}

type bookingUseCase interface {
	Book(ctx context.Context, in bookinguc.Input) (dombooking.Booking, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the skipool SDK entry point.
type Client struct {
	store      db.Store
	searchSvc  searchUseCase
	resortSvc  resortUseCase
	rideSvc    rideUseCase
	bookingSvc bookingUseCase
	healthSvc  healthUseCase
	obs        *observer
}

// New creates a Client and connects to Redis.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{readinessTimeout: defaultReadinessTimeout}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("skipool: database address required (use WithRedis)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
		DB:       cfg.db,
	})
	if err != nil {
		return nil, fmt.Errorf("skipool: create redis store: %w", err)
	}

	if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("skipool: database not ready: %w", err)
	}

	return wireClient(store, cfg, obs), nil
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	resortRepo := resortrepo.New(store)
	rideRepo := riderepo.New(store)

	searchSvc := searchuc.New(resortRepo, rideRepo)
	if cfg.ridesPerResort > 0 {
		searchSvc = searchSvc.WithRidesPerResort(cfg.ridesPerResort)
	}
	if cfg.enrichConcurrency > 0 {
		searchSvc = searchSvc.WithConcurrency(cfg.enrichConcurrency)
	}

	return &Client{
		store:      store,
		searchSvc:  searchSvc,
		resortSvc:  resortuc.New(resortRepo).WithRidePurger(rideRepo),
		rideSvc:    rideuc.New(rideRepo, resortRepo),
		bookingSvc: bookinguc.New(bookingrepo.New(store), rideRepo),
		healthSvc:  healthuc.New(store),
		obs:        obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Health checks the health of all system components.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}

// Resorts returns the resort search and catalogue service.
func (c *Client) Resorts() *ResortService {
	return &ResortService{search: c.searchSvc, catalogue: c.resortSvc, obs: c.obs}
}

// Rides returns the ride board service.
func (c *Client) Rides() *RideService {
	return &RideService{svc: c.rideSvc, bookings: c.bookingSvc, obs: c.obs}
}
