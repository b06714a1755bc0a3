package ride

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/skipool/skipool/internal/domain"
	domride "github.com/skipool/skipool/internal/domain/ride"
)

// store is the consumer interface for ride offers.
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	ZAdd(ctx context.Context, key string, score float64, member string) error
	ZRangeByScore(ctx context.Context, key, minScore, maxScore string) ([]string, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	Del(ctx context.Context, keys ...string) error
}

// Repo stores ride offers as hashes plus one sorted set per resort that
// indexes ride ids by departure time.
type Repo struct {
	store store
}

// New creates a ride repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Save writes the offer hash and indexes it under its resort.
func (r *Repo) Save(ctx context.Context, o domride.Offer) error {
	if o.ID() == "" || o.ResortID() == "" {
		return errors.New("ride id and resort id are required")
	}
	if err := r.store.HSet(ctx, offerKey(o.ID()), offerToHash(o)); err != nil {
		return fmt.Errorf("hset ride %s: %w", o.ID(), err)
	}
	score := float64(o.DepartureTime().UnixMilli())
	if err := r.store.ZAdd(ctx, indexKey(o.ResortID()), score, o.ID()); err != nil {
		return fmt.Errorf("index ride %s: %w", o.ID(), err)
	}
	return nil
}

// Get returns one offer or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, id string) (domride.Offer, error) {
	m, err := r.store.HGetAll(ctx, offerKey(id))
	if err != nil {
		return domride.Offer{}, fmt.Errorf("hgetall ride %s: %w", id, err)
	}
	if len(m) == 0 {
		return domride.Offer{}, domain.ErrNotFound
	}
	o, err := offerFromHash(m)
	if err != nil {
		return domride.Offer{}, fmt.Errorf("parse ride %s: %w", id, err)
	}
	return o, nil
}

// Upcoming returns up to limit offers bookable after the given instant,
// soonest departure first. A resortID reads that resort's index only; an
// empty one spans all resorts. limit <= 0 means no limit.
func (r *Repo) Upcoming(ctx context.Context, resortID string, after time.Time, limit int) ([]domride.Offer, error) {
	var keys []string
	if resortID != "" {
		minScore := strconv.FormatInt(after.UnixMilli(), 10)
		ids, err := r.store.ZRangeByScore(ctx, indexKey(resortID), minScore, "+inf")
		if err != nil {
			return nil, fmt.Errorf("read ride index %s: %w", resortID, err)
		}
		keys = make([]string, len(ids))
		for i, id := range ids {
			keys[i] = offerKey(id)
		}
	} else {
		var err error
		if keys, err = r.store.Scan(ctx, offerKey("*")); err != nil {
			return nil, fmt.Errorf("scan rides: %w", err)
		}
	}
	if len(keys) == 0 {
		return []domride.Offer{}, nil
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi rides: %w", err)
	}

	offers := make([]domride.Offer, 0, len(hashes))
	for i, m := range hashes {
		// index entries can outlive a purged hash
		if len(m) == 0 {
			continue
		}
		o, err := offerFromHash(m)
		if err != nil {
			return nil, fmt.Errorf("parse ride %s: %w", keys[i], err)
		}
		if o.IsBookable(after) {
			offers = append(offers, o)
		}
	}

	sort.Slice(offers, func(i, j int) bool {
		di, dj := offers[i].DepartureTime(), offers[j].DepartureTime()
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return offers[i].ID() < offers[j].ID()
	})

	if limit > 0 && len(offers) > limit {
		offers = offers[:limit]
	}
	return offers, nil
}

// DeleteAll removes every ride, its resort indexes and its bookings. It
// returns the number of ride offers removed.
func (r *Repo) DeleteAll(ctx context.Context) (int, error) {
	rides, err := r.store.Scan(ctx, offerKey("*"))
	if err != nil {
		return 0, fmt.Errorf("scan rides: %w", err)
	}
	// ride-index:* and ride-booking:*
	related, err := r.store.Scan(ctx, domain.KeyPrefix+"ride-*")
	if err != nil {
		return 0, fmt.Errorf("scan ride indexes: %w", err)
	}
	if err := r.store.Del(ctx, append(rides, related...)...); err != nil {
		return 0, fmt.Errorf("delete rides: %w", err)
	}
	return len(rides), nil
}

// Key pattern: skipool:ride:{id}
func offerKey(id string) string {
	return domain.KeyPrefix + "ride:" + id
}

// Key pattern: skipool:ride-index:{resort_id}
func indexKey(resortID string) string {
	return domain.KeyPrefix + "ride-index:" + resortID
}
