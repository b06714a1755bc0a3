package resort

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/skipool/skipool/internal/db"
	"github.com/skipool/skipool/internal/domain"
	domresort "github.com/skipool/skipool/internal/domain/resort"
)

// store is the consumer interface for resorts.
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, keys ...string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Repo stores resorts as Redis hashes with a name -> id lookup key.
type Repo struct {
	store store
}

// New creates a resort repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Save writes the resort hash and refreshes its name index entry.
func (r *Repo) Save(ctx context.Context, res domresort.Resort) error {
	if res.ID() == "" {
		return errors.New("resort id is required")
	}
	if err := r.store.HSet(ctx, resortKey(res.ID()), resortToHash(res)); err != nil {
		return fmt.Errorf("hset resort %s: %w", res.ID(), err)
	}
	if err := r.store.Set(ctx, nameKey(res.Name()), []byte(res.ID())); err != nil {
		return fmt.Errorf("index resort name %q: %w", res.Name(), err)
	}
	return nil
}

// Get loads a resort by id.
func (r *Repo) Get(ctx context.Context, id string) (domresort.Resort, error) {
	m, err := r.store.HGetAll(ctx, resortKey(id))
	if err != nil {
		return domresort.Resort{}, fmt.Errorf("hgetall resort %s: %w", id, err)
	}
	if len(m) == 0 {
		return domresort.Resort{}, domain.ErrNotFound
	}
	res, err := resortFromHash(m)
	if err != nil {
		return domresort.Resort{}, fmt.Errorf("parse resort %s: %w", id, err)
	}
	return res, nil
}

// FindByName resolves a resort through the case-insensitive name index.
func (r *Repo) FindByName(ctx context.Context, name string) (domresort.Resort, error) {
	id, err := r.store.Get(ctx, nameKey(name))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domresort.Resort{}, domain.ErrNotFound
		}
		return domresort.Resort{}, fmt.Errorf("lookup resort name %q: %w", name, err)
	}
	return r.Get(ctx, string(id))
}

// List returns every stored resort ordered by name.
func (r *Repo) List(ctx context.Context) ([]domresort.Resort, error) {
	keys, err := r.store.Scan(ctx, resortKey("*"))
	if err != nil {
		return nil, fmt.Errorf("scan resorts: %w", err)
	}
	if len(keys) == 0 {
		return []domresort.Resort{}, nil
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi resorts: %w", err)
	}

	resorts := make([]domresort.Resort, 0, len(hashes))
	for i, m := range hashes {
		if len(m) == 0 {
			continue // deleted between SCAN and HGETALL
		}
		res, err := resortFromHash(m)
		if err != nil {
			return nil, fmt.Errorf("parse resort %s: %w", keys[i], err)
		}
		resorts = append(resorts, res)
	}

	sort.Slice(resorts, func(i, j int) bool {
		if resorts[i].Name() != resorts[j].Name() {
			return resorts[i].Name() < resorts[j].Name()
		}
		return resorts[i].ID() < resorts[j].ID()
	})
	return resorts, nil
}

// ListActive returns the resorts visible to search, ordered by name.
func (r *Repo) ListActive(ctx context.Context) ([]domresort.Resort, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	active := all[:0]
	for i := range all {
		if all[i].IsActive() {
			active = append(active, all[i])
		}
	}
	return active, nil
}

// DeleteAll removes every resort and name index entry, returning how many
// resorts were deleted.
func (r *Repo) DeleteAll(ctx context.Context) (int, error) {
	resortKeys, err := r.store.Scan(ctx, resortKey("*"))
	if err != nil {
		return 0, fmt.Errorf("scan resorts: %w", err)
	}
	nameKeys, err := r.store.Scan(ctx, nameKey("*"))
	if err != nil {
		return 0, fmt.Errorf("scan resort names: %w", err)
	}
	if err := r.store.Del(ctx, append(resortKeys, nameKeys...)...); err != nil {
		return 0, fmt.Errorf("del resorts: %w", err)
	}
	return len(resortKeys), nil
}

// Key patterns: skipool:resort:{id}, skipool:resort-name:{lower(name)}

func resortKey(id string) string {
	return domain.KeyPrefix + "resort:" + id
}

func nameKey(name string) string {
	return domain.KeyPrefix + "resort-name:" + strings.ToLower(strings.TrimSpace(name))
}
