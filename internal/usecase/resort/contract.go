package resort

import (
	"context"

	domresort "github.com/skipool/skipool/internal/domain/resort"
)

// Repository defines the storage contract for resorts.
type Repository interface {
	Save(ctx context.Context, r domresort.Resort) error
	Get(ctx context.Context, id string) (domresort.Resort, error)
	FindByName(ctx context.Context, name string) (domresort.Resort, error)
	List(ctx context.Context) ([]domresort.Resort, error)
	ListActive(ctx context.Context) ([]domresort.Resort, error)
	DeleteAll(ctx context.Context) (int, error)
}

// RidePurger removes ride offers, which would otherwise point at resort ids
// that a cleared catalogue no longer holds.
type RidePurger interface {
	DeleteAll(ctx context.Context) (int, error)
}
