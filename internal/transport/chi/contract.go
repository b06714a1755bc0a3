package chi

import (
	"context"

	dombooking "github.com/skipool/skipool/internal/domain/booking"
	domresort "github.com/skipool/skipool/internal/domain/resort"
	domride "github.com/skipool/skipool/internal/domain/ride"
	"github.com/skipool/skipool/internal/domain/search/request"
	bookinguc "github.com/skipool/skipool/internal/usecase/booking"
	healthuc "github.com/skipool/skipool/internal/usecase/health"
	resortuc "github.com/skipool/skipool/internal/usecase/resort"
	rideuc "github.com/skipool/skipool/internal/usecase/ride"
	searchuc "github.com/skipool/skipool/internal/usecase/search"
)

// Searcher runs resort searches.
type Searcher interface {
	Search(ctx context.Context, req *request.Request) (searchuc.Response, error)
}

// ResortCatalogue serves resort reads.
type ResortCatalogue interface {
	List(ctx context.Context, f resortuc.Filter) ([]domresort.Resort, error)
	Get(ctx context.Context, id string) (domresort.Resort, error)
}

// RideBoard publishes and lists ride offers.
type RideBoard interface {
	Publish(ctx context.Context, in rideuc.PublishInput) (domride.Offer, error)
	Upcoming(ctx context.Context, resortID string, limit int) ([]domride.Offer, error)
}

// BookingDesk takes seat requests on rides.
type BookingDesk interface {
	Book(ctx context.Context, in bookinguc.Input) (dombooking.Booking, error)
}

// HealthChecker reports dependency health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}
