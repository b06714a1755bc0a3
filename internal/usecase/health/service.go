package health

import (
	"context"
	"time"

	"go.uber.org/zap"

	logpkg "github.com/skipool/skipool/internal/logger"
)

// Status is the aggregated health status.
type Status string

// Aggregated statuses.
const (
	Healthy  Status = "ok"
	Degraded Status = "degraded"
)

// CheckResult is the outcome of a single component check.
type CheckResult string

// Component check outcomes.
const (
	CheckOK    CheckResult = "ok"
	CheckError CheckResult = "error"
)

const defaultPingTimeout = 2 * time.Second

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service runs dependency checks for the /health endpoint.
type Service struct {
	db      DBPinger
	timeout time.Duration
}

// New creates a Service.
func New(db DBPinger) *Service {
	return &Service{db: db, timeout: defaultPingTimeout}
}

// WithTimeout bounds how long a single check may take.
func (s *Service) WithTimeout(d time.Duration) *Service {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// Check pings the database. The service stays up when Redis is unreachable,
// so a failed ping reports degraded rather than an error.
func (s *Service) Check(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	report := Report{Status: Healthy, Checks: map[string]CheckResult{"database": CheckOK}}
	if err := s.db.Ping(ctx); err != nil {
		logpkg.FromContext(ctx).Warn("database ping failed", zap.Error(err))
		report.Checks["database"] = CheckError
		report.Status = Degraded
	}
	return report
}
