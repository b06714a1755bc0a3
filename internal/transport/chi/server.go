package chi

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/skipool/skipool/internal/domain"
	domresort "github.com/skipool/skipool/internal/domain/resort"
	"github.com/skipool/skipool/internal/domain/search/request"
	logpkg "github.com/skipool/skipool/internal/logger"
	"github.com/skipool/skipool/internal/metrics"
	bookinguc "github.com/skipool/skipool/internal/usecase/booking"
	healthuc "github.com/skipool/skipool/internal/usecase/health"
	resortuc "github.com/skipool/skipool/internal/usecase/resort"
	rideuc "github.com/skipool/skipool/internal/usecase/ride"
)

const maxBodyBytes = 64 << 10

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server holds the HTTP handlers of the skipool API.
type Server struct {
	search           Searcher
	resorts          ResortCatalogue
	rides            RideBoard
	bookings         BookingDesk
	health           HealthChecker
	defaultThreshold float64
	errorHandlers    []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search Searcher, resorts ResortCatalogue, rides RideBoard, health HealthChecker) *Server {
	return &Server{
		search:           search,
		resorts:          resorts,
		rides:            rides,
		health:           health,
		defaultThreshold: request.DefaultThreshold,
		errorHandlers: []errorHandler{
			validationHandler(domain.ErrInvalidQuery),
			validationHandler(domain.ErrInvalidThreshold),
			validationHandler(domain.ErrInvalidResort),
			validationHandler(domain.ErrInvalidRide),
			validationHandler(domain.ErrInvalidBooking),
			sentinelHandler(domain.ErrRideNotFound, http.StatusNotFound, CodeRideNotFound),
			sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeResortNotFound),
			sentinelHandler(domain.ErrResortInactive, http.StatusConflict, CodeResortInactive),
			sentinelHandler(domain.ErrRideUnavailable, http.StatusConflict, CodeRideUnavailable),
			sentinelHandler(domain.ErrAlreadyBooked, http.StatusConflict, CodeAlreadyBooked),
		},
	}
}

// WithBookings enables POST /api/v1/rides/{id}/bookings.
func (s *Server) WithBookings(b BookingDesk) *Server {
	s.bookings = b
	return s
}

// WithDefaultThreshold sets the threshold used when a search omits one.
func (s *Server) WithDefaultThreshold(t float64) *Server {
	if !math.IsNaN(t) && t >= 0 && t <= 1 {
		s.defaultThreshold = t
	}
	return s
}

// Routes mounts the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/resorts/search", s.SearchResorts)
		r.Get("/resorts", s.ListResorts)
		r.Get("/resorts/{id}", s.GetResort)
		r.Get("/rides", s.ListRides)
		r.Post("/rides", s.PublishRide)
		if s.bookings != nil {
			r.Post("/rides/{id}/bookings", s.BookRide)
		}
	})
}

// SearchResorts handles GET /api/v1/resorts/search.
func (s *Server) SearchResorts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var threshold *float64
	if err := runtime.BindQueryParameter("form", true, false, "threshold", q, &threshold); err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "threshold must be a number between 0 and 1")
		return
	}
	if threshold == nil {
		t := s.defaultThreshold
		threshold = &t
	}

	// Malformed coordinates fall back to a search without distance.
	var lat, lng *float64
	if err := runtime.BindQueryParameter("form", true, false, "lat", q, &lat); err != nil {
		lat = nil
	}
	if err := runtime.BindQueryParameter("form", true, false, "lng", q, &lng); err != nil {
		lng = nil
	}

	req, err := request.New(q.Get("q"), threshold, lat, lng)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		s.handleDomainError(w, r, err)
		return
	}

	resp, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]SearchResultItem, len(resp.Results))
	for i := range resp.Results {
		items[i] = searchResultToDTO(resp.Results[i])
	}
	writeJSON(w, http.StatusOK, SearchResponse{Query: resp.Query, Count: resp.Count, Results: items})
}

// ListResorts handles GET /api/v1/resorts.
func (s *Server) ListResorts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := s.resorts.List(r.Context(), resortuc.Filter{
		Region: domresort.Region(q.Get("region")),
		Name:   q.Get("name"),
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]Resort, len(list))
	for i := range list {
		items[i] = resortToDTO(list[i])
	}
	writeJSON(w, http.StatusOK, ResortList{Items: items, Count: len(items)})
}

// GetResort handles GET /api/v1/resorts/{id}.
func (s *Server) GetResort(w http.ResponseWriter, r *http.Request) {
	res, err := s.resorts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resortToDTO(res))
}

// ListRides handles GET /api/v1/rides.
func (s *Server) ListRides(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var limit *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &limit); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "limit must be an integer")
		return
	}
	n := 0
	if limit != nil {
		n = *limit
	}

	offers, err := s.rides.Upcoming(r.Context(), q.Get("resort_id"), n)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	items := ridesToDTO(offers)
	writeJSON(w, http.StatusOK, RideList{Items: items, Count: len(items)})
}

// PublishRide handles POST /api/v1/rides.
func (s *Server) PublishRide(w http.ResponseWriter, r *http.Request) {
	var body PublishRideRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid request body: "+err.Error())
		return
	}

	offer, err := s.rides.Publish(r.Context(), rideuc.PublishInput{
		ResortID:       body.ResortID,
		DriverID:       body.DriverID,
		Destination:    body.Destination,
		DepartureTime:  body.DepartureTime,
		PickupLabel:    body.PickupLabel,
		PickupLat:      body.PickupLat,
		PickupLng:      body.PickupLng,
		PricePerSeat:   body.PricePerSeat.String(),
		SeatsTotal:     body.SeatsTotal,
		SeatsAvailable: body.SeatsAvailable,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rideToDTO(offer))
}

// BookRide handles POST /api/v1/rides/{id}/bookings.
func (s *Server) BookRide(w http.ResponseWriter, r *http.Request) {
	var body BookRideRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid request body: "+err.Error())
		return
	}

	b, err := s.bookings.Book(r.Context(), bookinguc.Input{
		RideID:      chi.URLParam(r, "id"),
		PassengerID: body.PassengerID,
		Seats:       body.Seats,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, bookingToDTO(b))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, HealthResponse{Status: string(report.Status), Checks: checks})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// sentinelHandler maps a sentinel to a status, replying with the sentinel text only.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

// validationHandler replies 400 with the full message; validation errors
// carry only caller input, never storage details.
func validationHandler(sentinel error) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logpkg.FromContext(r.Context())
	for _, h := range s.errorHandlers {
		if h(w, err) {
			logger.Debug("request rejected", zap.Error(err))
			return
		}
	}
	logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
