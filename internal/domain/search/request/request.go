package request

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/skipool/skipool/internal/domain"
	"github.com/skipool/skipool/internal/domain/geo"
)

// Search parameter limits.
const (
	// MinQueryLength is the minimum number of characters after trimming.
	MinQueryLength = 2
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 256
	// DefaultThreshold is the similarity cutoff used when the caller sends none.
	DefaultThreshold = 0.4
)

// Request is a validated resort search.
type Request struct {
	text      string
	threshold float64
	location  *geo.Point
}

// New validates and normalizes search parameters.
// A nil threshold means DefaultThreshold. The location is kept only when both
// coordinates are present and valid; anything else searches without distance.
func New(text string, threshold *float64, lat, lng *float64) (Request, error) {
	text = strings.TrimSpace(text)
	n := utf8.RuneCountInString(text)
	if n < MinQueryLength {
		return Request{}, fmt.Errorf("%w: query must be at least %d characters", domain.ErrInvalidQuery, MinQueryLength)
	}
	if n > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidQuery, MaxQueryLength)
	}

	t := DefaultThreshold
	if threshold != nil {
		t = *threshold
	}
	if math.IsNaN(t) || t < 0 || t > 1 {
		return Request{}, fmt.Errorf("%w: threshold must be between 0 and 1", domain.ErrInvalidThreshold)
	}

	var loc *geo.Point
	if lat != nil && lng != nil && geo.ValidateCoordinates(*lat, *lng) {
		loc = &geo.Point{Lat: *lat, Lng: *lng}
	}

	return Request{text: text, threshold: t, location: loc}, nil
}

// Text returns the trimmed query text.
func (r *Request) Text() string { return r.text }

// Threshold returns the minimum similarity score.
func (r *Request) Threshold() float64 { return r.threshold }

// Location returns the caller position, nil when absent.
func (r *Request) Location() *geo.Point { return r.location }
