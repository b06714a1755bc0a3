package request

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/skipool/skipool/internal/domain"
)

func f64(v float64) *float64 { return &v }

func TestNew_Defaults(t *testing.T) {
	r, err := New("  bormio  ", nil, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Text() != "bormio" {
		t.Errorf("Text() = %q, want trimmed", r.Text())
	}
	if r.Threshold() != 0.4 {
		t.Errorf("Threshold() = %v, want 0.4", r.Threshold())
	}
	if r.Location() != nil {
		t.Errorf("Location() = %+v, want nil", r.Location())
	}
}

func TestDefaultThreshold(t *testing.T) {
	if DefaultThreshold != 0.4 {
		t.Fatalf("DefaultThreshold = %v, want 0.4", DefaultThreshold)
	}
}

func TestNew_ExplicitValues(t *testing.T) {
	r, err := New("livigno", f64(0.7), f64(46.4683), f64(10.37))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Threshold() != 0.7 {
		t.Errorf("Threshold() = %v", r.Threshold())
	}
	loc := r.Location()
	if loc == nil || loc.Lat != 46.4683 || loc.Lng != 10.37 {
		t.Errorf("Location() = %+v", loc)
	}
}

func TestNew_QueryValidation(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"empty", ""},
		{"blank", "    "},
		{"single char", "a"},
		{"single char padded", "  b "},
		{"single multibyte", "ö"},
		{"too long", strings.Repeat("x", MaxQueryLength+1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.query, nil, nil, nil)
			if !errors.Is(err, domain.ErrInvalidQuery) {
				t.Fatalf("want ErrInvalidQuery, got %v", err)
			}
		})
	}
}

func TestNew_TwoCharsAccepted(t *testing.T) {
	if _, err := New("ab", nil, nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := New("öl", nil, nil, nil); err != nil {
		t.Fatalf("two runes should be accepted: %v", err)
	}
}

func TestNew_ThresholdRange(t *testing.T) {
	for _, v := range []float64{-0.1, 1.1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := New("bormio", f64(v), nil, nil)
		if !errors.Is(err, domain.ErrInvalidThreshold) {
			t.Errorf("threshold %v: want ErrInvalidThreshold, got %v", v, err)
		}
	}
	for _, v := range []float64{0, 1} {
		if _, err := New("bormio", f64(v), nil, nil); err != nil {
			t.Errorf("threshold %v: unexpected error %v", v, err)
		}
	}
}

func TestNew_LocationDegradesToAbsent(t *testing.T) {
	tests := []struct {
		name     string
		lat, lng *float64
	}{
		{"lat only", f64(46), nil},
		{"lng only", nil, f64(10)},
		{"lat out of range", f64(95), f64(10)},
		{"lng out of range", f64(46), f64(200)},
		{"NaN lat", f64(math.NaN()), f64(10)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := New("bormio", nil, tc.lat, tc.lng)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.Location() != nil {
				t.Errorf("Location() = %+v, want nil", r.Location())
			}
		})
	}
}
