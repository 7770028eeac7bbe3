// Package geocode resolves free-text addresses to postal codes and coordinates via
// Nominatim (primary), Google (fallback), or a fixture file for offline runs.
package geocode

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// Client searches for the best matches of a free-text address.
type Client interface {
	// Search returns matches ordered best-first. An empty slice means no match.
	Search(ctx context.Context, query string) ([]Result, error)
}

// Result holds one geocoding match.
type Result struct {
	PostalCode  string  `yaml:"postal_code"`
	Latitude    float64 `yaml:"latitude"`
	Longitude   float64 `yaml:"longitude"`
	Source      string  `yaml:"source"` // "nominatim", "google" or "fixture"
	DisplayName string  `yaml:"display_name"`
}

// Coordinates returns latitude then longitude in their shortest decimal form.
func (r Result) Coordinates() [2]string {
	return [2]string{formatCoord(r.Latitude), formatCoord(r.Longitude)}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Option configures the HTTP-backed providers.
type Option func(*settings)

type settings struct {
	httpClient   *http.Client
	limiter      *rate.Limiter
	nominatimURL string
	userAgent    string
	googleKey    string
}

// WithHTTPClient sets a custom HTTP client for provider requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *settings) {
		s.httpClient = hc
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.httpClient = &http.Client{Timeout: d}
		}
	}
}

// WithRateLimit sets the requests-per-second limit shared by all providers.
func WithRateLimit(rps float64) Option {
	return func(s *settings) {
		if rps <= 0 {
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithNominatimURL overrides the Nominatim search endpoint.
func WithNominatimURL(u string) Option {
	return func(s *settings) {
		if u != "" {
			s.nominatimURL = u
		}
	}
}

// WithUserAgent sets the User-Agent sent to Nominatim, which requires one.
func WithUserAgent(ua string) Option {
	return func(s *settings) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

// WithGoogleAPIKey enables Google Geocoding API as a fallback.
func WithGoogleAPIKey(key string) Option {
	return func(s *settings) {
		s.googleKey = key
	}
}

func newSettings(opts []Option) *settings {
	s := &settings{
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		limiter:      rate.NewLimiter(1, 1), // Nominatim usage policy: 1 req/s
		nominatimURL: nominatimSearchURL,
		userAgent:    "client-info-cli",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewClient creates a cascade Client querying Nominatim first, then Google when an
// API key is configured.
func NewClient(opts ...Option) Client {
	s := newSettings(opts)
	providers := []Provider{NewNominatimProvider(s)}
	if s.googleKey != "" {
		providers = append(providers, NewGoogleProvider(s))
	}
	return NewCascadeClient(providers)
}

// NewGoogleClient creates a Client that queries only the Google Geocoding API.
func NewGoogleClient(opts ...Option) Client {
	s := newSettings(opts)
	return NewCascadeClient([]Provider{NewGoogleProvider(s)})
}
