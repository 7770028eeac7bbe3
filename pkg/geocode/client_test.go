package geocode

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_NominatimSucceeds_NoGoogleCall(t *testing.T) {
	var googleCalled atomic.Int32

	nominatimSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[{"lat": "-20.27", "lon": "148.72", "address": {"postcode": "4802"}}]`)
	}))
	defer nominatimSrv.Close()

	googleSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		googleCalled.Add(1)
		_, _ = io.WriteString(w, `{"status":"OK","results":[{"geometry":{"location":{"lat":-20.0,"lng":148.0}}}]}`)
	}))
	defer googleSrv.Close()

	c := NewClient(
		WithHTTPClient(&http.Client{Transport: &multiRewriteTransport{
			base: http.DefaultTransport,
			rewrites: map[string]string{
				nominatimSearchURL: nominatimSrv.URL,
				googleGeocodeURL:   googleSrv.URL,
			},
		}}),
		WithGoogleAPIKey("test-key"),
		WithRateLimit(1000),
	)

	results, err := c.Search(context.Background(), "8540 Charli Summit, AIRLIE BEACH, QLD, AU")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "nominatim", results[0].Source)
	assert.Equal(t, int32(0), googleCalled.Load(), "Google should not be called when Nominatim matches")
}

func TestNewClient_NominatimEmpty_GoogleFallback(t *testing.T) {
	nominatimSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	}))
	defer nominatimSrv.Close()

	googleSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{
			"status": "OK",
			"results": [{
				"address_components": [{"long_name": "6315", "types": ["postal_code"]}],
				"geometry": {"location": {"lat": -34, "lng": 120}}
			}]
		}`)
	}))
	defer googleSrv.Close()

	c := NewClient(
		WithHTTPClient(&http.Client{Transport: &multiRewriteTransport{
			base: http.DefaultTransport,
			rewrites: map[string]string{
				nominatimSearchURL: nominatimSrv.URL,
				googleGeocodeURL:   googleSrv.URL,
			},
		}}),
		WithGoogleAPIKey("test-key"),
		WithRateLimit(1000),
	)

	results, err := c.Search(context.Background(), "376 Williamson Hill, ARTHUR RIVER, WA, AU")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "google", results[0].Source)
	assert.Equal(t, "6315", results[0].PostalCode)
	assert.Equal(t, [2]string{"-34", "120"}, results[0].Coordinates())
}

func TestNewClient_NoGoogleKey_NominatimOnly(t *testing.T) {
	nominatimSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	}))
	defer nominatimSrv.Close()

	c := NewClient(
		WithHTTPClient(newRewriteClient(nominatimSrv.URL, nominatimSearchURL)),
		WithRateLimit(1000),
	)

	cascade, ok := c.(*CascadeClient)
	require.True(t, ok)
	assert.Equal(t, []string{"nominatim"}, cascade.Providers())

	results, err := c.Search(context.Background(), "000 Nowhere, NOWHERE, XX, AU")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestResultCoordinates(t *testing.T) {
	tests := []struct {
		lat, lon float64
		expected [2]string
	}{
		{-34, 160, [2]string{"-34", "160"}},
		{-20.2675, 148.7181, [2]string{"-20.2675", "148.7181"}},
		{0, 0, [2]string{"0", "0"}},
	}

	for _, tt := range tests {
		r := Result{Latitude: tt.lat, Longitude: tt.lon}
		assert.Equal(t, tt.expected, r.Coordinates(), "lat=%v lon=%v", tt.lat, tt.lon)
	}
}
