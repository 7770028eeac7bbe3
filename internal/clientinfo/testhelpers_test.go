package clientinfo

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sells-group/client-info-cli/pkg/geocode"
)

const (
	darcyLine        = "colton_tromp@gmail.com,Darcy,Waters,8540 Charli Summit,AIRLIE BEACH,QLD,4802,376 Williamson Hill,ARTHUR RIVER,WA,6315\r\n"
	darcyOutput      = "colton_tromp@gmail.com, Darcy, Waters, 8540 Charli Summit, AIRLIE BEACH, QLD, 4802, -34, 160, 376 Williamson Hill, ARTHUR RIVER, WA, 6315, -34, 120"
	darcyResidential = "8540 Charli Summit, AIRLIE BEACH, QLD, AU"
	darcyPostal      = "376 Williamson Hill, ARTHUR RIVER, WA, AU"
)

// fakeGeocoder answers from a table and records every query.
type fakeGeocoder struct {
	results map[string][]geocode.Result
	errs    map[string]error
	queries []string
}

func (f *fakeGeocoder) Search(_ context.Context, query string) ([]geocode.Result, error) {
	f.queries = append(f.queries, query)
	if err := f.errs[query]; err != nil {
		return nil, err
	}
	return f.results[query], nil
}

// darcyGeocoder returns a fakeGeocoder that resolves both Darcy Waters addresses.
func darcyGeocoder() *fakeGeocoder {
	return &fakeGeocoder{results: map[string][]geocode.Result{
		darcyResidential: {{PostalCode: "4802", Latitude: -34, Longitude: 160}},
		darcyPostal:      {{PostalCode: "6315", Latitude: -34, Longitude: 120}},
	}}
}

func headerLine() string {
	return strings.Join(Header, ",")
}

// writeFile writes content under a temp dir and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
