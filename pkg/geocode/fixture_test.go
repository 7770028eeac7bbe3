package geocode

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFixtures(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "geocodes.yaml")
	content := `
"8540 Charli Summit, AIRLIE BEACH, QLD, AU":
  - postal_code: "4802"
    latitude: -34
    longitude: 160
"376 Williamson Hill, ARTHUR RIVER, WA, AU":
  - postal_code: "6315"
    latitude: -34
    longitude: 120
    source: manual
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	p, err := LoadFixtures(path)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Len())

	results, err := p.Search(context.Background(), "8540 Charli Summit, AIRLIE BEACH, QLD, AU")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "4802", results[0].PostalCode)
	assert.Equal(t, "fixture", results[0].Source)
	assert.Equal(t, [2]string{"-34", "160"}, results[0].Coordinates())

	results, err = p.Search(context.Background(), "376 Williamson Hill, ARTHUR RIVER, WA, AU")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "manual", results[0].Source)
}

func TestLoadFixtures_MissingFile(t *testing.T) {
	_, err := LoadFixtures(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "read fixtures")
}

func TestLoadFixtures_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- not: a map\n"), 0o644))

	_, err := LoadFixtures(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parse fixtures")
}

func TestFixtureProvider_UnknownQuery(t *testing.T) {
	p := NewFixtureProvider(nil)

	results, err := p.Search(context.Background(), "anything")
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.True(t, p.Available())
	assert.Equal(t, "fixture", p.Name())
}
