package geocode

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// FixtureProvider answers queries from a static query-to-results table.
// Used for offline runs; unknown queries return no match.
type FixtureProvider struct {
	results map[string][]Result
}

// NewFixtureProvider creates a FixtureProvider from an in-memory table.
func NewFixtureProvider(results map[string][]Result) *FixtureProvider {
	table := make(map[string][]Result, len(results))
	for q, rs := range results {
		out := make([]Result, len(rs))
		for i, r := range rs {
			if r.Source == "" {
				r.Source = "fixture"
			}
			out[i] = r
		}
		table[q] = out
	}
	return &FixtureProvider{results: table}
}

// LoadFixtures reads a YAML file mapping query strings to result lists:
//
//	"8540 Charli Summit, AIRLIE BEACH, QLD, AU":
//	  - postal_code: "4802"
//	    latitude: -34
//	    longitude: 160
func LoadFixtures(path string) (*FixtureProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: read fixtures")
	}

	var table map[string][]Result
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, eris.Wrapf(err, "geocode: parse fixtures %s", path)
	}
	return NewFixtureProvider(table), nil
}

// Name implements Provider.
func (p *FixtureProvider) Name() string { return "fixture" }

// Available implements Provider.
func (p *FixtureProvider) Available() bool { return true }

// Len returns the number of queries in the table.
func (p *FixtureProvider) Len() int { return len(p.results) }

// Search implements Provider and Client.
func (p *FixtureProvider) Search(_ context.Context, query string) ([]Result, error) {
	rs, ok := p.results[query]
	if !ok {
		return nil, nil
	}
	out := make([]Result, len(rs))
	copy(out, rs)
	return out, nil
}
