package geocode

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Provider represents a single geocoding backend.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string) ([]Result, error)
	Available() bool
}

// CascadeClient tries geocode providers in order until one returns matches.
type CascadeClient struct {
	providers []Provider
}

// NewCascadeClient creates a CascadeClient that tries providers in order.
func NewCascadeClient(providers []Provider) *CascadeClient {
	return &CascadeClient{providers: providers}
}

// Providers returns the names of the available providers in cascade order.
func (c *CascadeClient) Providers() []string {
	var names []string
	for _, p := range c.providers {
		if p.Available() {
			names = append(names, p.Name())
		}
	}
	return names
}

// Search implements Client. A provider error is returned only when no later
// provider produced matches; an empty result from every provider is not an error.
func (c *CascadeClient) Search(ctx context.Context, query string) ([]Result, error) {
	var lastErr error
	for _, p := range c.providers {
		if !p.Available() {
			continue
		}
		results, err := p.Search(ctx, query)
		if err != nil {
			zap.L().Debug("cascade: provider error, trying next",
				zap.String("provider", p.Name()),
				zap.Error(err),
			)
			lastErr = eris.Wrapf(err, "cascade: %s search", p.Name())
			continue
		}
		if len(results) > 0 {
			return results, nil
		}
		zap.L().Debug("cascade: no match",
			zap.String("provider", p.Name()),
			zap.String("query", query),
		)
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, nil
}
