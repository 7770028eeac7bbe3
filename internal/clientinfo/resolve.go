package clientinfo

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/client-info-cli/pkg/geocode"
)

// DefaultCountry is appended to every geocoding query.
const DefaultCountry = "AU"

// Resolution holds the geocode results for both addresses of a row.
type Resolution struct {
	Residential geocode.Result
	Postal      geocode.Result
	// Reused is set when the postal address text matched the residential one and
	// no second lookup was made.
	Reused bool
}

// Resolver turns a row's addresses into geocode results.
type Resolver struct {
	client  geocode.Client
	country string
}

// NewResolver creates a Resolver. An empty country falls back to DefaultCountry.
func NewResolver(client geocode.Client, country string) *Resolver {
	if country == "" {
		country = DefaultCountry
	}
	return &Resolver{client: client, country: country}
}

// Query builds "street, locality, state, country".
func (r *Resolver) Query(street, locality, state string) string {
	return strings.Join([]string{street, locality, state, r.country}, ", ")
}

// ResidentialQuery returns the residential address query for row.
func (r *Resolver) ResidentialQuery(row Row) string {
	return r.Query(row[FieldResidentialStreet], row[FieldResidentialLocality], row[FieldResidentialState])
}

// PostalQuery returns the postal address query for row.
func (r *Resolver) PostalQuery(row Row) string {
	return r.Query(row[FieldPostalStreet], row[FieldPostalLocality], row[FieldPostalState])
}

// Resolve geocodes the residential address, then the postal address unless its
// query text is identical. A missing match yields a reject reason; client errors
// are returned as-is for the caller to abort on.
func (r *Resolver) Resolve(ctx context.Context, row Row) (*Resolution, RejectReason, error) {
	residentialQuery := r.ResidentialQuery(row)
	residential, ok, err := r.first(ctx, residentialQuery)
	if err != nil {
		return nil, ReasonNone, eris.Wrap(err, "clientinfo: resolve residential address")
	}
	if !ok {
		return nil, ReasonUnresolvedResidential, nil
	}

	res := &Resolution{Residential: residential}

	postalQuery := r.PostalQuery(row)
	if postalQuery == residentialQuery {
		res.Postal = residential
		res.Reused = true
		return res, ReasonNone, nil
	}

	postal, ok, err := r.first(ctx, postalQuery)
	if err != nil {
		return nil, ReasonNone, eris.Wrap(err, "clientinfo: resolve postal address")
	}
	if !ok {
		return nil, ReasonUnresolvedPostal, nil
	}
	res.Postal = postal
	return res, ReasonNone, nil
}

func (r *Resolver) first(ctx context.Context, query string) (geocode.Result, bool, error) {
	results, err := r.client.Search(ctx, query)
	if err != nil {
		return geocode.Result{}, false, err
	}
	if len(results) == 0 {
		zap.L().Debug("clientinfo: no geocode match", zap.String("query", query))
		return geocode.Result{}, false, nil
	}
	return results[0], true, nil
}
