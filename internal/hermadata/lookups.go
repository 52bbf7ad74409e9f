package hermadata

import (
	"context"
	"net/http"
	"net/url"
)

// Lookup lists change rarely; the cache keeps them with a long TTL and
// every dropdown in the console shares one fetch.

// FetchRaces lists the configured species.
func (c *Client) FetchRaces(ctx context.Context) ([]Race, error) {
	rel := &url.URL{Path: "/races"}
	var races []Race
	if err := c.doJSON(ctx, http.MethodGet, rel, nil, &races); err != nil {
		return nil, err
	}
	return races, nil
}

// FetchBreeds lists the breeds of one race.
func (c *Client) FetchBreeds(ctx context.Context, raceID string) ([]Breed, error) {
	values := url.Values{}
	values.Set("race_id", raceID)
	rel := &url.URL{Path: "/breeds", RawQuery: values.Encode()}
	var breeds []Breed
	if err := c.doJSON(ctx, http.MethodGet, rel, nil, &breeds); err != nil {
		return nil, err
	}
	return breeds, nil
}

// FetchProvinces lists the province registry.
func (c *Client) FetchProvinces(ctx context.Context) ([]Province, error) {
	rel := &url.URL{Path: "/util/provinces"}
	var provinces []Province
	if err := c.doJSON(ctx, http.MethodGet, rel, nil, &provinces); err != nil {
		return nil, err
	}
	return provinces, nil
}

// FetchCities lists the cities of one province.
func (c *Client) FetchCities(ctx context.Context, provinceCode string) ([]City, error) {
	values := url.Values{}
	values.Set("provincia", provinceCode)
	rel := &url.URL{Path: "/util/cities", RawQuery: values.Encode()}
	var cities []City
	if err := c.doJSON(ctx, http.MethodGet, rel, nil, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

// FetchDocKinds lists the configured document categories.
func (c *Client) FetchDocKinds(ctx context.Context) ([]DocKind, error) {
	rel := &url.URL{Path: "/document-kinds"}
	var kinds []DocKind
	if err := c.doJSON(ctx, http.MethodGet, rel, nil, &kinds); err != nil {
		return nil, err
	}
	return kinds, nil
}
