package hermadata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// FetchStats retrieves the dashboard aggregates.
func (c *Client) FetchStats(ctx context.Context) (ShelterStats, error) {
	rel := &url.URL{Path: "/stats"}
	var stats ShelterStats
	if err := c.doJSON(ctx, http.MethodGet, rel, nil, &stats); err != nil {
		return ShelterStats{}, err
	}
	return stats, nil
}

// ExportAnimals downloads the CSV export of the animals matching q. The
// raw bytes are returned for the caller to write out; the export is never
// cached.
func (c *Client) ExportAnimals(ctx context.Context, q AnimalQuery) ([]byte, error) {
	rel := &url.URL{Path: "/animals/export", RawQuery: q.values().Encode()}
	resp, err := c.send(ctx, http.MethodGet, rel, nil, "")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := c.checkStatus(rel, resp); err != nil {
		return nil, err
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("export returned an empty document")
	}
	return raw, nil
}
