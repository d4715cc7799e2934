// Package ganjoor talks to the Ganjoor poetry API.
package ganjoor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"faal-poster/internal/domain"
	"faal-poster/pkg/log"
)

// DefaultURL is the Hafez oracle endpoint.
const DefaultURL = "https://api.ganjoor.net/api/ganjoor/hafez/faal"

// Client fetches oracle poems.
type Client struct {
	client *http.Client
	url    string
}

// NewClient creates a Client for the given oracle URL. A nil client uses http.DefaultClient.
func NewClient(client *http.Client, url string) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	if url == "" {
		url = DefaultURL
	}
	return &Client{client: client, url: url}
}

// Faal asks the oracle for a poem.
// A non-200 answer reports ok=false with a nil error. Transport failures are
// returned as errors, as are bodies that are not {verses:[{text}]}
// (wrapping domain.ErrInvalidPoemResponse).
func (c *Client) Faal(ctx context.Context) (domain.Poem, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return domain.Poem{}, false, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.Poem{}, false, fmt.Errorf("request faal: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		log.GlobalWarnCtx(ctx, "oracle returned no poem", "status", resp.StatusCode)
		return domain.Poem{}, false, nil
	}

	var poem domain.Poem
	if err := json.NewDecoder(resp.Body).Decode(&poem); err != nil {
		if !errors.Is(err, domain.ErrInvalidPoemResponse) {
			err = fmt.Errorf("%w: %v", domain.ErrInvalidPoemResponse, err)
		}
		return domain.Poem{}, false, err
	}

	log.GlobalDebugCtx(ctx, "poem received", "verses", len(poem.Verses))
	return poem, true, nil
}
