package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"omnisearch/internal/domain"
	"omnisearch/internal/pipeline"
)

// maxResponseSize bounds how much of a remote response is read
const maxResponseSize = 4 << 20

// HTTPSearch returns a SearchFunc that GETs endpoint?q=<query> and decodes
// a JSON catalog ({"items": [...]}) from the response. Remote entries may
// open URLs and routes but never run commands.
func HTTPSearch(endpoint string, client *http.Client, l Launcher) pipeline.SearchFunc {
	if client == nil {
		client = http.DefaultClient
	}

	return func(ctx context.Context, query string) ([]domain.Item, error) {
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("invalid remote url: %w", err)
		}
		q := u.Query()
		q.Set("q", query)
		u.RawQuery = q.Encode()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("remote search: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("remote search: unexpected status %s", resp.Status)
		}

		var f File
		if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&f); err != nil {
			return nil, fmt.Errorf("remote search: failed to decode response: %w", err)
		}
		return Build(f.Items, l)
	}
}
