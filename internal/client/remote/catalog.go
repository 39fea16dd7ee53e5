// Package remote implements the HTTP client for the paginated catalog
// endpoint served by pokedexd.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/pokedex/internal/client/models"
	"github.com/dmitrijs2005/pokedex/internal/common"
)

// Catalog fetches ordered pages of records from the remote catalog source.
type Catalog struct {
	baseURL    string
	httpClient *http.Client
}

// NewCatalog returns a Catalog targeting the given base URL
// (e.g. "http://127.0.0.1:9090").
func NewCatalog(baseURL string) *Catalog {
	return &Catalog{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// FetchPage requests one page of records. A non-2xx status or a body that
// is not a JSON array of valid records is reported as ErrorNetwork; the
// caller decides whether to retry. A short page signals that the catalog
// is exhausted; interpreting that is the engine's job, not the client's.
func (c *Catalog) FetchPage(ctx context.Context, page, limit int) ([]models.Record, error) {
	url := fmt.Sprintf("%s/pokemon?page=%d&limit=%d", c.baseURL, page, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting page %d: %v: %w", page, err, common.ErrorNetwork)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("requesting page %d: unexpected status %d: %w", page, resp.StatusCode, common.ErrorNetwork)
	}

	var batch []models.Record
	if err := json.NewDecoder(resp.Body).Decode(&batch); err != nil {
		return nil, fmt.Errorf("decoding page %d: %v: %w", page, err, common.ErrorNetwork)
	}

	for i := range batch {
		if err := batch[i].Validate(); err != nil {
			return nil, fmt.Errorf("page %d: %v: %w", page, err, common.ErrorNetwork)
		}
	}

	return batch, nil
}
