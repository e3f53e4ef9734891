package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/catifypro/matcher/internal/domain"
)

const maxAttempts = 3

// Client reads product catalogs from the CatifyPro backend REST API.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a catalog API client. The backend allows 600 requests
// per minute per key; the limiter stays under that with headroom for other
// consumers of the same key.
func NewClient(apiKey, baseURL string) *Client {
	limiter := rate.NewLimiter(rate.Limit(8), 16)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// SetDebug toggles request/response logging.
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// exponentialBackoff returns the wait before retry attempt n (1-based):
// 500ms, 1s, 2s, ...
func exponentialBackoff(attempt int) time.Duration {
	return 500 * time.Millisecond << (attempt - 1)
}

// doRequest executes an HTTP GET request with auth headers
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", "catifypro-matcher/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogAPIFailure, err)
	}

	return resp, nil
}

// ListProducts fetches every product belonging to a tenant. Transient
// failures (5xx, 429) are retried with backoff; other 4xx are not.
func (c *Client) ListProducts(ctx context.Context, tenantID string) ([]domain.Product, error) {
	if tenantID == "" {
		return nil, domain.ErrInvalidRequest
	}

	endpoint := fmt.Sprintf("%s/rest/v1/products", c.baseURL)
	params := url.Values{}
	params.Add("tenant_id", tenantID)

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			if c.debug {
				log.Printf("[CATALOG] request error (attempt %d): %v", attempt, err)
			}
			lastErr = err
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			var products []domain.Product
			if err := json.Unmarshal(body, &products); err != nil {
				return nil, fmt.Errorf("failed to decode response: %w", err)
			}
			if c.debug {
				log.Printf("[CATALOG] %d products for tenant %s", len(products), tenantID)
			}
			return products, nil

		case resp.StatusCode == http.StatusNotFound:
			return nil, domain.ErrTenantNotFound

		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			if c.debug {
				log.Printf("[CATALOG] transient error (attempt %d): status %d, body: %s",
					attempt, resp.StatusCode, string(body))
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrCatalogAPIFailure, resp.StatusCode)
			time.Sleep(exponentialBackoff(attempt))

		default:
			return nil, fmt.Errorf("%w: status %d, body: %s",
				domain.ErrCatalogAPIFailure, resp.StatusCode, string(body))
		}
	}

	return nil, lastErr
}

// GetProduct fetches a single product by ID.
func (c *Client) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	if productID == "" {
		return nil, domain.ErrInvalidRequest
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	reqURL := fmt.Sprintf("%s/rest/v1/products/%s", c.baseURL, url.PathEscape(productID))

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrTenantNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d, body: %s",
			domain.ErrCatalogAPIFailure, resp.StatusCode, string(body))
	}

	var product domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &product, nil
}
