// Package client is the typed consumer of the catalog API. Every response is
// validated against the shared contract before it reaches a caller, and
// results are cached per query key (endpoint path plus params): identical
// in-flight queries are deduplicated and each completed response supersedes
// the cached one for its key.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/rinlabel/storefront/contract"
)

// ErrNotFound is returned for a 404, meaning "no such product/category"
// rather than a fetch failure.
var ErrNotFound = errors.New("not found")

// Filter restricts Products. All supplied fields combine with logical AND.
type Filter struct {
	Category string
	Featured bool
	Search   string
}

type Client struct {
	baseURL string
	httpc   *http.Client
	log     zerolog.Logger

	group singleflight.Group
	mu    sync.RWMutex
	cache map[string]interface{}
}

type Option func(*Client)

func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 10 * time.Second},
		log:     zerolog.Nop(),
		cache:   make(map[string]interface{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Invalidate drops the cached result for one query key.
func (c *Client) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.cache, key)
}

// Clear drops every cached result.
func (c *Client) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]interface{})
}

func (c *Client) Categories(ctx context.Context) ([]contract.Category, error) {
	v, err := c.get(ctx, queryKey("/api/categories", nil), func(body []byte) (interface{}, error) {
		var categories []contract.Category
		if err := json.Unmarshal(body, &categories); err != nil {
			return nil, err
		}
		for _, category := range categories {
			if err := category.Validate(); err != nil {
				return nil, err
			}
		}
		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]contract.Category), nil
}

func (c *Client) CategoryBySlug(ctx context.Context, slug string) (*contract.Category, error) {
	v, err := c.get(ctx, queryKey("/api/categories/"+url.PathEscape(slug), nil), func(body []byte) (interface{}, error) {
		var category contract.Category
		if err := json.Unmarshal(body, &category); err != nil {
			return nil, err
		}
		if err := category.Validate(); err != nil {
			return nil, err
		}
		return &category, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*contract.Category), nil
}

func (c *Client) Products(ctx context.Context, filter Filter) ([]contract.Product, error) {
	params := url.Values{}
	if filter.Category != "" {
		params.Set("category", filter.Category)
	}
	if filter.Featured {
		params.Set("featured", "true")
	}
	if filter.Search != "" {
		params.Set("search", filter.Search)
	}

	v, err := c.get(ctx, queryKey("/api/products", params), func(body []byte) (interface{}, error) {
		var products []contract.Product
		if err := json.Unmarshal(body, &products); err != nil {
			return nil, err
		}
		for _, product := range products {
			if err := product.Validate(); err != nil {
				return nil, err
			}
		}
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]contract.Product), nil
}

func (c *Client) ProductBySlug(ctx context.Context, slug string) (*contract.Product, error) {
	v, err := c.get(ctx, queryKey("/api/products/"+url.PathEscape(slug), nil), func(body []byte) (interface{}, error) {
		var product contract.Product
		if err := json.Unmarshal(body, &product); err != nil {
			return nil, err
		}
		if err := product.Validate(); err != nil {
			return nil, err
		}
		return &product, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*contract.Product), nil
}

// queryKey canonicalizes a query: url.Values.Encode sorts the params, so the
// same filter always maps to the same key.
func queryKey(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}
	return path + "?" + params.Encode()
}

// get serves from cache when possible, otherwise fetches through singleflight
// so concurrent identical queries share one request. A completed fetch
// replaces the cached value for the key.
func (c *Client) get(ctx context.Context, key string, decode func([]byte) (interface{}, error)) (interface{}, error) {
	c.mu.RLock()
	cached, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		val, err := c.fetch(ctx, key, decode)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.cache[key] = val
		c.mu.Unlock()
		return val, nil
	})
	return v, err
}

func (c *Client) fetch(ctx context.Context, key string, decode func([]byte) (interface{}, error)) (interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+key, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", key, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	val, err := decode(body)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("rejecting payload that fails contract validation")
		return nil, fmt.Errorf("fetch %s: invalid payload: %w", key, err)
	}
	return val, nil
}
