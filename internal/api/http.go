package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cristianoliveira/pokeview/internal/domain"
)

// DefaultTimeout bounds a single request to the catalog server.
const DefaultTimeout = 10 * time.Second

// HTTPClient talks to a pokeview catalog server.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a client for the server at baseURL. A nil client
// uses an http.Client with DefaultTimeout.
func NewHTTPClient(baseURL string, client *http.Client) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api: invalid base url %q", baseURL)
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &HTTPClient{baseURL: u.String(), client: client}, nil
}

// BaseURL returns the server address.
func (c *HTTPClient) BaseURL() string { return c.baseURL }

// ListPokemon fetches one catalog page.
func (c *HTTPClient) ListPokemon(ctx context.Context, q domain.ListQuery) (domain.PokemonPage, error) {
	q = q.Normalize()
	params := url.Values{}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if len(q.Types) > 0 {
		params.Set("types", strings.Join(q.Types, ","))
	}
	params.Set("sort", q.Sort.String())
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("limit", strconv.Itoa(q.Limit))

	var page domain.PokemonPage
	err := c.do(ctx, http.MethodGet, "/api/pokemon?"+params.Encode(), nil, &page)
	return page, err
}

// Pokemon fetches a pokemon with its reviews.
func (c *HTTPClient) Pokemon(ctx context.Context, id int) (domain.Pokemon, error) {
	var p domain.Pokemon
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/pokemon/%d", id), nil, &p)
	return p, err
}

// Reviews fetches the reviews of a pokemon.
func (c *HTTPClient) Reviews(ctx context.Context, pokemonID int) ([]domain.Review, error) {
	reviews := []domain.Review{}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/pokemon/%d/reviews", pokemonID), nil, &reviews)
	return reviews, err
}

// AddReview submits a review.
func (c *HTTPClient) AddReview(ctx context.Context, r domain.Review) (domain.Review, error) {
	var stored domain.Review
	err := c.do(ctx, http.MethodPost, "/api/reviews", r, &stored)
	return stored, err
}

// Types fetches the types present in the catalog.
func (c *HTTPClient) Types(ctx context.Context) ([]string, error) {
	var types []string
	err := c.do(ctx, http.MethodGet, "/api/types", nil, &types)
	return types, err
}

// Health checks the server is reachable.
func (c *HTTPClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("api: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeRemoteError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}

func decodeRemoteError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error != "" {
		return &RemoteError{Status: resp.StatusCode, Message: payload.Error}
	}
	return &RemoteError{Status: resp.StatusCode, Message: strings.TrimSpace(string(data))}
}
