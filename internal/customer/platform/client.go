// Package platform pulls customer and card records from the payment platform API and
// normalizes them into the domain model.
package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/allisson/cardwatch/internal/customer/domain"
	apperrors "github.com/allisson/cardwatch/internal/errors"
)

const (
	customersPath = "/v2/customers"
	tokenHeader   = "api-token"
	maxErrorBody  = 512
	// maxPages bounds pagination against a platform that never returns a short page.
	maxPages = 10000
)

// TokenSource returns the API token of a merchant account.
type TokenSource interface {
	Token(ctx context.Context, currency domain.Currency) (string, error)
}

// Config holds the platform client settings.
type Config struct {
	BaseURL        string
	PageSize       int
	RequestsPerSec float64
	Timeout        time.Duration
}

// Client lists customers of a merchant account page by page.
type Client struct {
	httpClient *http.Client
	baseURL    string
	pageSize   int
	limiter    *rate.Limiter
	tokens     TokenSource
	logger     *slog.Logger
}

// NewClient creates a platform client. Requests from all merchants share one limiter.
func NewClient(cfg Config, tokens TokenSource, logger *slog.Logger) *Client {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	limit := rate.Inf
	if cfg.RequestsPerSec > 0 {
		limit = rate.Limit(cfg.RequestsPerSec)
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		pageSize:   pageSize,
		limiter:    rate.NewLimiter(limit, 1),
		tokens:     tokens,
		logger:     logger,
	}
}

// ListCustomers fetches every customer of the merchant account, stopping at the first
// page shorter than the page size.
func (c *Client) ListCustomers(ctx context.Context, currency domain.Currency) ([]RawCustomer, error) {
	token, err := c.tokens.Token(ctx, currency)
	if err != nil {
		return nil, err
	}

	var customers []RawCustomer
	for page := 1; page <= maxPages; page++ {
		batch, err := c.fetchPage(ctx, token, page)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s customers page %d: %w", currency, page, err)
		}
		customers = append(customers, batch...)

		c.logger.Debug("fetched customers page",
			slog.String("currency", string(currency)),
			slog.Int("page", page),
			slog.Int("count", len(batch)),
		)

		if len(batch) < c.pageSize {
			break
		}
	}

	return customers, nil
}

func (c *Client) fetchPage(ctx context.Context, token string, page int) ([]RawCustomer, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(c.pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+customersPath+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(tokenHeader, token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(domain.ErrPlatformUnavailable, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, apperrors.Wrapf(
			domain.ErrPlatformUnavailable,
			"status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)),
		)
	}

	var customers []RawCustomer
	if err := json.NewDecoder(resp.Body).Decode(&customers); err != nil {
		return nil, apperrors.Wrap(domain.ErrPlatformUnavailable, "malformed customers payload: "+err.Error())
	}
	return customers, nil
}
