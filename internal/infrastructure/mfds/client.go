package mfds

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

	"github.com/jipbab-note/backend/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	serviceID = "COOKRCP01"

	resultCodeOK     = "INFO-000"
	resultCodeNoData = "INFO-200"

	defaultBaseURL    = "https://openapi.foodsafetykorea.go.kr/api"
	defaultTimeout    = 4500 * time.Millisecond
	defaultMaxRetries = 2
	defaultRetryDelay = 250 * time.Millisecond
	detailScanWindow  = 5
)

// Config carries the 식품의약품안전처 (MFDS) open API settings. Zero
// fields other than APIKey fall back to the defaults above.
type Config struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// Client calls the MFDS COOKRCP01 recipe service. The upstream keys
// requests by a path-embedded API key and serves page ranges as
// /{start}/{end} path segments rather than query parameters.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	retry       retryPolicy
	logger      *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}

	// The open API tolerates roughly 3 requests per second per key.
	limiter := rate.NewLimiter(rate.Limit(3), 5)

	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		rateLimiter: limiter,
		retry:       retryPolicy{maxRetries: cfg.MaxRetries, delay: cfg.RetryDelay},
		logger:      logger,
	}
}

// envelope is the outer MFDS response. COOKRCP01 arrives as an object
// normally but as an array on some error responses, so it is kept raw
// until resolveService inspects it.
type envelope struct {
	Service json.RawMessage `json:"COOKRCP01"`
	Result  *resultBlock    `json:"RESULT"`
}

type serviceBlock struct {
	TotalCount string       `json:"total_count"`
	Row        []recipeRow  `json:"row"`
	Result     *resultBlock `json:"RESULT"`
}

type resultBlock struct {
	Code    string `json:"CODE"`
	Message string `json:"MSG"`
}

// recipeRow is one upstream recipe record. Every field the service
// emits is a string, including MANUAL01..MANUAL20, so a plain string
// map covers the whole row.
type recipeRow map[string]string

// FetchRecipes retrieves one page of recipes, rows start through end
// inclusive, optionally narrowed by name and category filters.
func (c *Client) FetchRecipes(ctx context.Context, start, end int, filter domain.RecipeFilter) (*domain.RecipeChunk, error) {
	if c.apiKey == "" {
		return nil, domain.ErrMissingAPIKey
	}

	reqURL := c.buildURL(start, end, filterSegment(filter))

	var chunk *domain.RecipeChunk
	err := c.retry.run(ctx, func(ctx context.Context) error {
		service, err := c.fetchService(ctx, reqURL)
		if err != nil {
			return err
		}

		recipes := make([]domain.Recipe, 0, len(service.Row))
		for _, row := range service.Row {
			recipes = append(recipes, rowToRecipe(row))
		}
		chunk = &domain.RecipeChunk{
			Recipes:    recipes,
			TotalCount: parseTotalCount(service.TotalCount),
		}
		if service.Result != nil {
			chunk.Code = service.Result.Code
			chunk.Message = service.Result.Message
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return chunk, nil
}

// FetchRecipeBySeq retrieves one recipe by its upstream RCP_SEQ id. The
// service has no true point lookup; the RCP_SEQ filter is a prefix
// match, so a small window is fetched and scanned for the exact id.
func (c *Client) FetchRecipeBySeq(ctx context.Context, seq string) (*domain.RecipeDetail, error) {
	if c.apiKey == "" {
		return nil, domain.ErrMissingAPIKey
	}

	segment := "/RCP_SEQ=" + url.PathEscape(seq)
	reqURL := c.buildURL(1, detailScanWindow, segment)

	var detail *domain.RecipeDetail
	err := c.retry.run(ctx, func(ctx context.Context) error {
		service, err := c.fetchService(ctx, reqURL)
		if err != nil {
			return err
		}

		row := pickRowBySeq(service.Row, seq)
		if row == nil {
			return domain.ErrRecipeNotFound
		}
		detail = rowToRecipeDetail(row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func pickRowBySeq(rows []recipeRow, seq string) recipeRow {
	for _, row := range rows {
		if row["RCP_SEQ"] == seq {
			return row
		}
	}
	if len(rows) > 0 {
		return rows[0]
	}
	return nil
}

func (c *Client) buildURL(start, end int, filterSegment string) string {
	return fmt.Sprintf("%s/%s/%s/json/%d/%d%s", c.baseURL, c.apiKey, serviceID, start, end, filterSegment)
}

// filterSegment renders the optional trailing path segment the MFDS API
// uses for filtering, e.g. /RCP_NM=김치&RCP_PAT2=한식.
func filterSegment(filter domain.RecipeFilter) string {
	var conditions []string
	if query := strings.TrimSpace(filter.Query); query != "" {
		conditions = append(conditions, "RCP_NM="+url.PathEscape(query))
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		conditions = append(conditions, "RCP_PAT2="+url.PathEscape(category))
	}
	if len(conditions) == 0 {
		return ""
	}
	return "/" + strings.Join(conditions, "&")
}

// fetchService performs one attempt against reqURL and returns the
// resolved COOKRCP01 block. Transport failures, 429 and 5xx responses
// come back marked transient for the retry policy.
func (c *Client) fetchService(ctx context.Context, reqURL string) (*serviceBlock, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build recipe request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transient(fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transient(fmt.Errorf("%w: read response: %v", domain.ErrUpstreamFailure, err))
	}

	if resp.StatusCode != http.StatusOK {
		statusErr := fmt.Errorf("%w: status %d", domain.ErrUpstreamFailure, resp.StatusCode)
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			c.logger.Warn("recipe api returned retryable status",
				zap.Int("status", resp.StatusCode))
			return nil, transient(statusErr)
		}
		return nil, statusErr
	}

	var payload envelope
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrUpstreamFailure, err)
	}

	service, err := resolveService(payload.Service)
	if err != nil {
		return nil, err
	}
	if service == nil {
		service = &serviceBlock{Result: payload.Result}
	}

	result := service.Result
	if result == nil {
		result = payload.Result
	}
	if result != nil && result.Code != "" && result.Code != resultCodeOK {
		if result.Code == resultCodeNoData {
			return &serviceBlock{Result: result}, nil
		}
		return nil, fmt.Errorf("%w: %s (%s)", domain.ErrUpstreamFailure, result.Code, result.Message)
	}

	service.Result = result
	return service, nil
}

// resolveService decodes the raw COOKRCP01 block, which is usually an
// object but occasionally an array of objects; the element carrying
// rows wins.
func resolveService(raw json.RawMessage) (*serviceBlock, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var blocks []serviceBlock
		if err := json.Unmarshal(trimmed, &blocks); err != nil {
			return nil, fmt.Errorf("%w: decode service array: %v", domain.ErrUpstreamFailure, err)
		}
		for i := range blocks {
			if len(blocks[i].Row) > 0 {
				return &blocks[i], nil
			}
		}
		if len(blocks) > 0 {
			return &blocks[0], nil
		}
		return nil, nil
	}

	var block serviceBlock
	if err := json.Unmarshal(trimmed, &block); err != nil {
		return nil, fmt.Errorf("%w: decode service block: %v", domain.ErrUpstreamFailure, err)
	}
	return &block, nil
}

func parseTotalCount(value string) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed < 0 {
		return 0
	}
	return parsed
}
