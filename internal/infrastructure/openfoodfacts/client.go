package openfoodfacts

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jipbab-note/backend/internal/domain"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://world.openfoodfacts.org/api/v2/product"
	defaultTimeout = 5 * time.Second

	// Only the fields the product card renders; the full document is
	// hundreds of keys.
	productFields = "code,product_name,product_name_ko,brands,quantity,categories,image_url"
)

// Client looks up packaged food products on the Open Food Facts public
// API by barcode.
type Client struct {
	rest   *resty.Client
	logger *zap.Logger
}

type productPayload struct {
	Status  int    `json:"status"`
	Verbose string `json:"status_verbose"`
	Product struct {
		ProductName   string `json:"product_name"`
		ProductNameKo string `json:"product_name_ko"`
		Brands        string `json:"brands"`
		Quantity      string `json:"quantity"`
		Categories    string `json:"categories"`
		ImageURL      string `json:"image_url"`
	} `json:"product"`
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	rest := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("User-Agent", "JipbabNote/1.0")

	return &Client{rest: rest, logger: logger}
}

// Lookup fetches the product behind barcode. domain.ErrProductNotFound
// covers every "no usable product" case: unknown barcode, an HTTP 404,
// or a document with no name to show.
func (c *Client) Lookup(ctx context.Context, barcode string) (*domain.Product, error) {
	var payload productPayload

	resp, err := c.rest.R().
		SetContext(ctx).
		SetResult(&payload).
		Get(fmt.Sprintf("/%s.json?fields=%s", url.PathEscape(barcode), productFields))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}

	if resp.StatusCode() == 404 {
		return nil, domain.ErrProductNotFound
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d", domain.ErrUpstreamFailure, resp.StatusCode())
	}

	if payload.Status != 1 {
		c.logger.Debug("product lookup missed",
			zap.String("barcode", barcode),
			zap.String("status_verbose", payload.Verbose))
		return nil, domain.ErrProductNotFound
	}

	// Korean label preferred; the international name is the fallback.
	name := strings.TrimSpace(payload.Product.ProductNameKo)
	if name == "" {
		name = strings.TrimSpace(payload.Product.ProductName)
	}
	if name == "" {
		return nil, domain.ErrProductNotFound
	}

	return &domain.Product{
		Barcode:  barcode,
		Name:     name,
		Brand:    strings.TrimSpace(payload.Product.Brands),
		Quantity: strings.TrimSpace(payload.Product.Quantity),
		Category: strings.TrimSpace(payload.Product.Categories),
		ImageURL: strings.TrimSpace(payload.Product.ImageURL),
		Source:   domain.ProductSourceOpenFoodFacts,
	}, nil
}
