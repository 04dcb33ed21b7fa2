package woocommerce

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

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/jafarshop/storemigrate/internal/config"
	"github.com/jafarshop/storemigrate/internal/connector"
	"github.com/jafarshop/storemigrate/internal/domain"
	"github.com/jafarshop/storemigrate/pkg/errors"
)

const (
	storePrefix = "/wp-json/wc/v3"
	wpPrefix    = "/wp-json/wp/v2"
)

// Client talks to the WooCommerce REST API and the WordPress REST API of the
// same site, authenticating with the consumer key pair.
type Client struct {
	baseURL        string
	consumerKey    string
	consumerSecret string
	pageSize       int
	maxPages       int
	httpClient     *http.Client
	limiter        *rate.Limiter
	logger         *zap.Logger
}

var _ connector.Connector = (*Client)(nil)

// NewClient creates a new WooCommerce REST client
func NewClient(cfg config.WooCommerceConfig, fetch config.FetchConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:        strings.TrimSuffix(cfg.URL, "/"),
		consumerKey:    cfg.ConsumerKey,
		consumerSecret: cfg.ConsumerSecret,
		pageSize:       fetch.PageSize,
		maxPages:       fetch.MaxPages,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(fetch.RateLimitPerSecond), 1),
		logger:  logger,
	}
}

// Platform returns the WooCommerce platform code
func (c *Client) Platform() domain.Platform {
	return domain.PlatformWooCommerce
}

// endpoint returns the collection path and list query for an entity
func endpoint(entity domain.EntityType) (string, url.Values, error) {
	q := url.Values{}
	switch entity {
	case domain.EntityProduct:
		return storePrefix + "/products", q, nil
	case domain.EntityCustomer:
		q.Set("role", "all")
		return storePrefix + "/customers", q, nil
	case domain.EntityOrder:
		return storePrefix + "/orders", q, nil
	case domain.EntityCollection:
		return storePrefix + "/products/categories", q, nil
	case domain.EntityCoupon:
		return storePrefix + "/coupons", q, nil
	case domain.EntityReview:
		return storePrefix + "/products/reviews", q, nil
	case domain.EntityPage:
		q.Set("context", "edit")
		return wpPrefix + "/pages", q, nil
	case domain.EntityBlogPost:
		q.Set("context", "edit")
		q.Set("_embed", "1")
		return wpPrefix + "/posts", q, nil
	default:
		return "", nil, &errors.ErrCapabilityMismatch{Entity: entity.String(), Platform: domain.PlatformWooCommerce.String()}
	}
}

// FetchAll pages through every record of entity
func (c *Client) FetchAll(ctx context.Context, entity domain.EntityType) ([]domain.NativeRecord, error) {
	path, q, err := endpoint(entity)
	if err != nil {
		return nil, err
	}

	switch entity {
	case domain.EntityProduct:
		products, truncated := fetchPages[Product](ctx, c, path, q)
		if _, ok := errors.AsTruncated(truncated); truncated != nil && !ok {
			return nil, truncated
		}
		records := make([]domain.NativeRecord, 0, len(products))
		for _, p := range products {
			if err := c.attachVariations(ctx, &p); err != nil {
				if _, ok := errors.AsTruncated(err); !ok {
					return nil, err
				}
				if truncated == nil {
					truncated = err
				}
			}
			records = append(records, p)
		}
		return records, truncated
	case domain.EntityCustomer:
		return collect[Customer](fetchPages[Customer](ctx, c, path, q))
	case domain.EntityOrder:
		return collect[Order](fetchPages[Order](ctx, c, path, q))
	case domain.EntityCollection:
		return collect[Category](fetchPages[Category](ctx, c, path, q))
	case domain.EntityCoupon:
		return collect[Coupon](fetchPages[Coupon](ctx, c, path, q))
	case domain.EntityReview:
		return collect[Review](fetchPages[Review](ctx, c, path, q))
	case domain.EntityPage:
		return collect[Page](fetchPages[Page](ctx, c, path, q))
	default:
		return collect[Post](fetchPages[Post](ctx, c, path, q))
	}
}

// Fetch reads one record by id
func (c *Client) Fetch(ctx context.Context, entity domain.EntityType, id string) (domain.NativeRecord, error) {
	path, q, err := endpoint(entity)
	if err != nil {
		return nil, err
	}
	path = path + "/" + url.PathEscape(id)

	switch entity {
	case domain.EntityProduct:
		var p Product
		if err := c.do(ctx, http.MethodGet, path, q, nil, &p, nil); err != nil {
			return nil, c.notFound(err, entity, id)
		}
		if err := c.attachVariations(ctx, &p); err != nil {
			return nil, err
		}
		return p, nil
	case domain.EntityCustomer:
		return fetchOne[Customer](ctx, c, entity, path, id)
	case domain.EntityOrder:
		return fetchOne[Order](ctx, c, entity, path, id)
	case domain.EntityCollection:
		return fetchOne[Category](ctx, c, entity, path, id)
	case domain.EntityCoupon:
		return fetchOne[Coupon](ctx, c, entity, path, id)
	case domain.EntityReview:
		return fetchOne[Review](ctx, c, entity, path, id)
	case domain.EntityPage:
		return fetchOne[Page](ctx, c, entity, path+"?context=edit", id)
	default:
		return fetchOne[Post](ctx, c, entity, path+"?context=edit&_embed=1", id)
	}
}

// Create posts payload and returns the new record id
func (c *Client) Create(ctx context.Context, entity domain.EntityType, payload domain.NativeRecord) (string, error) {
	path, _, err := endpoint(entity)
	if err != nil {
		return "", err
	}

	switch p := payload.(type) {
	case Product:
		return c.createProduct(ctx, path, p)
	case Post:
		if err := c.resolvePostTerms(ctx, &p); err != nil {
			return "", err
		}
		return c.create(ctx, path, p)
	case Customer, Order, Category, Coupon, Review, Page:
		return c.create(ctx, path, p)
	default:
		return "", fmt.Errorf("woocommerce: cannot create %T", payload)
	}
}

// Update sends a partial update. Inventory updates address a variation, or
// the product itself when id is empty or equals the product id.
func (c *Client) Update(ctx context.Context, entity domain.EntityType, id string, patch domain.Patch) error {
	if entity == domain.EntityInventory {
		return c.updateStock(ctx, id, patch)
	}

	path, _, err := endpoint(entity)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path+"/"+url.PathEscape(id), nil, patch, nil, nil)
}

func (c *Client) updateStock(ctx context.Context, variantID string, patch domain.Patch) error {
	productID := fmt.Sprint(patch[connector.PatchProductID])
	qty, ok := patch[connector.PatchQuantity].(int)
	if !ok {
		return fmt.Errorf("woocommerce: inventory patch needs an integer %q", connector.PatchQuantity)
	}
	if productID == "" || productID == "<nil>" {
		return fmt.Errorf("woocommerce: inventory patch needs %q", connector.PatchProductID)
	}

	body := map[string]interface{}{"manage_stock": true, "stock_quantity": qty}
	path := storePrefix + "/products/" + url.PathEscape(productID)
	if variantID != "" && variantID != productID {
		path += "/variations/" + url.PathEscape(variantID)
	}
	return c.do(ctx, http.MethodPut, path, nil, body, nil, nil)
}

func (c *Client) createProduct(ctx context.Context, path string, p Product) (string, error) {
	variations := p.Variations
	p.Variations = nil

	var err error
	if p.Categories, err = c.resolveTerms(ctx, storePrefix+"/products/categories", p.Categories); err != nil {
		return "", err
	}
	if p.Tags, err = c.resolveTerms(ctx, storePrefix+"/products/tags", p.Tags); err != nil {
		return "", err
	}

	id, err := c.create(ctx, path, p)
	if err != nil {
		return "", err
	}

	for _, v := range variations {
		if _, err := c.create(ctx, path+"/"+id+"/variations", v); err != nil {
			return id, fmt.Errorf("product %s created but variation %s failed: %w", id, v.SKU, err)
		}
	}
	return id, nil
}

// attachVariations loads the variation records of a variable product
func (c *Client) attachVariations(ctx context.Context, p *Product) error {
	if p.Type != "variable" || len(p.VariationIDs) == 0 {
		return nil
	}
	path := fmt.Sprintf("%s/products/%d/variations", storePrefix, p.ID)
	variations, err := fetchPages[Variation](ctx, c, path, url.Values{})
	if _, truncated := errors.AsTruncated(err); err != nil && !truncated {
		return fmt.Errorf("failed to fetch variations of product %d: %w", p.ID, err)
	}
	p.Variations = variations
	return err
}

// resolveTerms swaps term names for ids, creating missing terms
func (c *Client) resolveTerms(ctx context.Context, path string, terms []Term) ([]Term, error) {
	out := make([]Term, 0, len(terms))
	for _, t := range terms {
		if t.ID != 0 {
			out = append(out, t)
			continue
		}
		id, err := c.termID(ctx, path, t.Name)
		if err != nil {
			return nil, err
		}
		out = append(out, Term{ID: id})
	}
	return out, nil
}

func (c *Client) resolvePostTerms(ctx context.Context, p *Post) error {
	for _, name := range p.TagNames {
		id, err := c.termID(ctx, wpPrefix+"/tags", name)
		if err != nil {
			return err
		}
		p.Tags = append(p.Tags, id)
	}
	for _, name := range p.CategoryNames {
		id, err := c.termID(ctx, wpPrefix+"/categories", name)
		if err != nil {
			return err
		}
		p.Categories = append(p.Categories, id)
	}
	if p.AuthorName != "" {
		c.logger.Debug("Post author is not mapped to a WordPress user",
			zap.String("author", p.AuthorName),
			zap.String("slug", p.Slug),
		)
	}
	p.TagNames, p.CategoryNames, p.AuthorName = nil, nil, ""
	return nil
}

func (c *Client) termID(ctx context.Context, path, name string) (int64, error) {
	var found []Term
	q := url.Values{"search": {name}}
	if err := c.do(ctx, http.MethodGet, path, q, nil, &found, nil); err != nil {
		return 0, fmt.Errorf("failed to look up term %q: %w", name, err)
	}
	for _, t := range found {
		if strings.EqualFold(t.Name, name) {
			return t.ID, nil
		}
	}

	var created Term
	if err := c.do(ctx, http.MethodPost, path, nil, Term{Name: name}, &created, nil); err != nil {
		return 0, fmt.Errorf("failed to create term %q: %w", name, err)
	}
	return created.ID, nil
}

func (c *Client) create(ctx context.Context, path string, payload interface{}) (string, error) {
	var created struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, path, nil, payload, &created, nil); err != nil {
		return "", err
	}
	return strconv.FormatInt(created.ID, 10), nil
}

// statusError is a non-2xx response
type statusError struct {
	Status int
	Body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("woocommerce API error: status %d, body: %s", e.Status, e.Body)
}

func (c *Client) notFound(err error, entity domain.EntityType, id string) error {
	if se, ok := err.(*statusError); ok && se.Status == http.StatusNotFound {
		return &errors.ErrNotFound{Resource: entity.String(), ID: id}
	}
	return err
}

// do performs one rate-limited request. header receives the response
// headers when non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}, header *http.Header) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	target := c.baseURL + path
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		target += sep + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.consumerKey, c.consumerSecret)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &statusError{Status: resp.StatusCode, Body: string(data)}
	}

	if header != nil {
		*header = resp.Header
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

// fetchPages walks page=1.. until a short page, the reported total or the
// page cap is reached. At the cap the pages read so far are returned with
// an ErrTruncated.
func fetchPages[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	var all []T
	for page := 1; page <= c.maxPages; page++ {
		q := url.Values{}
		for k, v := range query {
			q[k] = v
		}
		q.Set("page", strconv.Itoa(page))
		q.Set("per_page", strconv.Itoa(c.pageSize))

		var batch []T
		var header http.Header
		if err := c.do(ctx, http.MethodGet, path, q, nil, &batch, &header); err != nil {
			return nil, fmt.Errorf("failed to fetch %s page %d: %w", path, page, err)
		}
		all = append(all, batch...)

		totalPages, _ := strconv.Atoi(header.Get("X-WP-TotalPages"))
		if len(batch) < c.pageSize || (totalPages > 0 && page >= totalPages) {
			return all, nil
		}
	}

	c.logger.Warn("Page cap reached, remaining records skipped",
		zap.String("path", path),
		zap.Int("max_pages", c.maxPages),
		zap.Int("fetched", len(all)),
	)
	return all, &errors.ErrTruncated{
		Platform: domain.PlatformWooCommerce.String(),
		Resource: path,
		Pages:    c.maxPages,
		Fetched:  len(all),
	}
}

func fetchOne[T domain.NativeRecord](ctx context.Context, c *Client, entity domain.EntityType, path, id string) (domain.NativeRecord, error) {
	var rec T
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &rec, nil); err != nil {
		return nil, c.notFound(err, entity, id)
	}
	return rec, nil
}

// collect widens a page listing; a truncated listing keeps its records
func collect[T domain.NativeRecord](items []T, err error) ([]domain.NativeRecord, error) {
	if _, truncated := errors.AsTruncated(err); err != nil && !truncated {
		return nil, err
	}
	records := make([]domain.NativeRecord, 0, len(items))
	for _, it := range items {
		records = append(records, it)
	}
	return records, err
}
