package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/jafarshop/storemigrate/internal/config"
	"github.com/jafarshop/storemigrate/internal/connector"
	"github.com/jafarshop/storemigrate/internal/domain"
	"github.com/jafarshop/storemigrate/pkg/errors"
)

const (
	openDraftOrders  = "status:open"
	defaultBlogTitle = "News"
	defaultAuthor    = "Staff"
)

type Client struct {
	endpoint    string
	accessToken string
	locationID  string
	pageSize    int
	maxPages    int
	httpClient  *http.Client
	limiter     *rate.Limiter
	logger      *zap.Logger

	blogMu sync.Mutex
	blogs  map[string]string
	now    func() time.Time
}

var _ connector.Connector = (*Client)(nil)

// NewClient creates a new Shopify GraphQL client. A shop domain given with
// an http:// scheme is used as is, which points the client at a local stub.
func NewClient(cfg config.ShopifyConfig, fetch config.FetchConfig, logger *zap.Logger) *Client {
	base := strings.TrimSuffix(cfg.ShopDomain, "/")
	if !strings.HasPrefix(base, "http://") {
		base = "https://" + strings.TrimPrefix(base, "https://")
	}

	return &Client{
		endpoint:    fmt.Sprintf("%s/admin/api/%s/graphql.json", base, cfg.APIVersion),
		accessToken: cfg.AccessToken,
		locationID:  GID("Location", cfg.LocationID),
		pageSize:    fetch.PageSize,
		maxPages:    fetch.MaxPages,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(fetch.RateLimitPerSecond), 1),
		logger:  logger,
		now:     time.Now,
	}
}

// Platform returns the Shopify platform code
func (c *Client) Platform() domain.Platform {
	return domain.PlatformShopify
}

// GraphQLRequest represents a GraphQL request
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// GraphQLResponse represents a GraphQL response
type GraphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

// GraphQLError represents a GraphQL error
type GraphQLError struct {
	Message string        `json:"message"`
	Path    []interface{} `json:"path,omitempty"`
}

// UserError is a validation error returned by a mutation
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// Execute executes a GraphQL query/mutation
func (c *Client) Execute(ctx context.Context, query string, variables map[string]interface{}) (*GraphQLResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqBody := GraphQLRequest{
		Query:     query,
		Variables: variables,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, &errors.ErrUnauthorized{Message: fmt.Sprintf("shopify API rejected the access token: status %d", resp.StatusCode)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("shopify API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var graphQLResp GraphQLResponse
	if err := json.Unmarshal(body, &graphQLResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(graphQLResp.Errors) > 0 {
		return nil, fmt.Errorf("graphQL errors: %v", graphQLResp.Errors)
	}

	return &graphQLResp, nil
}

// FetchAll pages through every record of entity. Orders include open draft
// orders, which is where migrated orders land.
func (c *Client) FetchAll(ctx context.Context, entity domain.EntityType) ([]domain.NativeRecord, error) {
	switch entity {
	case domain.EntityProduct:
		return fetchAll(ctx, c, ProductsQuery, "products", nil, productNode.flatten)
	case domain.EntityCustomer:
		return fetchAll(ctx, c, CustomersQuery, "customers", nil, customerNode.flatten)
	case domain.EntityOrder:
		orders, truncated := fetchAll(ctx, c, OrdersQuery, "orders", nil, orderNode.flatten)
		if _, ok := errors.AsTruncated(truncated); truncated != nil && !ok {
			return nil, truncated
		}
		drafts, err := fetchAll(ctx, c, DraftOrdersQuery, "draftOrders",
			map[string]interface{}{"query": openDraftOrders}, draftOrderNode.flatten)
		if _, ok := errors.AsTruncated(err); err != nil && !ok {
			return nil, err
		}
		if truncated == nil {
			truncated = err
		}
		return append(orders, drafts...), truncated
	case domain.EntityCollection:
		return fetchAll(ctx, c, CollectionsQuery, "collections", nil, collectionNode.flatten)
	case domain.EntityCoupon:
		nodes, err := fetchConnection[discountNode](ctx, c, DiscountsQuery, "codeDiscountNodes", nil)
		if _, truncated := errors.AsTruncated(err); err != nil && !truncated {
			return nil, err
		}
		records := make([]domain.NativeRecord, 0, len(nodes))
		for _, n := range nodes {
			if d, ok := n.flatten(); ok {
				records = append(records, d)
			}
		}
		return records, err
	case domain.EntityPage:
		return fetchAll(ctx, c, PagesQuery, "pages", nil, func(p Page) Page { return p })
	case domain.EntityBlogPost:
		return fetchAll(ctx, c, ArticlesQuery, "articles", nil, articleNode.flatten)
	default:
		return nil, c.unsupported(entity)
	}
}

// Fetch reads one record by GID. Order ids may name an Order or a DraftOrder.
func (c *Client) Fetch(ctx context.Context, entity domain.EntityType, id string) (domain.NativeRecord, error) {
	switch entity {
	case domain.EntityProduct:
		return fetchNode(ctx, c, entity, GID("Product", id), "ProductFields", productFields, productNode.flatten)
	case domain.EntityCustomer:
		return fetchNode(ctx, c, entity, GID("Customer", id), "CustomerFields", customerFields, customerNode.flatten)
	case domain.EntityOrder:
		if IsGID(id, "DraftOrder") {
			return fetchNode(ctx, c, entity, id, "DraftOrderFields", draftOrderFields, draftOrderNode.flatten)
		}
		return fetchNode(ctx, c, entity, GID("Order", id), "OrderFields", orderFields, orderNode.flatten)
	case domain.EntityCollection:
		return fetchNode(ctx, c, entity, GID("Collection", id), "CollectionFields", collectionFields, collectionNode.flatten)
	case domain.EntityCoupon:
		gid := GID("DiscountCodeNode", id)
		rec, err := fetchNode(ctx, c, entity, gid, "DiscountFields", discountFields, func(n discountNode) DiscountCode {
			d, _ := n.flatten()
			return d
		})
		if err != nil {
			return nil, err
		}
		if rec.(DiscountCode).ID == "" {
			return nil, &errors.ErrNotFound{Resource: entity.String(), ID: id}
		}
		return rec, nil
	case domain.EntityPage:
		return fetchNode(ctx, c, entity, GID("Page", id), "PageFields", pageFields, func(p Page) Page { return p })
	case domain.EntityBlogPost:
		return fetchNode(ctx, c, entity, GID("Article", id), "ArticleFields", articleFields, articleNode.flatten)
	default:
		return nil, c.unsupported(entity)
	}
}

// Create runs the create mutation for payload and returns the new GID
func (c *Client) Create(ctx context.Context, entity domain.EntityType, payload domain.NativeRecord) (string, error) {
	switch p := payload.(type) {
	case Product:
		if c.locationID == "" {
			c.logger.Warn("No location configured, product quantities are not set",
				zap.String("product", p.Title),
			)
		}
		return c.mutate(ctx, ProductSetMutation, map[string]interface{}{"input": productSetInput(p, c.locationID)},
			"productSet", "product")
	case Customer:
		return c.mutate(ctx, CustomerCreateMutation, map[string]interface{}{"input": customerInput(p)},
			"customerCreate", "customer")
	case DraftOrder:
		return c.mutate(ctx, DraftOrderCreateMutation, map[string]interface{}{"input": draftOrderInput(p)},
			"draftOrderCreate", "draftOrder")
	case Collection:
		return c.mutate(ctx, CollectionCreateMutation, map[string]interface{}{"input": collectionInput(p)},
			"collectionCreate", "collection")
	case DiscountCode:
		if usesFreeShipping(p) {
			return c.mutate(ctx, DiscountCodeFreeShippingCreateMutation,
				map[string]interface{}{"freeShippingCodeDiscount": discountFreeShippingInput(p, c.now())},
				"discountCodeFreeShippingCreate", "codeDiscountNode")
		}
		return c.mutate(ctx, DiscountCodeBasicCreateMutation,
			map[string]interface{}{"basicCodeDiscount": discountBasicInput(p, c.now())},
			"discountCodeBasicCreate", "codeDiscountNode")
	case Page:
		return c.mutate(ctx, PageCreateMutation, map[string]interface{}{"page": pageCreateInput(p)},
			"pageCreate", "page")
	case Article:
		blogID, err := c.blogID(ctx, p)
		if err != nil {
			return "", err
		}
		return c.mutate(ctx, ArticleCreateMutation, map[string]interface{}{"article": articleCreateInput(p, blogID)},
			"articleCreate", "article")
	default:
		return "", c.unsupported(entity)
	}
}

// Update supports inventory only. id is the variant GID; the patch may
// carry the inventory item GID to skip the lookup.
func (c *Client) Update(ctx context.Context, entity domain.EntityType, id string, patch domain.Patch) error {
	if entity != domain.EntityInventory {
		return c.unsupported(entity)
	}
	if c.locationID == "" {
		return fmt.Errorf("shopify: SHOPIFY_LOCATION_ID is required to update inventory")
	}

	qty, ok := patch[connector.PatchQuantity].(int)
	if !ok {
		return fmt.Errorf("shopify: inventory patch needs an integer %q", connector.PatchQuantity)
	}

	itemID, _ := patch[connector.PatchInventoryItemID].(string)
	if itemID == "" {
		var err error
		if itemID, err = c.inventoryItemID(ctx, GID("ProductVariant", id)); err != nil {
			return err
		}
	}

	input := InventorySetOnHandQuantitiesInput{
		Reason: inventoryReason,
		SetQuantities: []InventorySetQuantityInput{{
			InventoryItemID: itemID,
			LocationID:      c.locationID,
			Quantity:        qty,
		}},
	}
	_, err := c.mutate(ctx, InventorySetOnHandMutation, map[string]interface{}{"input": input},
		"inventorySetOnHandQuantities", "")
	return err
}

func (c *Client) inventoryItemID(ctx context.Context, variantID string) (string, error) {
	resp, err := c.Execute(ctx, VariantInventoryItemQuery, map[string]interface{}{"id": variantID})
	if err != nil {
		return "", err
	}

	var data struct {
		ProductVariant *struct {
			InventoryItem *idRef `json:"inventoryItem"`
		} `json:"productVariant"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return "", fmt.Errorf("failed to parse variant: %w", err)
	}
	if data.ProductVariant == nil || data.ProductVariant.InventoryItem == nil {
		return "", &errors.ErrNotFound{Resource: "variant", ID: variantID}
	}
	return data.ProductVariant.InventoryItem.ID, nil
}

// blogID finds the blog named by the article, creating it when missing.
// Blog ids are cached for the life of the client.
func (c *Client) blogID(ctx context.Context, a Article) (string, error) {
	if a.BlogID != "" && IsGID(a.BlogID, "Blog") {
		return a.BlogID, nil
	}
	title := firstNonEmpty(strings.TrimSpace(a.BlogTitle), defaultBlogTitle)
	key := strings.ToLower(title)

	c.blogMu.Lock()
	defer c.blogMu.Unlock()

	if c.blogs == nil {
		resp, err := c.Execute(ctx, BlogsQuery, nil)
		if err != nil {
			return "", fmt.Errorf("failed to list blogs: %w", err)
		}
		var data struct {
			Blogs connection[struct {
				ID    string `json:"id"`
				Title string `json:"title"`
			}] `json:"blogs"`
		}
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			return "", fmt.Errorf("failed to parse blogs: %w", err)
		}
		c.blogs = make(map[string]string, len(data.Blogs.Nodes))
		for _, b := range data.Blogs.Nodes {
			c.blogs[strings.ToLower(b.Title)] = b.ID
		}
	}

	if id, ok := c.blogs[key]; ok {
		return id, nil
	}

	id, err := c.mutate(ctx, BlogCreateMutation, map[string]interface{}{"blog": map[string]string{"title": title}},
		"blogCreate", "blog")
	if err != nil {
		return "", err
	}
	c.logger.Info("Created blog", zap.String("title", title), zap.String("id", id))
	c.blogs[key] = id
	return id, nil
}

// mutate runs a mutation, fails on userErrors and returns the id of the
// object under field. field may be empty for mutations that return none.
func (c *Client) mutate(ctx context.Context, mutation string, vars map[string]interface{}, root, field string) (string, error) {
	resp, err := c.Execute(ctx, mutation, vars)
	if err != nil {
		return "", fmt.Errorf("%s failed: %w", root, err)
	}

	var data map[string]map[string]json.RawMessage
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return "", fmt.Errorf("failed to parse %s response: %w", root, err)
	}
	payload, ok := data[root]
	if !ok {
		return "", fmt.Errorf("%s: empty response", root)
	}

	var userErrors []UserError
	if raw, ok := payload["userErrors"]; ok {
		if err := json.Unmarshal(raw, &userErrors); err != nil {
			return "", fmt.Errorf("failed to parse %s user errors: %w", root, err)
		}
	}
	if len(userErrors) > 0 {
		msgs := make([]string, len(userErrors))
		for i, ue := range userErrors {
			msgs[i] = ue.Message
			if len(ue.Field) > 0 {
				msgs[i] = strings.Join(ue.Field, ".") + ": " + ue.Message
			}
		}
		return "", fmt.Errorf("%s user errors: %s", root, strings.Join(msgs, "; "))
	}

	if field == "" {
		return "", nil
	}
	var created *idRef
	if raw, ok := payload[field]; ok {
		if err := json.Unmarshal(raw, &created); err != nil {
			return "", fmt.Errorf("failed to parse %s: %w", field, err)
		}
	}
	if created == nil || created.ID == "" {
		return "", fmt.Errorf("%s returned no %s", root, field)
	}
	return created.ID, nil
}

func (c *Client) unsupported(entity domain.EntityType) error {
	return &errors.ErrCapabilityMismatch{Entity: entity.String(), Platform: domain.PlatformShopify.String()}
}

// fetchConnection follows endCursor until hasNextPage is false or the page
// cap is reached. At the cap the nodes read so far are returned with an
// ErrTruncated.
func fetchConnection[N any](ctx context.Context, c *Client, query, root string, extra map[string]interface{}) ([]N, error) {
	var all []N
	var after interface{}
	for page := 1; page <= c.maxPages; page++ {
		vars := map[string]interface{}{"first": c.pageSize, "after": after}
		for k, v := range extra {
			vars[k] = v
		}

		resp, err := c.Execute(ctx, query, vars)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s page %d: %w", root, page, err)
		}

		var data map[string]connection[N]
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", root, err)
		}
		conn := data[root]
		all = append(all, conn.Nodes...)

		if !conn.PageInfo.HasNextPage || conn.PageInfo.EndCursor == "" {
			return all, nil
		}
		after = conn.PageInfo.EndCursor
	}

	c.logger.Warn("Page cap reached, results are truncated",
		zap.String("connection", root),
		zap.Int("max_pages", c.maxPages),
		zap.Int("fetched", len(all)),
	)
	return all, &errors.ErrTruncated{
		Platform: domain.PlatformShopify.String(),
		Resource: root,
		Pages:    c.maxPages,
		Fetched:  len(all),
	}
}

func fetchAll[N any, T domain.NativeRecord](ctx context.Context, c *Client, query, root string, extra map[string]interface{}, flatten func(N) T) ([]domain.NativeRecord, error) {
	nodes, err := fetchConnection[N](ctx, c, query, root, extra)
	if _, truncated := errors.AsTruncated(err); err != nil && !truncated {
		return nil, err
	}
	records := make([]domain.NativeRecord, 0, len(nodes))
	for _, n := range nodes {
		records = append(records, flatten(n))
	}
	return records, err
}

func fetchNode[N any, T domain.NativeRecord](ctx context.Context, c *Client, entity domain.EntityType, id, fragmentName, fragment string, flatten func(N) T) (domain.NativeRecord, error) {
	resp, err := c.Execute(ctx, nodeQuery(fragmentName, fragment), map[string]interface{}{"id": id})
	if err != nil {
		return nil, err
	}

	var data struct {
		Node *N `json:"node"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", entity, err)
	}
	if data.Node == nil {
		return nil, &errors.ErrNotFound{Resource: entity.String(), ID: id}
	}
	return flatten(*data.Node), nil
}
