// Package shopify is a minimal Shopify Admin REST client covering the order
// read, list, and partial-update calls this service needs.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// APIError carries a non-success Shopify response verbatim.
type APIError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("shopify API returned status %d: %s", e.StatusCode, e.Body)
}

// Client talks to a single shop's Admin REST API.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

// NewClient builds an Admin REST client for the given shop and API version.
func NewClient(shop, apiVersion, accessToken string, httpClient *http.Client) (*Client, error) {
	shop = strings.TrimSpace(shop)
	if shop == "" {
		return nil, errors.New("shopify shop domain is required")
	}
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil, errors.New("shopify access token is required")
	}
	if apiVersion = strings.TrimSpace(apiVersion); apiVersion == "" {
		apiVersion = "2024-07"
	}
	return NewClientWithBaseURL(fmt.Sprintf("https://%s/admin/api/%s", shop, apiVersion), accessToken, httpClient)
}

// NewClientWithBaseURL builds a client against an explicit Admin API base
// URL. Intended for tests and proxies.
func NewClientWithBaseURL(baseURL, accessToken string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("shopify base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: baseURL, accessToken: accessToken, httpClient: httpClient}, nil
}

// Order mirrors the Shopify order JSON, limited to the fields this service
// reads. Tags arrive as a single comma-joined string.
type Order struct {
	ID              int64            `json:"id"`
	Name            string           `json:"name"`
	OrderNumber     int64            `json:"order_number"`
	Email           string           `json:"email"`
	Currency        string           `json:"currency"`
	CreatedAt       time.Time        `json:"created_at"`
	Tags            string           `json:"tags"`
	LineItems       []LineItem       `json:"line_items"`
	ShippingAddress *ShippingAddress `json:"shipping_address"`
}

// LineItem is a Shopify order line.
type LineItem struct {
	Title      string     `json:"title"`
	SKU        string     `json:"sku"`
	Quantity   int        `json:"quantity"`
	Price      string     `json:"price"`
	Properties []Property `json:"properties"`
}

// Property is one storefront line-item property.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ShippingAddress is the Shopify shipping address block.
type ShippingAddress struct {
	Name        string `json:"name"`
	Company     string `json:"company"`
	Address1    string `json:"address1"`
	Address2    string `json:"address2"`
	Zip         string `json:"zip"`
	City        string `json:"city"`
	Province    string `json:"province"`
	CountryCode string `json:"country_code"`
	Phone       string `json:"phone"`
}

// NoteAttribute is a named annotation on the order.
type NoteAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// OrderUpdate is the partial update body for PUT /orders/{id}.json.
type OrderUpdate struct {
	ID             int64           `json:"id"`
	Tags           string          `json:"tags"`
	NoteAttributes []NoteAttribute `json:"note_attributes,omitempty"`
}

type orderEnvelope struct {
	Order *Order `json:"order"`
}

type ordersEnvelope struct {
	Orders []Order `json:"orders"`
}

// GetOrder fetches a single order by id.
func (c *Client) GetOrder(ctx context.Context, id int64) (*Order, error) {
	var envelope orderEnvelope
	url := fmt.Sprintf("%s/orders/%d.json", c.baseURL, id)
	if err := c.do(ctx, http.MethodGet, url, nil, &envelope); err != nil {
		return nil, err
	}
	if envelope.Order == nil || envelope.Order.ID == 0 {
		return nil, &APIError{StatusCode: http.StatusNotFound, Body: "order missing from response"}
	}
	return envelope.Order, nil
}

// ListOrders fetches up to limit orders of any status, most recent first.
func (c *Client) ListOrders(ctx context.Context, limit int) ([]Order, error) {
	if limit <= 0 {
		limit = 100
	}
	var envelope ordersEnvelope
	url := fmt.Sprintf("%s/orders.json?status=any&financial_status=any&fulfillment_status=any&limit=%d&order=created_at+desc", c.baseURL, limit)
	if err := c.do(ctx, http.MethodGet, url, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Orders, nil
}

// UpdateOrder PUTs a tag/annotation update for the order.
func (c *Client) UpdateOrder(ctx context.Context, update OrderUpdate) error {
	url := fmt.Sprintf("%s/orders/%d.json", c.baseURL, update.ID)
	body := map[string]OrderUpdate{"order": update}
	return c.do(ctx, http.MethodPut, url, body, nil)
}

func (c *Client) do(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode shopify request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("build shopify request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call shopify API: %w", err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read shopify response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(payload))}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode shopify response: %w", err)
	}
	return nil
}
