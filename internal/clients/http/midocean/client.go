// Package midocean is a client for the Midocean order gateway's create-order
// call.
package midocean

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

const createOrderPath = "/gateway/order/2.1/create"

// APIError carries a non-success gateway response verbatim so the reviewer
// sees exactly what the vendor rejected.
type APIError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("midocean gateway returned status %d: %s", e.StatusCode, e.Body)
}

// Client posts orders to the Midocean gateway.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a gateway client with sane defaults.
func NewClient(baseURL, apiKey string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("midocean base URL is required")
	}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("midocean API key is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{baseURL: baseURL, apiKey: apiKey, httpClient: httpClient}, nil
}

// OrderPayload is the gateway's order intake shape. All numeric fields are
// strings on the wire.
type OrderPayload struct {
	OrderHeader OrderHeader `json:"order_header"`
	OrderLines  []OrderLine `json:"order_lines"`
}

// OrderHeader carries order-level intake fields.
type OrderHeader struct {
	PONumber        string          `json:"po_number"`
	ContactEmail    string          `json:"contact_email"`
	Currency        string          `json:"currency"`
	Timestamp       string          `json:"timestamp"`
	OrderType       string          `json:"order_type"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
}

// ShippingAddress is the gateway's flattened address shape.
type ShippingAddress struct {
	ContactName string `json:"contact_name"`
	CompanyName string `json:"company_name"`
	Street1     string `json:"street1"`
	PostalCode  string `json:"postal_code"`
	City        string `json:"city"`
	Region      string `json:"region"`
	Country     string `json:"country"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

// OrderLine is one intake line. Print jobs carry printing positions and print
// items; standard lines carry the vendor SKU instead.
type OrderLine struct {
	OrderLineID       string             `json:"order_line_id"`
	SKU               string             `json:"sku,omitempty"`
	MasterCode        string             `json:"master_code,omitempty"`
	Quantity          string             `json:"quantity"`
	ExpectedPrice     string             `json:"expected_price"`
	PrintingPositions []PrintingPosition `json:"printing_positions,omitempty"`
	PrintItems        []PrintItem        `json:"print_items,omitempty"`
}

// PrintingPosition describes where and how a print job is printed.
type PrintingPosition struct {
	ID                  string `json:"id"`
	PrintSizeHeight     string `json:"print_size_height"`
	PrintSizeWidth      string `json:"print_size_width"`
	PrintingTechniqueID string `json:"printing_technique_id"`
	NumberOfPrintColors string `json:"number_of_print_colors"`
	PrintArtworkURL     string `json:"print_artwork_url"`
	PrintMockupURL      string `json:"print_mockup_url"`
	PrintInstruction    string `json:"print_instruction"`
}

// PrintItem pairs an item color with a quantity for a print job.
type PrintItem struct {
	ItemColorNumber string `json:"item_color_number"`
	Quantity        string `json:"quantity"`
}

type createOrderResponse struct {
	OrderNumber json.Number `json:"order_number"`
	Number      json.Number `json:"number"`
}

// CreateOrder submits the payload and returns the gateway-assigned order
// reference. Non-success responses surface as *APIError with the body intact.
func (c *Client) CreateOrder(ctx context.Context, payload OrderPayload) (string, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode midocean order: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+createOrderPath, bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("build midocean request: %w", err)
	}
	req.Header.Set("x-Gateway-APIKey", c.apiKey)
	req.Header.Set("Accept", "text/json")
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call midocean gateway: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read midocean response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	var decoded createOrderResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("decode midocean response: %w", err)
	}
	if ref := decoded.OrderNumber.String(); ref != "" {
		return ref, nil
	}
	return decoded.Number.String(), nil
}
