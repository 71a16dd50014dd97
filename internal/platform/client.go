package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"koi-checkout/internal/checkout"
	"koi-checkout/internal/logger"

	"go.uber.org/zap"
)

const (
	profilePath  = "/User/profile/"
	orderPath    = "/Order/create"
	deliveryPath = "/koi/Delivery"
)

// Client talks to the koi platform REST API. It attaches the caller's bearer
// credential to every request; it holds no credential of its own.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// GetProfile fetches the authenticated customer's address and phone.
func (c *Client) GetProfile(ctx context.Context, token string) (*checkout.UserProfile, error) {
	body, err := c.do(ctx, http.MethodGet, profilePath, token, nil)
	if err != nil {
		return nil, err
	}

	var profile checkout.UserProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("decode profile response: %w", err)
	}
	return &profile, nil
}

// CreateOrder posts the order-create payload and returns the new order ID
// and the payment provider redirect URL.
func (c *Client) CreateOrder(ctx context.Context, token string, req checkout.OrderRequest) (*checkout.OrderResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.Int("payment_method", req.PaymentMethod),
		zap.Int("promotion_id", req.PromotionID),
	)

	body, err := c.do(ctx, http.MethodPost, orderPath, token, req)
	if err != nil {
		log.Error("order create request failed", zap.Error(err))
		return nil, err
	}

	var result checkout.OrderResult
	if err := json.Unmarshal(body, &result); err != nil {
		log.Error("failed decoding order response", zap.Error(err))
		return nil, fmt.Errorf("decode order response: %w", err)
	}

	log.Info("order created upstream",
		zap.Int64("order_id", result.OrderID),
		zap.String("payment_url", result.PaymentURL),
	)
	return &result, nil
}

// CreateDelivery registers a delivery window for an order. The response body
// carries nothing this service needs.
func (c *Client) CreateDelivery(ctx context.Context, token string, req checkout.DeliveryRequest) error {
	_, err := c.do(ctx, http.MethodPost, deliveryPath, token, req)
	return err
}

func (c *Client) do(ctx context.Context, method, path, token string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s request: %w", path, err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("platform request %s: %w", path, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read platform response: %w", err)
	}

	// No 4xx/5xx distinction: any non-success status is one error path.
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("platform error %s: status %d: %s", path, resp.StatusCode, string(bodyBytes))
	}

	return bodyBytes, nil
}
