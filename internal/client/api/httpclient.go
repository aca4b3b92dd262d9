package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/example/uikart/internal/client/models"
)

// HTTPClient is the HTTP/JSON implementation of Client.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// New returns an HTTPClient bound to the given base URL. The underlying
// http.Client carries no timeout; pass a context with a deadline if one is
// required.
func New(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

type authResponse struct {
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
	Message string       `json:"message"`
}

type seedResponse struct {
	Message string `json:"message"`
}

type orderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type paymentVerifyRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	ComponentID       string `json:"componentId"`
}

type paymentVerifyResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user"`
	Message string       `json:"message"`
}

// do executes one round trip and returns the status code with the raw body.
// Transport failures come back wrapped with ErrUnavailable.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, body any) (int, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

// auth handles the shared login/signup response contract: success requires
// both a token and a user record; anything else is an *APIError carrying the
// body's message.
func (c *HTTPClient) auth(ctx context.Context, path string, payload any) (string, *models.User, error) {
	status, body, err := c.do(ctx, http.MethodPost, path, "", payload)
	if err != nil {
		return "", nil, err
	}

	var ar authResponse
	if err := json.Unmarshal(body, &ar); err != nil {
		return "", nil, &APIError{Status: status}
	}
	if ar.Token == "" || ar.User == nil {
		return "", nil, &APIError{Status: status, Message: ar.Message}
	}
	return ar.Token, ar.User, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	payload := map[string]string{"email": email, "password": password}
	return c.auth(ctx, "/api/auth/login", payload)
}

func (c *HTTPClient) Signup(ctx context.Context, name, email, mobile, password string) (string, *models.User, error) {
	payload := map[string]string{
		"name":     name,
		"email":    email,
		"mobile":   mobile,
		"password": password,
	}
	return c.auth(ctx, "/api/auth/signup", payload)
}

func (c *HTTPClient) Verify(ctx context.Context, token string) (*models.User, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/api/auth/me", token, nil)
	if err != nil {
		return nil, err
	}

	var ar authResponse
	if err := json.Unmarshal(body, &ar); err != nil {
		return nil, &APIError{Status: status}
	}
	if ar.User == nil {
		return nil, &APIError{Status: status, Message: ar.Message}
	}
	return ar.User, nil
}

func (c *HTTPClient) ListComponents(ctx context.Context, token string) ([]models.Component, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/api/components", token, nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, &APIError{Status: status, Message: bodyMessage(body)}
	}

	var components []models.Component
	if err := json.Unmarshal(body, &components); err != nil {
		return nil, fmt.Errorf("unmarshal components: %w", err)
	}
	return components, nil
}

func (c *HTTPClient) Seed(ctx context.Context, token string) (string, error) {
	status, body, err := c.do(ctx, http.MethodPost, "/api/seed", token, nil)
	if err != nil {
		return "", err
	}
	if status < 200 || status >= 300 {
		return "", &APIError{Status: status, Message: bodyMessage(body)}
	}

	var sr seedResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return "", fmt.Errorf("unmarshal seed response: %w", err)
	}
	return sr.Message, nil
}

func (c *HTTPClient) CreateOrder(ctx context.Context, token string, amountMinor int64, currency string) (*models.Order, error) {
	payload := orderRequest{Amount: amountMinor, Currency: currency}
	status, body, err := c.do(ctx, http.MethodPost, "/api/payment/order", token, payload)
	if err != nil {
		return nil, err
	}

	var order models.Order
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("%w: status %d", ErrOrderNotCreated, status)
	}
	if order.ID == "" {
		msg := bodyMessage(body)
		if msg != "" {
			return nil, fmt.Errorf("%w: %s", ErrOrderNotCreated, msg)
		}
		return nil, ErrOrderNotCreated
	}
	return &order, nil
}

func (c *HTTPClient) VerifyPayment(ctx context.Context, token string, proof models.PaymentProof, componentID string) (*models.User, error) {
	payload := paymentVerifyRequest{
		RazorpayOrderID:   proof.OrderID,
		RazorpayPaymentID: proof.PaymentID,
		RazorpaySignature: proof.Signature,
		ComponentID:       componentID,
	}
	status, body, err := c.do(ctx, http.MethodPost, "/api/payment/verify", token, payload)
	if err != nil {
		return nil, err
	}

	var vr paymentVerifyResponse
	if err := json.Unmarshal(body, &vr); err != nil {
		return nil, fmt.Errorf("%w: status %d", ErrPaymentNotVerified, status)
	}
	if !vr.Success || vr.User == nil {
		if vr.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrPaymentNotVerified, vr.Message)
		}
		return nil, ErrPaymentNotVerified
	}
	return vr.User, nil
}

func bodyMessage(body []byte) string {
	var m struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &m); err != nil {
		return ""
	}
	return m.Message
}
