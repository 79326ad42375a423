package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const DefaultBaseURL = "https://api.razorpay.com/v1"

// Gateway is the subset of the Razorpay API the storefront uses.
type Gateway interface {
	KeyID() string
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
	FetchPayment(ctx context.Context, paymentID string) (*Payment, error)
}

type OrderRequest struct {
	// Amount is in the smallest currency unit (paise).
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type Card struct {
	Last4   string `json:"last4"`
	Network string `json:"network"`
	Type    string `json:"type"`
}

type Payment struct {
	ID       string `json:"id"`
	OrderID  string `json:"order_id"`
	Method   string `json:"method"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Bank     string `json:"bank"`
	Wallet   string `json:"wallet"`
	VPA      string `json:"vpa"`
	Card     *Card  `json:"card"`
}

// APIError is a non-2xx answer from Razorpay.
type APIError struct {
	StatusCode  int
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("razorpay: %d %s: %s", e.StatusCode, e.Code, e.Description)
}

type Client struct {
	keyID     string
	keySecret string
	baseURL   string
	http      *retryablehttp.Client
}

func NewClient(keyID, keySecret, baseURL string, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	hc := retryablehttp.NewClient()
	hc.RetryMax = 3
	hc.RetryWaitMin = 200 * time.Millisecond
	hc.RetryWaitMax = 2 * time.Second
	hc.HTTPClient.Timeout = 15 * time.Second
	hc.Logger = zapLeveledLogger{log.Named("razorpay")}
	hc.CheckRetry = checkRetry

	return &Client{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      hc,
	}
}

type noRetryKey struct{}

// withoutRetry marks a request that must reach Razorpay at most once.
func withoutRetry(ctx context.Context) context.Context {
	return context.WithValue(ctx, noRetryKey{}, true)
}

// checkRetry keeps the default policy except for requests marked by
// withoutRetry. Order creation is not idempotent: a retried POST after a
// lost response would leave a second gateway order behind.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Value(noRetryKey{}) != nil {
		return false, ctx.Err()
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

func (c *Client) KeyID() string {
	return c.keyID
}

func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	var order Order
	if err := c.do(withoutRetry(ctx), http.MethodPost, "/orders", req, &order); err != nil {
		return nil, errors.Wrap(err, "create razorpay order")
	}
	return &order, nil
}

func (c *Client) FetchPayment(ctx context.Context, paymentID string) (*Payment, error) {
	if paymentID == "" {
		return nil, errors.New("payment id is required")
	}
	var payment Payment
	if err := c.do(ctx, http.MethodGet, "/payments/"+url.PathEscape(paymentID), nil, &payment); err != nil {
		return nil, errors.Wrapf(err, "fetch razorpay payment %s", paymentID)
	}
	return &payment, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return err
		}
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope struct {
			Error APIError `json:"error"`
		}
		_ = json.Unmarshal(data, &envelope)
		envelope.Error.StatusCode = resp.StatusCode
		return &envelope.Error
	}
	return json.Unmarshal(data, out)
}

// zapLeveledLogger adapts zap to retryablehttp.LeveledLogger.
type zapLeveledLogger struct {
	log *zap.Logger
}

func (l zapLeveledLogger) Error(msg string, kv ...interface{}) { l.log.Sugar().Errorw(msg, kv...) }
func (l zapLeveledLogger) Info(msg string, kv ...interface{})  { l.log.Sugar().Debugw(msg, kv...) }
func (l zapLeveledLogger) Debug(msg string, kv ...interface{}) { l.log.Sugar().Debugw(msg, kv...) }
func (l zapLeveledLogger) Warn(msg string, kv ...interface{})  { l.log.Sugar().Warnw(msg, kv...) }
