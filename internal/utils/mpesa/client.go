// Package mpesa is a minimal client for the Safaricom Daraja API, covering
// the OAuth token fetch and Lipa Na M-Pesa STK push used for rent collection.
package mpesa

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	productionBaseURL = "https://api.safaricom.co.ke"
	sandboxBaseURL    = "https://sandbox.safaricom.co.ke"

	timestampLayout = "20060102150405"
)

// APIError is returned when Daraja responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mpesa: status %d: %s", e.StatusCode, e.Body)
}

// Client manages communication with the Daraja API.
type Client struct {
	BaseURL        *url.URL
	ConsumerKey    string
	ConsumerSecret string
	ShortCode      string
	Passkey        string
	CallbackURL    string
	HTTPClient     *http.Client

	now func() time.Time
}

// NewClient initializes a Daraja client. Sandbox mode points at Safaricom's
// test environment.
func NewClient(consumerKey, consumerSecret, shortCode, passkey, callbackURL string, sandbox bool) (*Client, error) {
	base := productionBaseURL
	if sandbox {
		base = sandboxBaseURL
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid baseURL: %w", err)
	}

	return &Client{
		BaseURL:        parsed,
		ConsumerKey:    consumerKey,
		ConsumerSecret: consumerSecret,
		ShortCode:      shortCode,
		Passkey:        passkey,
		CallbackURL:    callbackURL,
		HTTPClient:     &http.Client{Timeout: 30 * time.Second},
		now:            time.Now,
	}, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

// GenerateToken exchanges the consumer key/secret for a short-lived bearer
// token. Daraja tokens last an hour; we fetch a fresh one per charge rather
// than caching, matching the low call volume.
func (c *Client) GenerateToken(ctx context.Context) (string, error) {
	endpoint := *c.BaseURL
	endpoint.Path = "/oauth/v1/generate"
	endpoint.RawQuery = "grant_type=client_credentials"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return "", err
	}
	basic := base64.StdEncoding.EncodeToString([]byte(c.ConsumerKey + ":" + c.ConsumerSecret))
	req.Header.Set("Authorization", "Basic "+basic)

	var out tokenResponse
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

// STKPush prompts the payer's phone for the amount. The returned
// CheckoutRequestID is the correlation key for the asynchronous callback.
func (c *Client) STKPush(ctx context.Context, phoneNumber string, amount float64, accountReference, description string) (*STKPushResponse, error) {
	token, err := c.GenerateToken(ctx)
	if err != nil {
		return nil, err
	}

	timestamp := c.now().Format(timestampLayout)
	password := base64.StdEncoding.EncodeToString([]byte(c.ShortCode + c.Passkey + timestamp))

	body := stkPushRequest{
		BusinessShortCode: c.ShortCode,
		Password:          password,
		Timestamp:         timestamp,
		TransactionType:   "CustomerPayBillOnline",
		Amount:            int64(amount),
		PartyA:            phoneNumber,
		PartyB:            c.ShortCode,
		PhoneNumber:       phoneNumber,
		CallBackURL:       c.CallbackURL,
		AccountReference:  accountReference,
		TransactionDesc:   description,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	endpoint := *c.BaseURL
	endpoint.Path = "/mpesa/stkpush/v1/processrequest"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	var out STKPushResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(data)}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}
