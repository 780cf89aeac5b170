package paypal

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

	"github.com/shopspring/decimal"

	"stylemart-backend/internal/usecase"
)

// Client talks to the PayPal Orders v2 REST API. Every call fetches a fresh
// client-credentials token; PayPal tokens are cacheable but the call volume
// here does not warrant it.
type Client struct {
	ClientID string
	Secret   string
	BaseURL  string
	HTTP     *http.Client
}

func New(clientID, secret, baseURL string) *Client {
	return &Client{
		ClientID: clientID,
		Secret:   secret,
		BaseURL:  strings.TrimRight(baseURL, "/"),
		HTTP:     &http.Client{Timeout: 10 * time.Second},
	}
}

type tokenResp struct {
	AccessToken string `json:"access_token"`
}

func (c *Client) accessToken(ctx context.Context) (string, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.ClientID, c.Secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := c.do(req)
	if err != nil {
		return "", err
	}
	var out tokenResp
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("paypal: token response missing access_token")
	}
	return out.AccessToken, nil
}

type orderResp struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Links  []struct {
		Rel  string `json:"rel"`
		Href string `json:"href"`
	} `json:"links"`
}

func (c *Client) CreateOrder(ctx context.Context, orderID int64, total decimal.Decimal, currency string) (*usecase.GatewayOrder, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}
	payload := map[string]any{
		"intent": "CAPTURE",
		"purchase_units": []map[string]any{
			{
				"reference_id": strconv.FormatInt(orderID, 10),
				"amount": map[string]string{
					"value":         total.StringFixed(2),
					"currency_code": currency,
				},
			},
		},
	}
	body, err := c.post(ctx, "/v2/checkout/orders", payload, token)
	if err != nil {
		return nil, err
	}
	var out orderResp
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	res := &usecase.GatewayOrder{
		ProviderPaymentID: out.ID,
		Status:            out.Status,
		Raw:               body,
	}
	for _, l := range out.Links {
		res.Links = append(res.Links, usecase.GatewayLink{Rel: l.Rel, Href: l.Href})
	}
	return res, nil
}

type captureResp struct {
	Status string `json:"status"`
	Result struct {
		Status string `json:"status"`
	} `json:"result"`
}

func (c *Client) CaptureOrder(ctx context.Context, providerPaymentID string) (*usecase.GatewayCapture, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}
	body, err := c.post(ctx, "/v2/checkout/orders/"+url.PathEscape(providerPaymentID)+"/capture", nil, token)
	if err != nil {
		return nil, err
	}
	var out captureResp
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	status := out.Status
	if status == "" {
		status = out.Result.Status
	}
	return &usecase.GatewayCapture{Status: status, Raw: body}, nil
}

func (c *Client) post(ctx context.Context, endpoint string, payload any, token string) ([]byte, error) {
	var rd io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		rd = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+endpoint, rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	hc := c.HTTP
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("paypal: %s %s: %s", req.Method, req.URL.Path, strings.TrimSpace(string(body)))
	}
	return body, nil
}
