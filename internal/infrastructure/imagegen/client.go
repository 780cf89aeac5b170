package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client calls an external image-generation API: prompt in, image URLs out.
// Without an API key it degrades to deterministic stub URLs so avatar flows
// remain usable in development.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 60 * time.Second},
	}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
}

type generateResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

func (c *Client) GenerateImages(ctx context.Context, prompt string, imageCount int) ([]string, error) {
	if imageCount < 1 {
		imageCount = 1
	}
	if c.APIKey == "" {
		return c.stubURLs(prompt, imageCount), nil
	}

	raw, err := json.Marshal(generateRequest{Prompt: prompt, N: imageCount})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/images/generations", bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	hc := c.HTTP
	if hc == nil {
		hc = &http.Client{Timeout: 60 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("imagegen: %s", strings.TrimSpace(string(body)))
	}
	var out generateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(out.Data))
	for _, d := range out.Data {
		urls = append(urls, d.URL)
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("imagegen: response has no images")
	}
	return urls, nil
}

func (c *Client) stubURLs(prompt string, n int) []string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(prompt))
	sum := h.Sum32()
	urls := make([]string, 0, n)
	for i := 0; i < n; i++ {
		urls = append(urls, fmt.Sprintf("%s/stubbed/%d?prompt=%d", c.BaseURL, i, sum))
	}
	return urls
}
