package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"stylemart-backend/internal/ai"
)

// Client calls an OpenAI-compatible chat-completions endpoint.
type Client struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	HTTP        *http.Client
}

func New(baseURL, apiKey, model string) *Client {
	return &Client{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		APIKey:      apiKey,
		Model:       model,
		Temperature: 0.3,
		HTTP:        &http.Client{Timeout: 30 * time.Second},
	}
}

type chatRequest struct {
	Model       string       `json:"model"`
	Messages    []apiMessage `json:"messages"`
	Temperature float64      `json:"temperature"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message apiMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) Invoke(ctx context.Context, messages []ai.Message) (string, error) {
	req := chatRequest{Model: c.Model, Temperature: c.Temperature}
	for _, m := range messages {
		req.Messages = append(req.Messages, apiMessage(m))
	}
	raw, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/chat/completions", bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)

	hc := c.HTTP
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := hc.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("llm: chat completion: %s", strings.TrimSpace(string(body)))
	}
	var out chatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	if out.Error != nil {
		return "", fmt.Errorf("llm: %s", out.Error.Message)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("llm: response has no choices")
	}
	return out.Choices[0].Message.Content, nil
}

// Echo is a deterministic stand-in used when no LLM endpoint is configured.
// It replies with the last user message so local flows and tests stay
// functional without a network dependency.
type Echo struct {
	Default string
}

func (e Echo) Invoke(_ context.Context, messages []ai.Message) (string, error) {
	last := e.Default
	if last == "" {
		last = "Thanks for chatting with our stylist!"
	}
	for _, m := range messages {
		if m.Content != "" {
			last = m.Content
		}
	}
	return last, nil
}
