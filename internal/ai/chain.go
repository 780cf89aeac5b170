// Package ai holds the assistant chains: thin prompt builders around an
// externally hosted chat model and an image-generation service. The chains
// own prompt construction and tool invocation; persistence and HTTP concerns
// stay in the usecase and server layers.
package ai

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatModel is the contract with the hosted language model: text in, text
// out. Implementations must honor the context deadline.
type ChatModel interface {
	Invoke(ctx context.Context, messages []Message) (string, error)
}

// ProductHit is one catalog result shaped for the model to reason over.
type ProductHit struct {
	ID    int64           `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image,omitempty"`
}

// ProductSearcher is the single capability a chain may call into the catalog
// with. One concrete type implements it; no runtime probing of tool shapes.
type ProductSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]ProductHit, error)
}

// formatParams renders a key/value map deterministically for prompt text.
func formatParams(params map[string]string) string {
	if len(params) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(params[k])
	}
	b.WriteByte('}')
	return b.String()
}

func formatHits(hits []ProductHit) string {
	var b strings.Builder
	for i, h := range hits {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(h.Title)
		b.WriteString(" (id ")
		b.WriteString(strconv.FormatInt(h.ID, 10))
		b.WriteString(", price ")
		b.WriteString(h.Price.StringFixed(2))
		b.WriteString(")")
	}
	return b.String()
}
