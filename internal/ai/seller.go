package ai

import (
	"context"
	"strings"
)

const sellerSystemPrompt = `You are an AI e-commerce coach helping clothing sellers optimize their listings.
- Help write high-converting product titles and descriptions.
- Generate SEO-friendly tags.
- Give pricing suggestions with clear reasoning.
- Return structured data when you generate titles, descriptions, and tags.`

type SellerChain struct {
	LLM ChatModel
}

// Chat replays the seller transcript with optional product context and asks
// the model for coaching output.
func (c *SellerChain) Chat(ctx context.Context, history []Message, productContext string) (string, error) {
	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: RoleSystem, Content: sellerSystemPrompt})
	if productContext != "" {
		messages = append(messages, Message{
			Role:    RoleUser,
			Content: "Product context shared by seller: " + productContext,
		})
	}
	messages = append(messages, history...)
	return c.LLM.Invoke(ctx, messages)
}

// ListingFields is the minimal product info a seller supplies for copy
// generation.
type ListingFields struct {
	Name                string
	Category            string
	Gender              string
	Price               string
	StyleKeywords       []string
	TargetAudience      string
	ExistingDescription string
}

type GeneratedListing struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// GenerateListing builds title, description and tags from minimal fields.
// Deterministic template output; no model round-trip.
func GenerateListing(f ListingFields) GeneratedListing {
	name := f.Name
	if name == "" {
		name = f.Category
	}
	if name == "" {
		name = "Product"
	}
	audience := f.TargetAudience
	if audience == "" {
		audience = "customers"
	}

	var titleParts []string
	for _, part := range []string{f.Gender, f.Category, name} {
		if part != "" {
			titleParts = append(titleParts, part)
		}
	}
	title := strings.Join(titleParts, " ")
	if title == "" {
		title = "AI-Optimized Product Title"
	}

	sections := []string{"Introducing the " + name + ", crafted for " + audience + "."}
	if len(f.StyleKeywords) > 0 {
		sections = append(sections, "Style highlights: "+strings.Join(f.StyleKeywords, ", ")+".")
	}
	if f.Price != "" {
		sections = append(sections, "Suggested price point: "+f.Price+".")
	}
	if f.ExistingDescription != "" {
		sections = append(sections, "We refined your original description for clarity and conversions.")
	}

	tags := append([]string{}, f.StyleKeywords...)
	if f.Category != "" {
		tags = append(tags, strings.ToLower(f.Category))
	}
	if f.Gender != "" {
		tags = append(tags, strings.ToLower(f.Gender))
	}
	if len(tags) == 0 {
		tags = []string{"fashion", "ai-generated"}
	}

	return GeneratedListing{
		Title:       title,
		Description: strings.Join(sections, " "),
		Tags:        dedupe(tags),
	}
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
