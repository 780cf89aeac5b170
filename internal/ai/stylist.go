package ai

import (
	"context"
	"strings"
)

const stylistSystemPrompt = `You are an AI fashion stylist for an online clothing store.
- Speak in a friendly, concise, and helpful tone.
- Ask clarifying questions if needed (occasion, weather, style).
- Use the search_products tool when the user needs concrete product suggestions.
- Always respond with suggestions that exist in the catalog when using product search results.`

// Phrases that signal the user wants concrete product suggestions rather
// than general advice.
var stylistIntentKeywords = []string{"recommend", "suggest", "idea", "outfit", "dress", "look"}

type StylistChain struct {
	LLM         ChatModel
	Search      ProductSearcher
	SearchLimit int
}

// WantsRecommendations reports whether the message should trigger a catalog
// lookup.
func (c *StylistChain) WantsRecommendations(userMessage string) bool {
	lowered := strings.ToLower(userMessage)
	for _, kw := range stylistIntentKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// Recommend runs the catalog search for the user's message. A failure is
// returned to the caller rather than swallowed: the caller decides whether
// "search backend down" should degrade to "no recommendations".
func (c *StylistChain) Recommend(ctx context.Context, userMessage string) ([]ProductHit, error) {
	if c.Search == nil || !c.WantsRecommendations(userMessage) {
		return nil, nil
	}
	limit := c.SearchLimit
	if limit <= 0 {
		limit = 5
	}
	return c.Search.Search(ctx, userMessage, limit)
}

// Run replays the transcript (which already ends with the latest user
// message), injects optional product context and recommendations, and asks
// the model for a reply.
func (c *StylistChain) Run(ctx context.Context, history []Message, productContext string, recommendations []ProductHit) (string, error) {
	messages := make([]Message, 0, len(history)+3)
	messages = append(messages, Message{Role: RoleSystem, Content: stylistSystemPrompt})
	messages = append(messages, history...)
	if productContext != "" {
		messages = append(messages, Message{
			Role:    RoleUser,
			Content: "Product context shared by user: " + productContext,
		})
	}
	if len(recommendations) > 0 {
		messages = append(messages, Message{
			Role:    RoleUser,
			Content: "Product recommendations considered: " + formatHits(recommendations),
		})
	}
	return c.LLM.Invoke(ctx, messages)
}
