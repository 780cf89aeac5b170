package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

type scriptedModel struct {
	reply string
	err   error
	seen  []Message
}

func (m *scriptedModel) Invoke(_ context.Context, messages []Message) (string, error) {
	m.seen = messages
	return m.reply, m.err
}

type scriptedSearcher struct {
	hits []ProductHit
	err  error
}

func (s *scriptedSearcher) Search(_ context.Context, _ string, _ int) ([]ProductHit, error) {
	return s.hits, s.err
}

func TestStylistWantsRecommendations(t *testing.T) {
	chain := &StylistChain{}
	for _, msg := range []string{
		"Can you recommend something?",
		"I need an OUTFIT for a wedding",
		"any ideas for summer?",
	} {
		if !chain.WantsRecommendations(msg) {
			t.Errorf("WantsRecommendations(%q) = false", msg)
		}
	}
	if chain.WantsRecommendations("what is your return policy?") {
		t.Error("policy question should not trigger a catalog search")
	}
}

func TestStylistRecommendPropagatesSearchError(t *testing.T) {
	chain := &StylistChain{
		Search: &scriptedSearcher{err: errors.New("search backend down")},
	}
	if _, err := chain.Recommend(context.Background(), "recommend a dress"); err == nil {
		t.Fatal("search failure swallowed")
	}
	// Without intent there is no search, so no error either.
	if hits, err := chain.Recommend(context.Background(), "hello"); err != nil || hits != nil {
		t.Errorf("no-intent recommend = %v, %v", hits, err)
	}
}

func TestStylistRunInjectsContext(t *testing.T) {
	model := &scriptedModel{reply: "try the linen shirt"}
	chain := &StylistChain{LLM: model}

	history := []Message{{Role: RoleUser, Content: "recommend a shirt"}}
	hits := []ProductHit{{ID: 7, Title: "Linen Shirt", Price: decimal.RequireFromString("29.90")}}
	reply, err := chain.Run(context.Background(), history, "Linen Shirt (id 7)", hits)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if reply != "try the linen shirt" {
		t.Errorf("reply = %q", reply)
	}
	if model.seen[0].Role != RoleSystem {
		t.Errorf("first message role = %s, want system", model.seen[0].Role)
	}
	joined := ""
	for _, m := range model.seen {
		joined += m.Content + "\n"
	}
	if !strings.Contains(joined, "Linen Shirt (id 7, price 29.90)") {
		t.Errorf("recommendations not rendered into prompt:\n%s", joined)
	}
}

func TestGenerateListing(t *testing.T) {
	listing := GenerateListing(ListingFields{
		Name:          "Breeze Shirt",
		Category:      "Shirts",
		Gender:        "Men",
		Price:         "29.90",
		StyleKeywords: []string{"linen", "summer", "linen"},
	})
	if listing.Title != "Men Shirts Breeze Shirt" {
		t.Errorf("title = %q", listing.Title)
	}
	if !strings.Contains(listing.Description, "Breeze Shirt") ||
		!strings.Contains(listing.Description, "29.90") {
		t.Errorf("description = %q", listing.Description)
	}
	want := []string{"linen", "summer", "shirts", "men"}
	if len(listing.Tags) != len(want) {
		t.Fatalf("tags = %v, want %v", listing.Tags, want)
	}
	for i, tag := range want {
		if listing.Tags[i] != tag {
			t.Errorf("tags[%d] = %q, want %q", i, listing.Tags[i], tag)
		}
	}
}

func TestGenerateListingFallbacks(t *testing.T) {
	listing := GenerateListing(ListingFields{})
	if listing.Title != "AI-Optimized Product Title" {
		t.Errorf("fallback title = %q", listing.Title)
	}
	if len(listing.Tags) != 2 || listing.Tags[0] != "fashion" {
		t.Errorf("fallback tags = %v", listing.Tags)
	}
}

func TestAvatarBuildPrompt(t *testing.T) {
	chain := &AvatarChain{}
	prompt := chain.BuildPrompt(
		&AvatarSubject{ProductName: "Breeze Shirt", ProductCategory: "Shirts"},
		map[string]string{"body": "athletic", "age": "30s"},
		map[string]string{"mood": "casual"},
	)
	want := "Fashion avatar with preset {age: 30s, body: athletic}, wearing product 'Breeze Shirt' in category Shirts, with style settings {mood: casual}"
	if prompt != want {
		t.Errorf("prompt = %q\nwant     %q", prompt, want)
	}

	// Deterministic map rendering regardless of insertion order.
	again := chain.BuildPrompt(
		&AvatarSubject{ProductName: "Breeze Shirt", ProductCategory: "Shirts"},
		map[string]string{"age": "30s", "body": "athletic"},
		map[string]string{"mood": "casual"},
	)
	if prompt != again {
		t.Error("prompt rendering is not deterministic")
	}
}

func TestAvatarBuildPromptWithoutProduct(t *testing.T) {
	chain := &AvatarChain{}
	prompt := chain.BuildPrompt(nil, map[string]string{"body": "slim"}, nil)
	if prompt != "Fashion avatar with preset {body: slim}" {
		t.Errorf("prompt = %q", prompt)
	}
}
