package usecase

import (
	"context"
	"sort"
	"strings"

	"stylemart-backend/internal/domain"
)

const (
	keywordFetchLimit     = 200
	productNameFetchLimit = 500
	keywordBaseScore      = 3
	productNameBaseScore  = 1
	prefixBonus           = 3
)

// SearchService ranks suggestion candidates with a small bigram heuristic
// over stored keywords and product names. Bounded inputs, no index.
type SearchService struct {
	Stores Stores
}

// ngrams slides a window of size n over the normalized text. Text shorter
// than the window yields itself as the only gram.
func ngrams(text string, n int) []string {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return nil
	}
	if len(normalized) <= n {
		return []string{normalized}
	}
	grams := make([]string, 0, len(normalized)-n+1)
	for i := 0; i+n <= len(normalized); i++ {
		grams = append(grams, normalized[i:i+n])
	}
	return grams
}

func (s *SearchService) Suggest(ctx context.Context, query string, limit int) ([]domain.Suggestion, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}
	qLower := strings.ToLower(q)
	grams := ngrams(qLower, 2)

	keywords, err := s.Stores.RecentKeywords(ctx, keywordFetchLimit)
	if err != nil {
		return nil, err
	}
	names, err := s.Stores.ProductNames(ctx, productNameFetchLimit)
	if err != nil {
		return nil, err
	}

	scores := map[string]int{}
	add := func(text string, base int) {
		key := strings.ToLower(text)
		if key == "" {
			return
		}
		score := scores[key] + base
		if strings.HasPrefix(key, qLower) {
			score += prefixBonus
		}
		for _, g := range grams {
			if strings.Contains(key, g) {
				score++
			}
		}
		scores[key] = score
	}
	for _, kw := range keywords {
		add(kw, keywordBaseScore)
	}
	for _, name := range names {
		add(name, productNameBaseScore)
	}

	keys := make([]string, 0, len(scores))
	for k := range scores {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if scores[keys[i]] != scores[keys[j]] {
			return scores[keys[i]] > scores[keys[j]]
		}
		return keys[i] < keys[j]
	})

	if len(keys) > limit {
		keys = keys[:limit]
	}
	out := make([]domain.Suggestion, 0, len(keys))
	for _, k := range keys {
		out = append(out, domain.Suggestion{
			Keyword:     k,
			Destination: "/products?query=" + k,
		})
	}
	return out, nil
}

func (s *SearchService) History(ctx context.Context, userID *int64) ([]domain.SearchKeyword, error) {
	return s.Stores.SearchHistory(ctx, userID)
}

func (s *SearchService) AddHistory(ctx context.Context, userID *int64, keyword, destination string) (*domain.SearchKeyword, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrInvalidState("keyword must not be empty")
	}
	if destination == "" {
		destination = "/products?query=" + keyword
	}
	row := &domain.SearchKeyword{
		UserID:      userID,
		Keyword:     keyword,
		Destination: destination,
	}
	if err := s.Stores.AddSearchHistory(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *SearchService) DeleteHistory(ctx context.Context, userID *int64, itemID int64) error {
	return s.Stores.DeleteSearchHistory(ctx, itemID, userID)
}
