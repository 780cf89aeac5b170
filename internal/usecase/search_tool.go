package usecase

import (
	"context"

	"stylemart-backend/internal/ai"
)

// ProductSearchTool adapts the catalog store to the assistant chains'
// search contract. Only active, visible products surface to the model.
type ProductSearchTool struct {
	Stores Stores
}

func (t *ProductSearchTool) Search(ctx context.Context, query string, limit int) ([]ai.ProductHit, error) {
	if limit <= 0 {
		limit = 5
	}
	products, err := t.Stores.SearchProducts(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	hits := make([]ai.ProductHit, 0, len(products))
	for i := range products {
		p := &products[i]
		hits = append(hits, ai.ProductHit{
			ID:    p.ID,
			Title: p.Name,
			Price: p.Price,
			Image: p.MainImageURL(),
		})
	}
	return hits, nil
}
