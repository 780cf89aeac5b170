package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"stylemart-backend/internal/domain"
	"stylemart-backend/internal/usecase"
)

const productColumns = `id, seller_id, name, description, price, category, gender,
	size_options, color_options, stock, status, is_flagged, flag_reason, is_hidden,
	created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*domain.Product, error) {
	var p domain.Product
	var sizes, colors []byte
	err := row.Scan(&p.ID, &p.SellerID, &p.Name, &p.Description, &p.Price,
		&p.Category, &p.Gender, &sizes, &colors, &p.Stock, (*string)(&p.Status),
		&p.IsFlagged, &p.FlagReason, &p.IsHidden, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	_ = json.Unmarshal(sizes, &p.SizeOptions)
	_ = json.Unmarshal(colors, &p.ColorOptions)
	return &p, nil
}

func jsonStrings(v []string) []byte {
	if v == nil {
		v = []string{}
	}
	b, _ := json.Marshal(v)
	return b
}

func (s *Store) CreateProduct(ctx context.Context, p *domain.Product) error {
	return s.q.QueryRowContext(ctx,
		`INSERT INTO products (seller_id, name, description, price, category, gender,
		   size_options, color_options, stock, status)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		 RETURNING id, created_at, updated_at`,
		p.SellerID, p.Name, p.Description, p.Price, p.Category, p.Gender,
		jsonStrings(p.SizeOptions), jsonStrings(p.ColorOptions), p.Stock, string(p.Status)).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (s *Store) UpdateProduct(ctx context.Context, p *domain.Product) error {
	_, err := s.q.ExecContext(ctx,
		`UPDATE products SET name=$2, description=$3, price=$4, category=$5, gender=$6,
		   size_options=$7, color_options=$8, stock=$9, status=$10,
		   is_flagged=$11, flag_reason=$12, is_hidden=$13, updated_at=now()
		 WHERE id=$1`,
		p.ID, p.Name, p.Description, p.Price, p.Category, p.Gender,
		jsonStrings(p.SizeOptions), jsonStrings(p.ColorOptions), p.Stock, string(p.Status),
		p.IsFlagged, p.FlagReason, p.IsHidden)
	return err
}

func (s *Store) ProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := scanProduct(s.q.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id=$1`, id))
	if err != nil {
		return nil, notFound(err, "product")
	}
	if err := s.attachImages(ctx, []*domain.Product{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// ProductForUpdate locks the product row for the rest of the surrounding
// transaction. Callers outside a transaction get no lock, so every order
// workflow must reach this through InTx.
func (s *Store) ProductForUpdate(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := scanProduct(s.q.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id=$1 FOR UPDATE`, id))
	if err != nil {
		return nil, notFound(err, "product")
	}
	return p, nil
}

func (s *Store) DecrementStock(ctx context.Context, productID int64, qty int) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE products SET stock = stock - $2, updated_at=now()
		 WHERE id=$1 AND stock >= $2`, productID, qty)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return usecase.ErrInvalidState("insufficient stock for product")
	}
	return nil
}

func (s *Store) ListProducts(ctx context.Context, f usecase.ProductFilter) ([]domain.Product, int, error) {
	where := `WHERE status <> 'deleted'`
	args := []any{}
	add := func(clause string, val any) {
		args = append(args, val)
		where += fmt.Sprintf(clause, len(args))
	}

	if f.PublicOnly {
		where += ` AND status = 'active' AND is_hidden = false`
	}
	if f.Search != "" {
		add(` AND (name ILIKE $%[1]d OR description ILIKE $%[1]d)`, "%"+f.Search+"%")
	}
	if f.SellerID != nil {
		add(` AND seller_id = $%d`, *f.SellerID)
	}
	if f.Status != "" {
		add(` AND status = $%d`, string(f.Status))
	}
	if f.Flagged != nil {
		add(` AND is_flagged = $%d`, *f.Flagged)
	}
	if f.Hidden != nil {
		add(` AND is_hidden = $%d`, *f.Hidden)
	}
	if f.Category != "" {
		add(` AND category = $%d`, f.Category)
	}
	if f.Gender != "" {
		add(` AND gender = $%d`, f.Gender)
	}
	if f.Size != "" {
		add(` AND size_options @> $%d`, jsonStrings([]string{f.Size}))
	}
	if f.Color != "" {
		add(` AND color_options @> $%d`, jsonStrings([]string{f.Color}))
	}
	if f.PriceMin != nil {
		add(` AND price >= $%d`, *f.PriceMin)
	}
	if f.PriceMax != nil {
		add(` AND price <= $%d`, *f.PriceMax)
	}

	order := ` ORDER BY id DESC`
	switch f.Sort {
	case "price_asc":
		order = ` ORDER BY price ASC, id DESC`
	case "price_desc":
		order = ` ORDER BY price DESC, id DESC`
	case "newest":
		order = ` ORDER BY created_at DESC, id DESC`
	}

	var total int
	if err := s.q.QueryRowContext(ctx, `SELECT COUNT(1) FROM products `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.PageSize, (f.Page.Page-1)*f.PageSize)
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products `+where+order+
			fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]domain.Product, 0, f.PageSize)
	refs := make([]*domain.Product, 0, f.PageSize)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	for i := range out {
		refs = append(refs, &out[i])
	}
	if err := s.attachImages(ctx, refs); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *Store) SearchProducts(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE status = 'active' AND is_hidden = false
		   AND (name ILIKE $1 OR description ILIKE $1 OR category ILIKE $1)
		 ORDER BY id DESC LIMIT $2`, "%"+query+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Product, 0, limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	refs := make([]*domain.Product, 0, len(out))
	for i := range out {
		refs = append(refs, &out[i])
	}
	if err := s.attachImages(ctx, refs); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) ProductNames(ctx context.Context, limit int) ([]string, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT name FROM products WHERE status = 'active' AND is_hidden = false
		 ORDER BY id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

func (s *Store) AddProductImages(ctx context.Context, imgs []domain.ProductImage) error {
	for i := range imgs {
		img := &imgs[i]
		err := s.q.QueryRowContext(ctx,
			`INSERT INTO product_images (product_id, url, is_avatar_preview, sort_order)
			 VALUES ($1,$2,$3,$4) RETURNING id`,
			img.ProductID, img.URL, img.IsAvatarPreview, img.SortOrder).Scan(&img.ID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) attachImages(ctx context.Context, products []*domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(products))
	byID := make(map[int64]*domain.Product, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
		byID[p.ID] = p
	}
	rows, err := s.q.QueryContext(ctx,
		`SELECT id, product_id, url, is_avatar_preview, sort_order
		 FROM product_images WHERE product_id = ANY($1)
		 ORDER BY product_id, sort_order, id`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var img domain.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.URL, &img.IsAvatarPreview, &img.SortOrder); err != nil {
			return err
		}
		if p, ok := byID[img.ProductID]; ok {
			p.Images = append(p.Images, img)
		}
	}
	return rows.Err()
}
