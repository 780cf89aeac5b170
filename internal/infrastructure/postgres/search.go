package postgres

import (
	"context"

	"stylemart-backend/internal/domain"
)

func (s *Store) RecentKeywords(ctx context.Context, limit int) ([]string, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT keyword FROM search_keywords ORDER BY id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var kw string
		if err := rows.Scan(&kw); err != nil {
			return nil, err
		}
		out = append(out, kw)
	}
	return out, rows.Err()
}

func (s *Store) SearchHistory(ctx context.Context, userID *int64) ([]domain.SearchKeyword, error) {
	query := `SELECT id, user_id, keyword, destination, created_at
		 FROM search_keywords WHERE user_id IS NULL ORDER BY id DESC LIMIT 50`
	args := []any{}
	if userID != nil {
		query = `SELECT id, user_id, keyword, destination, created_at
			 FROM search_keywords WHERE user_id=$1 ORDER BY id DESC LIMIT 50`
		args = append(args, *userID)
	}
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SearchKeyword
	for rows.Next() {
		var k domain.SearchKeyword
		if err := rows.Scan(&k.ID, &k.UserID, &k.Keyword, &k.Destination, &k.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

func (s *Store) AddSearchHistory(ctx context.Context, k *domain.SearchKeyword) error {
	return s.q.QueryRowContext(ctx,
		`INSERT INTO search_keywords (user_id, keyword, destination)
		 VALUES ($1,$2,$3) RETURNING id, created_at`,
		k.UserID, k.Keyword, k.Destination).Scan(&k.ID, &k.CreatedAt)
}

func (s *Store) DeleteSearchHistory(ctx context.Context, id int64, userID *int64) error {
	if userID != nil {
		_, err := s.q.ExecContext(ctx,
			`DELETE FROM search_keywords WHERE id=$1 AND user_id=$2`, id, *userID)
		return err
	}
	_, err := s.q.ExecContext(ctx,
		`DELETE FROM search_keywords WHERE id=$1 AND user_id IS NULL`, id)
	return err
}
