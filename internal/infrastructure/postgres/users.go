package postgres

import (
	"context"
	"fmt"

	"stylemart-backend/internal/domain"
	"stylemart-backend/internal/usecase"
)

const userColumns = `id, email, password_hash, role, status, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash,
		(*string)(&u.Role), (*string)(&u.Status), &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	return s.q.QueryRowContext(ctx,
		`INSERT INTO users (email, password_hash, role, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		u.Email, u.PasswordHash, string(u.Role), string(u.Status)).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (s *Store) UpdateUser(ctx context.Context, u *domain.User) error {
	_, err := s.q.ExecContext(ctx,
		`UPDATE users SET email=$2, password_hash=$3, role=$4, status=$5, updated_at=now()
		 WHERE id=$1`,
		u.ID, u.Email, u.PasswordHash, string(u.Role), string(u.Status))
	return err
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := scanUser(s.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email)=lower($1)`, email))
	if err != nil {
		return nil, notFound(err, "user")
	}
	return u, nil
}

func (s *Store) UserByID(ctx context.Context, id int64) (*domain.User, error) {
	u, err := scanUser(s.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id=$1`, id))
	if err != nil {
		return nil, notFound(err, "user")
	}
	return u, nil
}

func (s *Store) ListUsers(ctx context.Context, f usecase.UserFilter) ([]domain.User, int, error) {
	where := `WHERE 1=1`
	args := []any{}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where += fmt.Sprintf(` AND email ILIKE $%d`, len(args))
	}
	if f.Role != "" {
		args = append(args, string(f.Role))
		where += fmt.Sprintf(` AND role=$%d`, len(args))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		where += fmt.Sprintf(` AND status=$%d`, len(args))
	}

	var total int
	if err := s.q.QueryRowContext(ctx, `SELECT COUNT(1) FROM users `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.PageSize, (f.Page.Page-1)*f.PageSize)
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users `+where+
			fmt.Sprintf(` ORDER BY id DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]domain.User, 0, f.PageSize)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *u)
	}
	return out, total, rows.Err()
}
