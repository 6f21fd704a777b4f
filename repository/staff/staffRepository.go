package staff

import (
	"context"
	"database/sql"
	"errors"

	"libraryms/errs"
	"libraryms/model"
	"libraryms/util/pgerr"
)

type Repo interface {
	Create(ctx context.Context, s *model.Staff) error
	ByEmail(ctx context.Context, email string) (*model.Staff, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, s *model.Staff) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO staff (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		s.Name, s.Email, s.PasswordHash,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		if pgerr.IsUniqueViolation(err, "email") {
			return errs.Duplicate("staff email %q already registered", s.Email)
		}
		return errs.Storage(err, "create staff")
	}
	return nil
}

func (r *repo) ByEmail(ctx context.Context, email string) (*model.Staff, error) {
	s := &model.Staff{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, created_at
		FROM staff
		WHERE lower(email) = lower($1)`,
		email,
	).Scan(&s.ID, &s.Name, &s.Email, &s.PasswordHash, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NotFound("staff %q not found", email)
		}
		return nil, errs.Storage(err, "get staff by email")
	}
	return s, nil
}
