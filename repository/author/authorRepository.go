// repository/author/repo.go
package author

import (
	"context"
	"database/sql"
	"errors"

	"libraryms/errs"
	"libraryms/model"
	"libraryms/util/pgerr"
)

type Repo interface {
	Create(ctx context.Context, a *model.Author) error
	ByID(ctx context.Context, id int64) (*model.Author, error)
	List(ctx context.Context) ([]model.Author, error)
	Update(ctx context.Context, a *model.Author) (bool, error)
	Delete(ctx context.Context, tx *sql.Tx, id int64) (bool, error)
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	Count(ctx context.Context, tx *sql.Tx) (int, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, a *model.Author) error {
	const q = `
		INSERT INTO authors (name, email, birth_year, biography)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, q, a.Name, a.Email, a.BirthYear, a.Biography).Scan(&a.ID)
	if err != nil {
		if pgerr.IsUniqueViolation(err, "email") {
			return errs.Duplicate("author email %q already registered", a.Email)
		}
		return errs.Storage(err, "create author")
	}
	return nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Author, error) {
	const q = `
		SELECT id, name, email, birth_year, biography
		FROM authors
		WHERE id = $1`
	a := &model.Author{}
	var birthYear sql.NullInt64
	err := r.db.QueryRowContext(ctx, q, id).Scan(&a.ID, &a.Name, &a.Email, &birthYear, &a.Biography)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NotFound("author %d not found", id)
		}
		return nil, errs.Storage(err, "get author %d", id)
	}
	if birthYear.Valid {
		y := int(birthYear.Int64)
		a.BirthYear = &y
	}
	return a, nil
}

func (r *repo) List(ctx context.Context) ([]model.Author, error) {
	const q = `
		SELECT id, name, email, birth_year, biography
		FROM authors
		ORDER BY name, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, errs.Storage(err, "list authors")
	}
	defer rows.Close()

	var out []model.Author
	for rows.Next() {
		var a model.Author
		var birthYear sql.NullInt64
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &birthYear, &a.Biography); err != nil {
			return nil, errs.Storage(err, "scan author")
		}
		if birthYear.Valid {
			y := int(birthYear.Int64)
			a.BirthYear = &y
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Storage(err, "list authors")
	}
	return out, nil
}

func (r *repo) Update(ctx context.Context, a *model.Author) (bool, error) {
	const q = `
		UPDATE authors
		SET name = $2, email = $3, birth_year = $4, biography = $5
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, a.ID, a.Name, a.Email, a.BirthYear, a.Biography)
	if err != nil {
		if pgerr.IsUniqueViolation(err, "email") {
			return false, errs.Duplicate("author email %q already registered", a.Email)
		}
		return false, errs.Storage(err, "update author %d", a.ID)
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) Delete(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
	res, err := tx.ExecContext(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return false, errs.Storage(err, "delete author %d", id)
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM authors WHERE lower(email) = lower($1) AND id <> $2
		)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, email, excludeID).Scan(&exists); err != nil {
		return false, errs.Storage(err, "check author email")
	}
	return exists, nil
}

func (r *repo) Count(ctx context.Context, tx *sql.Tx) (int, error) {
	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM authors`).Scan(&n); err != nil {
		return 0, errs.Storage(err, "count authors")
	}
	return n, nil
}
