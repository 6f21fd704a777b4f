// repository/book/repo.go
package book

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"libraryms/errs"
	"libraryms/model"
	"libraryms/util/pgerr"
)

type Repo interface {
	Create(ctx context.Context, b *model.Book) error
	ByID(ctx context.Context, id int64) (*model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
	SearchByTitle(ctx context.Context, term string) ([]model.Book, error)
	Update(ctx context.Context, b *model.Book) (bool, error)
	Delete(ctx context.Context, tx *sql.Tx, id int64) (bool, error)
	ISBNExists(ctx context.Context, isbn string, excludeID int64) (bool, error)
	CountByAuthor(ctx context.Context, tx *sql.Tx, authorID int64) (int, error)

	// Circulation, always under the caller's transaction.
	AvailableCopies(ctx context.Context, tx *sql.Tx, bookID int64) (int, error)
	DecrementAvailable(ctx context.Context, tx *sql.Tx, bookID int64) (bool, error)
	IncrementAvailable(ctx context.Context, tx *sql.Tx, bookID int64) error

	Count(ctx context.Context, tx *sql.Tx) (int, error)
	TotalCopies(ctx context.Context, tx *sql.Tx) (int, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

const selectBook = `
	SELECT b.id, b.title, b.isbn, b.publication_year, b.price,
	       b.copies_available, b.author_id, a.name AS author_name
	FROM books b
	JOIN authors a ON a.id = b.author_id`

func (r *repo) Create(ctx context.Context, b *model.Book) error {
	const q = `
		INSERT INTO books (title, isbn, publication_year, price, copies_available, author_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	var price decimal.NullDecimal
	if b.Price != nil {
		price = decimal.NullDecimal{Decimal: *b.Price, Valid: true}
	}
	err := r.db.QueryRowContext(ctx, q,
		b.Title, b.ISBN, b.PublicationYear, price, b.CopiesAvailable, b.AuthorID,
	).Scan(&b.ID)
	if err != nil {
		if pgerr.IsUniqueViolation(err, "isbn") {
			return errs.Duplicate("ISBN %q already registered", b.ISBN)
		}
		return errs.Storage(err, "create book")
	}
	return nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Book, error) {
	rows, err := r.db.QueryContext(ctx, selectBook+` WHERE b.id = $1`, id)
	if err != nil {
		return nil, errs.Storage(err, "get book %d", id)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, errs.Storage(err, "get book %d", id)
		}
		return nil, errs.NotFound("book %d not found", id)
	}
	b, err := scanBook(rows)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repo) List(ctx context.Context) ([]model.Book, error) {
	return r.queryBooks(ctx, selectBook+` ORDER BY b.title, b.id`)
}

func (r *repo) SearchByTitle(ctx context.Context, term string) ([]model.Book, error) {
	const q = ` WHERE b.title ILIKE '%' || $1 || '%' ORDER BY b.title, b.id`
	return r.queryBooks(ctx, selectBook+q, term)
}

func (r *repo) queryBooks(ctx context.Context, q string, args ...any) ([]model.Book, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errs.Storage(err, "query books")
	}
	defer rows.Close()

	var out []model.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Storage(err, "query books")
	}
	return out, nil
}

func scanBook(rows *sql.Rows) (*model.Book, error) {
	b := &model.Book{}
	var year sql.NullInt64
	var price decimal.NullDecimal
	if err := rows.Scan(
		&b.ID, &b.Title, &b.ISBN, &year, &price,
		&b.CopiesAvailable, &b.AuthorID, &b.AuthorName,
	); err != nil {
		return nil, errs.Storage(err, "scan book")
	}
	if year.Valid {
		y := int(year.Int64)
		b.PublicationYear = &y
	}
	if price.Valid {
		p := price.Decimal
		b.Price = &p
	}
	return b, nil
}

func (r *repo) Update(ctx context.Context, b *model.Book) (bool, error) {
	const q = `
		UPDATE books
		SET title = $2, isbn = $3, publication_year = $4, price = $5,
		    copies_available = $6, author_id = $7
		WHERE id = $1`
	var price decimal.NullDecimal
	if b.Price != nil {
		price = decimal.NullDecimal{Decimal: *b.Price, Valid: true}
	}
	res, err := r.db.ExecContext(ctx, q,
		b.ID, b.Title, b.ISBN, b.PublicationYear, price, b.CopiesAvailable, b.AuthorID,
	)
	if err != nil {
		if pgerr.IsUniqueViolation(err, "isbn") {
			return false, errs.Duplicate("ISBN %q already registered", b.ISBN)
		}
		return false, errs.Storage(err, "update book %d", b.ID)
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) Delete(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
	res, err := tx.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return false, errs.Storage(err, "delete book %d", id)
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) ISBNExists(ctx context.Context, isbn string, excludeID int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM books WHERE isbn = $1 AND id <> $2)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, isbn, excludeID).Scan(&exists); err != nil {
		return false, errs.Storage(err, "check isbn")
	}
	return exists, nil
}

func (r *repo) CountByAuthor(ctx context.Context, tx *sql.Tx, authorID int64) (int, error) {
	var n int
	err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM books WHERE author_id = $1`, authorID).Scan(&n)
	if err != nil {
		return 0, errs.Storage(err, "count books by author %d", authorID)
	}
	return n, nil
}

func (r *repo) AvailableCopies(ctx context.Context, tx *sql.Tx, bookID int64) (int, error) {
	var n int
	err := tx.QueryRowContext(ctx, `SELECT copies_available FROM books WHERE id = $1`, bookID).Scan(&n)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, errs.NotFound("book %d not found", bookID)
		}
		return 0, errs.Storage(err, "get copies for book %d", bookID)
	}
	return n, nil
}

// DecrementAvailable takes one copy off the shelf. The guard keeps the count
// from ever going negative under concurrent issues; a false return means the
// last copy was taken by someone else.
func (r *repo) DecrementAvailable(ctx context.Context, tx *sql.Tx, bookID int64) (bool, error) {
	const q = `
		UPDATE books
		SET copies_available = copies_available - 1
		WHERE id = $1
		AND copies_available > 0`
	res, err := tx.ExecContext(ctx, q, bookID)
	if err != nil {
		return false, errs.Storage(err, "decrement copies for book %d", bookID)
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) IncrementAvailable(ctx context.Context, tx *sql.Tx, bookID int64) error {
	const q = `
		UPDATE books
		SET copies_available = copies_available + 1
		WHERE id = $1`
	res, err := tx.ExecContext(ctx, q, bookID)
	if err != nil {
		return errs.Storage(err, "increment copies for book %d", bookID)
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return errs.NotFound("book %d not found", bookID)
	}
	return nil
}

func (r *repo) Count(ctx context.Context, tx *sql.Tx) (int, error) {
	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&n); err != nil {
		return 0, errs.Storage(err, "count books")
	}
	return n, nil
}

func (r *repo) TotalCopies(ctx context.Context, tx *sql.Tx) (int, error) {
	var n int
	err := tx.QueryRowContext(ctx, `SELECT COALESCE(SUM(copies_available), 0) FROM books`).Scan(&n)
	if err != nil {
		return 0, errs.Storage(err, "sum copies")
	}
	return n, nil
}
