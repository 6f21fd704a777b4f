package library

import (
	"context"
	"database/sql"
	"strings"

	"libraryms/errs"
	"libraryms/model"
)

func (s *service) RegisterAuthor(ctx context.Context, a *model.Author) error {
	if strings.TrimSpace(a.Name) == "" {
		return errs.Validation("author name is required")
	}
	if !isValidEmail(a.Email) {
		return errs.Validation("invalid email format: %q", a.Email)
	}
	return s.authors.Create(ctx, a)
}

func (s *service) GetAuthor(ctx context.Context, id int64) (*model.Author, error) {
	return s.authors.ByID(ctx, id)
}

func (s *service) ListAuthors(ctx context.Context) ([]model.Author, error) {
	return s.authors.List(ctx)
}

func (s *service) UpdateAuthor(ctx context.Context, a *model.Author) error {
	if strings.TrimSpace(a.Name) == "" {
		return errs.Validation("author name is required")
	}
	if !isValidEmail(a.Email) {
		return errs.Validation("invalid email format: %q", a.Email)
	}
	ok, err := s.authors.Update(ctx, a)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NotFound("author %d not found", a.ID)
	}
	return nil
}

// DeleteAuthor refuses to remove an author who still has books in the catalog.
func (s *service) DeleteAuthor(ctx context.Context, id int64) error {
	return s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		n, err := s.books.CountByAuthor(ctx, tx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return errs.Referential("author %d still has %d books", id, n)
		}
		ok, err := s.authors.Delete(ctx, tx, id)
		if err != nil {
			return err
		}
		if !ok {
			return errs.NotFound("author %d not found", id)
		}
		return nil
	})
}

func (s *service) AddBook(ctx context.Context, b *model.Book) error {
	if err := validateBook(b); err != nil {
		return err
	}
	// The author reference must resolve before the book exists.
	if _, err := s.authors.ByID(ctx, b.AuthorID); err != nil {
		return err
	}
	exists, err := s.books.ISBNExists(ctx, b.ISBN, 0)
	if err != nil {
		return err
	}
	if exists {
		return errs.Duplicate("ISBN %q already registered", b.ISBN)
	}
	return s.books.Create(ctx, b)
}

func (s *service) GetBook(ctx context.Context, id int64) (*model.Book, error) {
	return s.books.ByID(ctx, id)
}

func (s *service) ListBooks(ctx context.Context) ([]model.Book, error) {
	return s.books.List(ctx)
}

func (s *service) SearchBooks(ctx context.Context, term string) ([]model.Book, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.books.List(ctx)
	}
	return s.books.SearchByTitle(ctx, term)
}

func (s *service) UpdateBook(ctx context.Context, b *model.Book) error {
	if err := validateBook(b); err != nil {
		return err
	}
	if _, err := s.authors.ByID(ctx, b.AuthorID); err != nil {
		return err
	}
	ok, err := s.books.Update(ctx, b)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NotFound("book %d not found", b.ID)
	}
	return nil
}

// DeleteBook refuses to remove a book with open loans.
func (s *service) DeleteBook(ctx context.Context, id int64) error {
	return s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		n, err := s.loans.CountOpenByBook(ctx, tx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return errs.Referential("book %d has %d open loans", id, n)
		}
		ok, err := s.books.Delete(ctx, tx, id)
		if err != nil {
			return err
		}
		if !ok {
			return errs.NotFound("book %d not found", id)
		}
		return nil
	})
}

func validateBook(b *model.Book) error {
	if strings.TrimSpace(b.Title) == "" {
		return errs.Validation("book title is required")
	}
	if strings.TrimSpace(b.ISBN) == "" {
		return errs.Validation("ISBN is required")
	}
	if b.CopiesAvailable < 0 {
		return errs.Validation("copies available cannot be negative")
	}
	if b.Price != nil && b.Price.IsNegative() {
		return errs.Validation("price cannot be negative")
	}
	return nil
}
