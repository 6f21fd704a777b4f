package library

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"libraryms/errs"
	"libraryms/model"
)

func TestAddBook_AuthorMustExist(t *testing.T) {
	authors := &authorRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Author, error) {
			return nil, errs.NotFound("author %d not found", id)
		},
	}
	books := &bookRepoMock{
		createFn: func(ctx context.Context, b *model.Book) error {
			t.Fatal("book must not be created for a missing author")
			return nil
		},
	}

	s := newTestService(authors, books, nil, nil)
	err := s.AddBook(context.Background(), &model.Book{Title: "Dune", ISBN: "9780441172719", AuthorID: 404})
	require.Equal(t, errs.CodeNotFound, errs.CodeOf(err))
}

func TestAddBook_DuplicateISBN(t *testing.T) {
	authors := &authorRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Author, error) {
			return &model.Author{ID: id}, nil
		},
	}
	books := &bookRepoMock{
		isbnExistsFn: func(ctx context.Context, isbn string, excludeID int64) (bool, error) { return true, nil },
	}

	s := newTestService(authors, books, nil, nil)
	err := s.AddBook(context.Background(), &model.Book{Title: "Dune", ISBN: "9780441172719", AuthorID: 1})
	require.Equal(t, errs.CodeDuplicate, errs.CodeOf(err))
}

func TestAddBook_Validation(t *testing.T) {
	s := newTestService(nil, nil, nil, nil)

	err := s.AddBook(context.Background(), &model.Book{ISBN: "x", AuthorID: 1})
	require.Equal(t, errs.CodeValidation, errs.CodeOf(err))

	err = s.AddBook(context.Background(), &model.Book{Title: "Dune", AuthorID: 1})
	require.Equal(t, errs.CodeValidation, errs.CodeOf(err))

	err = s.AddBook(context.Background(), &model.Book{Title: "Dune", ISBN: "x", AuthorID: 1, CopiesAvailable: -1})
	require.Equal(t, errs.CodeValidation, errs.CodeOf(err))
}

func TestDeleteAuthor_BlockedByBooks(t *testing.T) {
	books := &bookRepoMock{
		countByAuthorFn: func(ctx context.Context, tx *sql.Tx, authorID int64) (int, error) { return 3, nil },
	}
	authors := &authorRepoMock{
		deleteFn: func(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
			t.Fatal("delete must not run while books reference the author")
			return false, nil
		},
	}

	s := newTestService(authors, books, nil, nil)
	err := s.DeleteAuthor(context.Background(), 2)
	require.Equal(t, errs.CodeReferential, errs.CodeOf(err))
}

func TestDeleteBook_BlockedByOpenLoans(t *testing.T) {
	loans := &loanRepoMock{
		countByBookFn: func(ctx context.Context, tx *sql.Tx, bookID int64) (int, error) { return 1, nil },
	}
	books := &bookRepoMock{
		deleteFn: func(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
			t.Fatal("delete must not run while open loans reference the book")
			return false, nil
		},
	}

	s := newTestService(nil, books, nil, loans)
	err := s.DeleteBook(context.Background(), 5)
	require.Equal(t, errs.CodeReferential, errs.CodeOf(err))
}

func TestUpdateBook_MissingIDIsNotFound(t *testing.T) {
	authors := &authorRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Author, error) {
			return &model.Author{ID: id}, nil
		},
	}
	books := &bookRepoMock{
		updateFn: func(ctx context.Context, b *model.Book) (bool, error) { return false, nil },
	}

	s := newTestService(authors, books, nil, nil)
	err := s.UpdateBook(context.Background(), &model.Book{ID: 404, Title: "Dune", ISBN: "x", AuthorID: 1})
	require.Equal(t, errs.CodeNotFound, errs.CodeOf(err))
}

func TestSearchBooks_EmptyTermListsAll(t *testing.T) {
	listed := false
	books := &bookRepoMock{
		listFn: func(ctx context.Context) ([]model.Book, error) {
			listed = true
			return nil, nil
		},
		searchFn: func(ctx context.Context, term string) ([]model.Book, error) {
			t.Fatal("blank search must not hit the search query")
			return nil, nil
		},
	}

	s := newTestService(nil, books, nil, nil)
	_, err := s.SearchBooks(context.Background(), "   ")
	require.NoError(t, err)
	require.True(t, listed)
}
