// Package library is the workflow engine: it composes the entity
// repositories and enforces every rule that spans more than one of them
// (availability, loan limits, referential guards, fine accrual).
package library

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"libraryms/model"
)

// Repository views as this service needs them; satisfied by
// repository/author, repository/book, repository/member, repository/loan.

type AuthorRepo interface {
	Create(ctx context.Context, a *model.Author) error
	ByID(ctx context.Context, id int64) (*model.Author, error)
	List(ctx context.Context) ([]model.Author, error)
	Update(ctx context.Context, a *model.Author) (bool, error)
	Delete(ctx context.Context, tx *sql.Tx, id int64) (bool, error)
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	Count(ctx context.Context, tx *sql.Tx) (int, error)
}

type BookRepo interface {
	Create(ctx context.Context, b *model.Book) error
	ByID(ctx context.Context, id int64) (*model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
	SearchByTitle(ctx context.Context, term string) ([]model.Book, error)
	Update(ctx context.Context, b *model.Book) (bool, error)
	Delete(ctx context.Context, tx *sql.Tx, id int64) (bool, error)
	ISBNExists(ctx context.Context, isbn string, excludeID int64) (bool, error)
	CountByAuthor(ctx context.Context, tx *sql.Tx, authorID int64) (int, error)
	AvailableCopies(ctx context.Context, tx *sql.Tx, bookID int64) (int, error)
	DecrementAvailable(ctx context.Context, tx *sql.Tx, bookID int64) (bool, error)
	IncrementAvailable(ctx context.Context, tx *sql.Tx, bookID int64) error
	Count(ctx context.Context, tx *sql.Tx) (int, error)
	TotalCopies(ctx context.Context, tx *sql.Tx) (int, error)
}

type MemberRepo interface {
	Create(ctx context.Context, m *model.Member) error
	ByID(ctx context.Context, id int64) (*model.Member, error)
	List(ctx context.Context) ([]model.Member, error)
	Update(ctx context.Context, m *model.Member) (bool, error)
	Delete(ctx context.Context, tx *sql.Tx, id int64) (bool, error)
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	LockForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Member, error)
	Count(ctx context.Context, tx *sql.Tx) (int, error)
}

type LoanRepo interface {
	Insert(ctx context.Context, tx *sql.Tx, l *model.Loan) (int64, error)
	LockForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Loan, error)
	MarkReturned(ctx context.Context, tx *sql.Tx, id int64, returnDate time.Time, fine decimal.Decimal) error
	RefreshOverdue(ctx context.Context, tx *sql.Tx, dailyRate decimal.Decimal, today time.Time) (int64, error)
	ByID(ctx context.Context, id int64) (*model.Loan, error)
	ListByMember(ctx context.Context, memberID int64) ([]model.Loan, error)
	ListActive(ctx context.Context) ([]model.Loan, error)
	ListOverdue(ctx context.Context, today time.Time) ([]model.Loan, error)
	CountActiveByMember(ctx context.Context, tx *sql.Tx, memberID int64) (int, error)
	CountOpenByBook(ctx context.Context, tx *sql.Tx, bookID int64) (int, error)
	CountActive(ctx context.Context, tx *sql.Tx) (int, error)
	CountOverdue(ctx context.Context, tx *sql.Tx, today time.Time) (int, error)
	OverdueTotals(ctx context.Context, tx *sql.Tx) (int, decimal.Decimal, error)
}

// TxRunner is the scoped-transaction primitive; util/database.DB provides it.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

// MemberLoanSummary is a member together with their full loan history.
type MemberLoanSummary struct {
	Member      *model.Member   `json:"member"`
	Loans       []model.Loan    `json:"loans"`
	TotalLoans  int             `json:"total_loans"`
	ActiveLoans int             `json:"active_loans"`
	TotalFines  decimal.Decimal `json:"total_fines"`
}

// ReconciliationResult summarizes one daily sweep.
type ReconciliationResult struct {
	LoansUpdated     int64           `json:"loans_updated"`
	OverdueLoans     int             `json:"overdue_loans"`
	OutstandingFines decimal.Decimal `json:"outstanding_fines"`
}

type Statistics struct {
	TotalAuthors int `json:"total_authors"`
	TotalBooks   int `json:"total_books"`
	TotalCopies  int `json:"total_copies"`
	TotalMembers int `json:"total_members"`
	ActiveLoans  int `json:"active_loans"`
	OverdueLoans int `json:"overdue_loans"`
}

type Service interface {
	// Members
	RegisterMember(ctx context.Context, m *model.Member) error
	GetMember(ctx context.Context, id int64) (*model.Member, error)
	ListMembers(ctx context.Context) ([]model.Member, error)
	UpdateMember(ctx context.Context, m *model.Member) error
	DeleteMember(ctx context.Context, id int64) error
	GetMemberLoanSummary(ctx context.Context, memberID int64) (*MemberLoanSummary, error)

	// Catalog
	RegisterAuthor(ctx context.Context, a *model.Author) error
	GetAuthor(ctx context.Context, id int64) (*model.Author, error)
	ListAuthors(ctx context.Context) ([]model.Author, error)
	UpdateAuthor(ctx context.Context, a *model.Author) error
	DeleteAuthor(ctx context.Context, id int64) error
	AddBook(ctx context.Context, b *model.Book) error
	GetBook(ctx context.Context, id int64) (*model.Book, error)
	ListBooks(ctx context.Context) ([]model.Book, error)
	SearchBooks(ctx context.Context, term string) ([]model.Book, error)
	UpdateBook(ctx context.Context, b *model.Book) error
	DeleteBook(ctx context.Context, id int64) error

	// Circulation
	IssueBook(ctx context.Context, bookID, memberID int64) (int64, error)
	ReturnBook(ctx context.Context, loanID int64) (decimal.Decimal, error)
	GetLoan(ctx context.Context, id int64) (*model.Loan, error)
	ListActiveLoans(ctx context.Context) ([]model.Loan, error)
	ListOverdueLoans(ctx context.Context) ([]model.Loan, error)

	// Daily operations and reporting
	ProcessDailyReconciliation(ctx context.Context) (*ReconciliationResult, error)
	GetLibraryStatistics(ctx context.Context) (*Statistics, error)
}

type service struct {
	tx       TxRunner
	authors  AuthorRepo
	books    BookRepo
	members  MemberRepo
	loans    LoanRepo
	fineRate decimal.Decimal
	now      func() time.Time
}

func New(tx TxRunner, authors AuthorRepo, books BookRepo, members MemberRepo, loans LoanRepo, fineRate decimal.Decimal) Service {
	return &service{
		tx:       tx,
		authors:  authors,
		books:    books,
		members:  members,
		loans:    loans,
		fineRate: fineRate,
		now:      time.Now,
	}
}

// today is the operational calendar day, at midnight UTC.
func (s *service) today() time.Time {
	t := s.now().UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
