package library

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"libraryms/model"
)

// The transaction runner mock hands fn a nil *sql.Tx; the repo mocks never
// touch it, so the service's transactional flow is exercised end to end
// without a database.
type txRunnerMock struct{ beginErr error }

func (m *txRunnerMock) WithinTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	if m.beginErr != nil {
		return m.beginErr
	}
	return fn(nil)
}

type authorRepoMock struct {
	createFn      func(ctx context.Context, a *model.Author) error
	byIDFn        func(ctx context.Context, id int64) (*model.Author, error)
	listFn        func(ctx context.Context) ([]model.Author, error)
	updateFn      func(ctx context.Context, a *model.Author) (bool, error)
	deleteFn      func(ctx context.Context, tx *sql.Tx, id int64) (bool, error)
	emailExistsFn func(ctx context.Context, email string, excludeID int64) (bool, error)
	countFn       func(ctx context.Context, tx *sql.Tx) (int, error)
}

var _ AuthorRepo = (*authorRepoMock)(nil)

func (m *authorRepoMock) Create(ctx context.Context, a *model.Author) error { return m.createFn(ctx, a) }
func (m *authorRepoMock) ByID(ctx context.Context, id int64) (*model.Author, error) {
	return m.byIDFn(ctx, id)
}
func (m *authorRepoMock) List(ctx context.Context) ([]model.Author, error) { return m.listFn(ctx) }
func (m *authorRepoMock) Update(ctx context.Context, a *model.Author) (bool, error) {
	return m.updateFn(ctx, a)
}
func (m *authorRepoMock) Delete(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
	return m.deleteFn(ctx, tx, id)
}
func (m *authorRepoMock) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	return m.emailExistsFn(ctx, email, excludeID)
}
func (m *authorRepoMock) Count(ctx context.Context, tx *sql.Tx) (int, error) {
	return m.countFn(ctx, tx)
}

type bookRepoMock struct {
	createFn        func(ctx context.Context, b *model.Book) error
	byIDFn          func(ctx context.Context, id int64) (*model.Book, error)
	listFn          func(ctx context.Context) ([]model.Book, error)
	searchFn        func(ctx context.Context, term string) ([]model.Book, error)
	updateFn        func(ctx context.Context, b *model.Book) (bool, error)
	deleteFn        func(ctx context.Context, tx *sql.Tx, id int64) (bool, error)
	isbnExistsFn    func(ctx context.Context, isbn string, excludeID int64) (bool, error)
	countByAuthorFn func(ctx context.Context, tx *sql.Tx, authorID int64) (int, error)
	availableFn     func(ctx context.Context, tx *sql.Tx, bookID int64) (int, error)
	decrementFn     func(ctx context.Context, tx *sql.Tx, bookID int64) (bool, error)
	incrementFn     func(ctx context.Context, tx *sql.Tx, bookID int64) error
	countFn         func(ctx context.Context, tx *sql.Tx) (int, error)
	totalCopiesFn   func(ctx context.Context, tx *sql.Tx) (int, error)
}

var _ BookRepo = (*bookRepoMock)(nil)

func (m *bookRepoMock) Create(ctx context.Context, b *model.Book) error { return m.createFn(ctx, b) }
func (m *bookRepoMock) ByID(ctx context.Context, id int64) (*model.Book, error) {
	return m.byIDFn(ctx, id)
}
func (m *bookRepoMock) List(ctx context.Context) ([]model.Book, error) { return m.listFn(ctx) }
func (m *bookRepoMock) SearchByTitle(ctx context.Context, term string) ([]model.Book, error) {
	return m.searchFn(ctx, term)
}
func (m *bookRepoMock) Update(ctx context.Context, b *model.Book) (bool, error) {
	return m.updateFn(ctx, b)
}
func (m *bookRepoMock) Delete(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
	return m.deleteFn(ctx, tx, id)
}
func (m *bookRepoMock) ISBNExists(ctx context.Context, isbn string, excludeID int64) (bool, error) {
	return m.isbnExistsFn(ctx, isbn, excludeID)
}
func (m *bookRepoMock) CountByAuthor(ctx context.Context, tx *sql.Tx, authorID int64) (int, error) {
	return m.countByAuthorFn(ctx, tx, authorID)
}
func (m *bookRepoMock) AvailableCopies(ctx context.Context, tx *sql.Tx, bookID int64) (int, error) {
	return m.availableFn(ctx, tx, bookID)
}
func (m *bookRepoMock) DecrementAvailable(ctx context.Context, tx *sql.Tx, bookID int64) (bool, error) {
	return m.decrementFn(ctx, tx, bookID)
}
func (m *bookRepoMock) IncrementAvailable(ctx context.Context, tx *sql.Tx, bookID int64) error {
	return m.incrementFn(ctx, tx, bookID)
}
func (m *bookRepoMock) Count(ctx context.Context, tx *sql.Tx) (int, error) {
	return m.countFn(ctx, tx)
}
func (m *bookRepoMock) TotalCopies(ctx context.Context, tx *sql.Tx) (int, error) {
	return m.totalCopiesFn(ctx, tx)
}

type memberRepoMock struct {
	createFn      func(ctx context.Context, mm *model.Member) error
	byIDFn        func(ctx context.Context, id int64) (*model.Member, error)
	listFn        func(ctx context.Context) ([]model.Member, error)
	updateFn      func(ctx context.Context, mm *model.Member) (bool, error)
	deleteFn      func(ctx context.Context, tx *sql.Tx, id int64) (bool, error)
	emailExistsFn func(ctx context.Context, email string, excludeID int64) (bool, error)
	lockFn        func(ctx context.Context, tx *sql.Tx, id int64) (*model.Member, error)
	countFn       func(ctx context.Context, tx *sql.Tx) (int, error)
}

var _ MemberRepo = (*memberRepoMock)(nil)

func (m *memberRepoMock) Create(ctx context.Context, mm *model.Member) error {
	return m.createFn(ctx, mm)
}
func (m *memberRepoMock) ByID(ctx context.Context, id int64) (*model.Member, error) {
	return m.byIDFn(ctx, id)
}
func (m *memberRepoMock) List(ctx context.Context) ([]model.Member, error) { return m.listFn(ctx) }
func (m *memberRepoMock) Update(ctx context.Context, mm *model.Member) (bool, error) {
	return m.updateFn(ctx, mm)
}
func (m *memberRepoMock) Delete(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
	return m.deleteFn(ctx, tx, id)
}
func (m *memberRepoMock) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	return m.emailExistsFn(ctx, email, excludeID)
}
func (m *memberRepoMock) LockForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Member, error) {
	return m.lockFn(ctx, tx, id)
}
func (m *memberRepoMock) Count(ctx context.Context, tx *sql.Tx) (int, error) {
	return m.countFn(ctx, tx)
}

type loanRepoMock struct {
	insertFn        func(ctx context.Context, tx *sql.Tx, l *model.Loan) (int64, error)
	lockFn          func(ctx context.Context, tx *sql.Tx, id int64) (*model.Loan, error)
	markReturnedFn  func(ctx context.Context, tx *sql.Tx, id int64, returnDate time.Time, fine decimal.Decimal) error
	refreshFn       func(ctx context.Context, tx *sql.Tx, rate decimal.Decimal, today time.Time) (int64, error)
	byIDFn          func(ctx context.Context, id int64) (*model.Loan, error)
	listByMemberFn  func(ctx context.Context, memberID int64) ([]model.Loan, error)
	listActiveFn    func(ctx context.Context) ([]model.Loan, error)
	listOverdueFn   func(ctx context.Context, today time.Time) ([]model.Loan, error)
	countByMemberFn func(ctx context.Context, tx *sql.Tx, memberID int64) (int, error)
	countByBookFn   func(ctx context.Context, tx *sql.Tx, bookID int64) (int, error)
	countActiveFn   func(ctx context.Context, tx *sql.Tx) (int, error)
	countOverdueFn  func(ctx context.Context, tx *sql.Tx, today time.Time) (int, error)
	overdueTotalsFn func(ctx context.Context, tx *sql.Tx) (int, decimal.Decimal, error)
}

var _ LoanRepo = (*loanRepoMock)(nil)

func (m *loanRepoMock) Insert(ctx context.Context, tx *sql.Tx, l *model.Loan) (int64, error) {
	return m.insertFn(ctx, tx, l)
}
func (m *loanRepoMock) LockForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Loan, error) {
	return m.lockFn(ctx, tx, id)
}
func (m *loanRepoMock) MarkReturned(ctx context.Context, tx *sql.Tx, id int64, returnDate time.Time, fine decimal.Decimal) error {
	return m.markReturnedFn(ctx, tx, id, returnDate, fine)
}
func (m *loanRepoMock) RefreshOverdue(ctx context.Context, tx *sql.Tx, rate decimal.Decimal, today time.Time) (int64, error) {
	return m.refreshFn(ctx, tx, rate, today)
}
func (m *loanRepoMock) ByID(ctx context.Context, id int64) (*model.Loan, error) {
	return m.byIDFn(ctx, id)
}
func (m *loanRepoMock) ListByMember(ctx context.Context, memberID int64) ([]model.Loan, error) {
	return m.listByMemberFn(ctx, memberID)
}
func (m *loanRepoMock) ListActive(ctx context.Context) ([]model.Loan, error) {
	return m.listActiveFn(ctx)
}
func (m *loanRepoMock) ListOverdue(ctx context.Context, today time.Time) ([]model.Loan, error) {
	return m.listOverdueFn(ctx, today)
}
func (m *loanRepoMock) CountActiveByMember(ctx context.Context, tx *sql.Tx, memberID int64) (int, error) {
	return m.countByMemberFn(ctx, tx, memberID)
}
func (m *loanRepoMock) CountOpenByBook(ctx context.Context, tx *sql.Tx, bookID int64) (int, error) {
	return m.countByBookFn(ctx, tx, bookID)
}
func (m *loanRepoMock) CountActive(ctx context.Context, tx *sql.Tx) (int, error) {
	return m.countActiveFn(ctx, tx)
}
func (m *loanRepoMock) CountOverdue(ctx context.Context, tx *sql.Tx, today time.Time) (int, error) {
	return m.countOverdueFn(ctx, tx, today)
}
func (m *loanRepoMock) OverdueTotals(ctx context.Context, tx *sql.Tx) (int, decimal.Decimal, error) {
	return m.overdueTotalsFn(ctx, tx)
}

// newTestService pins the clock to 2024-01-15 and the daily rate to 1.00.
func newTestService(authors AuthorRepo, books BookRepo, members MemberRepo, loans LoanRepo) *service {
	return &service{
		tx:       &txRunnerMock{},
		authors:  authors,
		books:    books,
		members:  members,
		loans:    loans,
		fineRate: decimal.RequireFromString("1.00"),
		now: func() time.Time {
			return time.Date(2024, time.January, 15, 9, 30, 0, 0, time.UTC)
		},
	}
}

func testDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
