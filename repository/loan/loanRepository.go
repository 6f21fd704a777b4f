// repository/loan/repo.go
package loan

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"libraryms/errs"
	"libraryms/model"
)

type Repo interface {
	// Writes, always under the caller's transaction.
	Insert(ctx context.Context, tx *sql.Tx, l *model.Loan) (int64, error)
	LockForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Loan, error)
	MarkReturned(ctx context.Context, tx *sql.Tx, id int64, returnDate time.Time, fine decimal.Decimal) error
	RefreshOverdue(ctx context.Context, tx *sql.Tx, dailyRate decimal.Decimal, today time.Time) (int64, error)

	// Reads.
	ByID(ctx context.Context, id int64) (*model.Loan, error)
	ListByMember(ctx context.Context, memberID int64) ([]model.Loan, error)
	ListActive(ctx context.Context) ([]model.Loan, error)
	ListOverdue(ctx context.Context, today time.Time) ([]model.Loan, error)

	// Counts and totals.
	CountActiveByMember(ctx context.Context, tx *sql.Tx, memberID int64) (int, error)
	CountOpenByBook(ctx context.Context, tx *sql.Tx, bookID int64) (int, error)
	CountActive(ctx context.Context, tx *sql.Tx) (int, error)
	CountOverdue(ctx context.Context, tx *sql.Tx, today time.Time) (int, error)
	OverdueTotals(ctx context.Context, tx *sql.Tx) (int, decimal.Decimal, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

// An "open" loan is ACTIVE or OVERDUE with no return date. Every filter in
// this package uses that definition; none of them lean on due_date to decide
// whether a loan is open.
const openLoan = `l.status IN ('ACTIVE', 'OVERDUE') AND l.return_date IS NULL`

const selectLoan = `
	SELECT l.id, l.book_id, l.member_id, l.loan_date, l.due_date,
	       l.return_date, l.fine_amount, l.status,
	       b.title AS book_title, m.name AS member_name
	FROM loans l
	JOIN books b ON b.id = l.book_id
	JOIN members m ON m.id = l.member_id`

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, l *model.Loan) (int64, error) {
	const q = `
		INSERT INTO loans (book_id, member_id, loan_date, due_date, fine_amount, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	var id int64
	err := tx.QueryRowContext(ctx, q,
		l.BookID, l.MemberID, l.LoanDate, l.DueDate, l.FineAmount, l.Status,
	).Scan(&id)
	if err != nil {
		return 0, errs.Storage(err, "insert loan")
	}
	l.ID = id
	return id, nil
}

func (r *repo) LockForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Loan, error) {
	const q = `
		SELECT id, book_id, member_id, loan_date, due_date, return_date, fine_amount, status
		FROM loans
		WHERE id = $1
		FOR UPDATE`
	l := &model.Loan{}
	err := tx.QueryRowContext(ctx, q, id).Scan(
		&l.ID, &l.BookID, &l.MemberID, &l.LoanDate, &l.DueDate,
		&l.ReturnDate, &l.FineAmount, &l.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NotFound("loan %d not found", id)
		}
		return nil, errs.Storage(err, "get loan %d", id)
	}
	return l, nil
}

func (r *repo) MarkReturned(ctx context.Context, tx *sql.Tx, id int64, returnDate time.Time, fine decimal.Decimal) error {
	const q = `
		UPDATE loans
		SET return_date = $2, fine_amount = $3, status = 'RETURNED'
		WHERE id = $1`
	res, err := tx.ExecContext(ctx, q, id, returnDate, fine)
	if err != nil {
		return errs.Storage(err, "mark loan %d returned", id)
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return errs.NotFound("loan %d not found", id)
	}
	return nil
}

// RefreshOverdue recomputes fines from scratch for every open loan past its
// due date and promotes ACTIVE rows to OVERDUE. Returned loans and loans not
// yet due are untouched, and OVERDUE never reverts, so running the sweep
// twice on the same day is a no-op the second time.
func (r *repo) RefreshOverdue(ctx context.Context, tx *sql.Tx, dailyRate decimal.Decimal, today time.Time) (int64, error) {
	const q = `
		UPDATE loans l
		SET fine_amount = ($1::numeric * ($2::date - l.due_date)),
		    status = 'OVERDUE'
		WHERE ` + openLoan + `
		AND l.due_date < $2::date`
	res, err := tx.ExecContext(ctx, q, dailyRate, today)
	if err != nil {
		return 0, errs.Storage(err, "refresh overdue loans")
	}
	aff, _ := res.RowsAffected()
	return aff, nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Loan, error) {
	loans, err := r.queryLoans(ctx, selectLoan+` WHERE l.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(loans) == 0 {
		return nil, errs.NotFound("loan %d not found", id)
	}
	return &loans[0], nil
}

func (r *repo) ListByMember(ctx context.Context, memberID int64) ([]model.Loan, error) {
	const q = ` WHERE l.member_id = $1 ORDER BY l.loan_date DESC, l.id DESC`
	return r.queryLoans(ctx, selectLoan+q, memberID)
}

func (r *repo) ListActive(ctx context.Context) ([]model.Loan, error) {
	const q = ` WHERE ` + openLoan + ` ORDER BY l.due_date, l.id`
	return r.queryLoans(ctx, selectLoan+q)
}

func (r *repo) ListOverdue(ctx context.Context, today time.Time) ([]model.Loan, error) {
	const q = ` WHERE ` + openLoan + ` AND l.due_date < $1::date ORDER BY l.due_date, l.id`
	return r.queryLoans(ctx, selectLoan+q, today)
}

func (r *repo) queryLoans(ctx context.Context, q string, args ...any) ([]model.Loan, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errs.Storage(err, "query loans")
	}
	defer rows.Close()

	var out []model.Loan
	for rows.Next() {
		var l model.Loan
		if err := rows.Scan(
			&l.ID, &l.BookID, &l.MemberID, &l.LoanDate, &l.DueDate,
			&l.ReturnDate, &l.FineAmount, &l.Status, &l.BookTitle, &l.MemberName,
		); err != nil {
			return nil, errs.Storage(err, "scan loan")
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Storage(err, "query loans")
	}
	return out, nil
}

func (r *repo) CountActiveByMember(ctx context.Context, tx *sql.Tx, memberID int64) (int, error) {
	const q = `SELECT COUNT(*) FROM loans l WHERE l.member_id = $1 AND ` + openLoan
	var n int
	if err := tx.QueryRowContext(ctx, q, memberID).Scan(&n); err != nil {
		return 0, errs.Storage(err, "count active loans for member %d", memberID)
	}
	return n, nil
}

func (r *repo) CountOpenByBook(ctx context.Context, tx *sql.Tx, bookID int64) (int, error) {
	const q = `SELECT COUNT(*) FROM loans l WHERE l.book_id = $1 AND ` + openLoan
	var n int
	if err := tx.QueryRowContext(ctx, q, bookID).Scan(&n); err != nil {
		return 0, errs.Storage(err, "count open loans for book %d", bookID)
	}
	return n, nil
}

func (r *repo) CountActive(ctx context.Context, tx *sql.Tx) (int, error) {
	const q = `SELECT COUNT(*) FROM loans l WHERE ` + openLoan
	var n int
	if err := tx.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, errs.Storage(err, "count active loans")
	}
	return n, nil
}

func (r *repo) CountOverdue(ctx context.Context, tx *sql.Tx, today time.Time) (int, error) {
	const q = `SELECT COUNT(*) FROM loans l WHERE ` + openLoan + ` AND l.due_date < $1::date`
	var n int
	if err := tx.QueryRowContext(ctx, q, today).Scan(&n); err != nil {
		return 0, errs.Storage(err, "count overdue loans")
	}
	return n, nil
}

func (r *repo) OverdueTotals(ctx context.Context, tx *sql.Tx) (int, decimal.Decimal, error) {
	const q = `
		SELECT COUNT(*), COALESCE(SUM(l.fine_amount), 0)
		FROM loans l
		WHERE l.status = 'OVERDUE' AND l.return_date IS NULL`
	var n int
	var total decimal.Decimal
	if err := tx.QueryRowContext(ctx, q).Scan(&n, &total); err != nil {
		return 0, decimal.Zero, errs.Storage(err, "total outstanding fines")
	}
	return n, total, nil
}
