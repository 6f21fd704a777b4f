package library

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"libraryms/errs"
	"libraryms/model"
)

// IssueBook creates a loan and takes one copy off the shelf in a single
// transaction. The member row lock serializes the loan-limit check; the
// conditional decrement serializes availability. Either both writes land
// or neither does.
func (s *service) IssueBook(ctx context.Context, bookID, memberID int64) (int64, error) {
	var loanID int64
	err := s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		member, err := s.members.LockForUpdate(ctx, tx, memberID)
		if err != nil {
			return err
		}

		copies, err := s.books.AvailableCopies(ctx, tx, bookID)
		if err != nil {
			return err
		}
		if copies <= 0 {
			return errs.Unavailable("book %d has no copies available", bookID)
		}

		active, err := s.loans.CountActiveByMember(ctx, tx, memberID)
		if err != nil {
			return err
		}
		if active >= member.MaxBooksAllowed() {
			return errs.LoanLimit("member %d has reached the loan limit (%d books)",
				memberID, member.MaxBooksAllowed())
		}

		today := s.today()
		loan := &model.Loan{
			BookID:     bookID,
			MemberID:   memberID,
			LoanDate:   today,
			DueDate:    today.AddDate(0, 0, member.LoanDurationDays()),
			FineAmount: decimal.Zero,
			Status:     model.LoanActive,
		}
		id, err := s.loans.Insert(ctx, tx, loan)
		if err != nil {
			return err
		}

		ok, err := s.books.DecrementAvailable(ctx, tx, bookID)
		if err != nil {
			return err
		}
		if !ok {
			// Lost the last copy to a concurrent issue; roll everything back.
			return errs.Unavailable("book %d has no copies available", bookID)
		}

		loanID = id
		return nil
	})
	if err != nil {
		return 0, err
	}
	return loanID, nil
}

// ReturnBook freezes the fine as of today, closes the loan and puts the
// copy back on the shelf, atomically.
func (s *service) ReturnBook(ctx context.Context, loanID int64) (decimal.Decimal, error) {
	var fine decimal.Decimal
	err := s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		loan, err := s.loans.LockForUpdate(ctx, tx, loanID)
		if err != nil {
			return err
		}
		if loan.Status == model.LoanReturned {
			return errs.NotFound("loan %d is already returned", loanID)
		}

		today := s.today()
		fine = loan.CalculateFine(s.fineRate, today)

		if err := s.loans.MarkReturned(ctx, tx, loanID, today, fine); err != nil {
			return err
		}
		return s.books.IncrementAvailable(ctx, tx, loan.BookID)
	})
	if err != nil {
		return decimal.Zero, err
	}
	return fine, nil
}

func (s *service) GetLoan(ctx context.Context, id int64) (*model.Loan, error) {
	return s.loans.ByID(ctx, id)
}

func (s *service) ListActiveLoans(ctx context.Context) ([]model.Loan, error) {
	return s.loans.ListActive(ctx)
}

func (s *service) ListOverdueLoans(ctx context.Context) ([]model.Loan, error) {
	return s.loans.ListOverdue(ctx, s.today())
}
