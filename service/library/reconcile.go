package library

import (
	"context"
	"database/sql"
)

// ProcessDailyReconciliation recomputes fines and overdue statuses for all
// open loans. Fines are a pure function of due date and today, so the sweep
// is idempotent within a day and safe to run alongside issues and returns.
func (s *service) ProcessDailyReconciliation(ctx context.Context) (*ReconciliationResult, error) {
	res := &ReconciliationResult{}
	err := s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		updated, err := s.loans.RefreshOverdue(ctx, tx, s.fineRate, s.today())
		if err != nil {
			return err
		}
		count, total, err := s.loans.OverdueTotals(ctx, tx)
		if err != nil {
			return err
		}
		res.LoansUpdated = updated
		res.OverdueLoans = count
		res.OutstandingFines = total
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
