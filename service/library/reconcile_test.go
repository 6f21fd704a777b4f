package library

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"libraryms/model"
)

// openLoans is a minimal stateful loan store: RefreshOverdue recomputes
// fines exactly the way the SQL sweep does, so running it repeatedly lets
// the tests check convergence.
type openLoans struct {
	loans []*model.Loan
}

func (o *openLoans) refresh(rate decimal.Decimal, today time.Time) int64 {
	var updated int64
	for _, l := range o.loans {
		if l.Status == model.LoanReturned || !l.DueDate.Before(today) {
			continue
		}
		l.FineAmount = l.CalculateFine(rate, today)
		l.Status = model.LoanOverdue
		updated++
	}
	return updated
}

func (o *openLoans) totals() (int, decimal.Decimal) {
	n, sum := 0, decimal.Zero
	for _, l := range o.loans {
		if l.Status == model.LoanOverdue {
			n++
			sum = sum.Add(l.FineAmount)
		}
	}
	return n, sum
}

func reconcileService(store *openLoans) *service {
	loans := &loanRepoMock{
		refreshFn: func(ctx context.Context, tx *sql.Tx, rate decimal.Decimal, today time.Time) (int64, error) {
			return store.refresh(rate, today), nil
		},
		overdueTotalsFn: func(ctx context.Context, tx *sql.Tx) (int, decimal.Decimal, error) {
			n, sum := store.totals()
			return n, sum, nil
		},
	}
	return newTestService(nil, nil, nil, loans)
}

func TestProcessDailyReconciliation(t *testing.T) {
	store := &openLoans{loans: []*model.Loan{
		{ID: 1, Status: model.LoanActive, DueDate: testDate(2024, time.January, 10)}, // 5 days late
		{ID: 2, Status: model.LoanActive, DueDate: testDate(2024, time.January, 13)}, // 2 days late
		{ID: 3, Status: model.LoanActive, DueDate: testDate(2024, time.January, 20)}, // not due yet
		{ID: 4, Status: model.LoanReturned, DueDate: testDate(2024, time.January, 1)},
	}}

	s := reconcileService(store)
	res, err := s.ProcessDailyReconciliation(context.Background())

	require.NoError(t, err)
	require.Equal(t, int64(2), res.LoansUpdated)
	require.Equal(t, 2, res.OverdueLoans)
	require.True(t, res.OutstandingFines.Equal(decimal.RequireFromString("7.00")), "got %s", res.OutstandingFines)

	require.Equal(t, model.LoanOverdue, store.loans[0].Status)
	require.Equal(t, model.LoanOverdue, store.loans[1].Status)
	require.Equal(t, model.LoanActive, store.loans[2].Status)
	require.Equal(t, model.LoanReturned, store.loans[3].Status)
}

func TestProcessDailyReconciliation_IdempotentWithinADay(t *testing.T) {
	store := &openLoans{loans: []*model.Loan{
		{ID: 1, Status: model.LoanActive, DueDate: testDate(2024, time.January, 10)},
		{ID: 2, Status: model.LoanOverdue, DueDate: testDate(2024, time.January, 12),
			FineAmount: decimal.RequireFromString("3.00")},
	}}

	s := reconcileService(store)

	first, err := s.ProcessDailyReconciliation(context.Background())
	require.NoError(t, err)
	second, err := s.ProcessDailyReconciliation(context.Background())
	require.NoError(t, err)

	require.Equal(t, first.OverdueLoans, second.OverdueLoans)
	require.True(t, first.OutstandingFines.Equal(second.OutstandingFines),
		"first %s, second %s", first.OutstandingFines, second.OutstandingFines)
	// Fines are recomputed from due date and today, never accumulated.
	require.True(t, store.loans[0].FineAmount.Equal(decimal.RequireFromString("5.00")))
	require.True(t, store.loans[1].FineAmount.Equal(decimal.RequireFromString("3.00")))
}

func TestGetLibraryStatistics(t *testing.T) {
	authors := &authorRepoMock{
		countFn: func(ctx context.Context, tx *sql.Tx) (int, error) { return 4, nil },
	}
	books := &bookRepoMock{
		countFn:       func(ctx context.Context, tx *sql.Tx) (int, error) { return 12, nil },
		totalCopiesFn: func(ctx context.Context, tx *sql.Tx) (int, error) { return 30, nil },
	}
	members := &memberRepoMock{
		countFn: func(ctx context.Context, tx *sql.Tx) (int, error) { return 25, nil },
	}
	loans := &loanRepoMock{
		countActiveFn: func(ctx context.Context, tx *sql.Tx) (int, error) { return 7, nil },
		countOverdueFn: func(ctx context.Context, tx *sql.Tx, today time.Time) (int, error) {
			require.Equal(t, testDate(2024, time.January, 15), today)
			return 2, nil
		},
	}

	s := newTestService(authors, books, members, loans)
	stats, err := s.GetLibraryStatistics(context.Background())

	require.NoError(t, err)
	require.Equal(t, &Statistics{
		TotalAuthors: 4,
		TotalBooks:   12,
		TotalCopies:  30,
		TotalMembers: 25,
		ActiveLoans:  7,
		OverdueLoans: 2,
	}, stats)
}
