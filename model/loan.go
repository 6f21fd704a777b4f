// model/loan.go
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type LoanStatus string

const (
	LoanActive   LoanStatus = "ACTIVE"
	LoanOverdue  LoanStatus = "OVERDUE"
	LoanReturned LoanStatus = "RETURNED"
)

type Loan struct {
	ID         int64           `json:"id"`
	BookID     int64           `json:"book_id"`
	MemberID   int64           `json:"member_id"`
	LoanDate   time.Time       `json:"loan_date"`
	DueDate    time.Time       `json:"due_date"`
	ReturnDate *time.Time      `json:"return_date,omitempty"`
	FineAmount decimal.Decimal `json:"fine_amount"`
	Status     LoanStatus      `json:"status"`
	BookTitle  string          `json:"book_title,omitempty"`  // joined queries only
	MemberName string          `json:"member_name,omitempty"` // joined queries only
}

// IsOverdue reports whether the loan is unreturned and past due as of today.
func (l *Loan) IsOverdue(today time.Time) bool {
	if l.Status == LoanReturned {
		return false
	}
	return l.DaysOverdue(today) > 0
}

// DaysOverdue is the calendar-day difference between the due date and today.
// Zero when the loan is returned or not yet past due.
func (l *Loan) DaysOverdue(today time.Time) int {
	if l.Status == LoanReturned {
		return 0
	}
	days := int(dateOnly(today).Sub(dateOnly(l.DueDate)) / (24 * time.Hour))
	if days < 0 {
		return 0
	}
	return days
}

// CalculateFine is dailyRate times the days overdue, recomputed from scratch
// so repeated sweeps on the same day converge on the same value.
func (l *Loan) CalculateFine(dailyRate decimal.Decimal, today time.Time) decimal.Decimal {
	days := l.DaysOverdue(today)
	if days <= 0 {
		return decimal.Zero
	}
	return dailyRate.Mul(decimal.NewFromInt(int64(days)))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
