package library

import (
	"context"
	"database/sql"
)

// GetLibraryStatistics gathers the counts in one transaction so the report
// is a consistent snapshot without locking any entity rows.
func (s *service) GetLibraryStatistics(ctx context.Context) (*Statistics, error) {
	stats := &Statistics{}
	err := s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		var err error
		if stats.TotalAuthors, err = s.authors.Count(ctx, tx); err != nil {
			return err
		}
		if stats.TotalBooks, err = s.books.Count(ctx, tx); err != nil {
			return err
		}
		if stats.TotalCopies, err = s.books.TotalCopies(ctx, tx); err != nil {
			return err
		}
		if stats.TotalMembers, err = s.members.Count(ctx, tx); err != nil {
			return err
		}
		if stats.ActiveLoans, err = s.loans.CountActive(ctx, tx); err != nil {
			return err
		}
		stats.OverdueLoans, err = s.loans.CountOverdue(ctx, tx, s.today())
		return err
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}
