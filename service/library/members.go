package library

import (
	"context"
	"database/sql"
	"strings"

	"libraryms/errs"
	"libraryms/model"
)

// RegisterMember validates the member before anything touches storage.
// The email check is deliberately structural, not RFC-complete.
func (s *service) RegisterMember(ctx context.Context, m *model.Member) error {
	if err := validateMember(m); err != nil {
		return err
	}
	if m.MembershipType == "" {
		m.MembershipType = model.MembershipBasic
	} else if !m.MembershipType.Valid() {
		return errs.Validation("unknown membership type %q", m.MembershipType)
	}
	if m.JoinDate.IsZero() {
		m.JoinDate = s.today()
	}
	return s.members.Create(ctx, m)
}

func (s *service) GetMember(ctx context.Context, id int64) (*model.Member, error) {
	return s.members.ByID(ctx, id)
}

func (s *service) ListMembers(ctx context.Context) ([]model.Member, error) {
	return s.members.List(ctx)
}

func (s *service) UpdateMember(ctx context.Context, m *model.Member) error {
	if err := validateMember(m); err != nil {
		return err
	}
	if !m.MembershipType.Valid() {
		return errs.Validation("unknown membership type %q", m.MembershipType)
	}
	ok, err := s.members.Update(ctx, m)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NotFound("member %d not found", m.ID)
	}
	return nil
}

// DeleteMember refuses to remove a member who still holds books.
func (s *service) DeleteMember(ctx context.Context, id int64) error {
	return s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		active, err := s.loans.CountActiveByMember(ctx, tx, id)
		if err != nil {
			return err
		}
		if active > 0 {
			return errs.Referential("member %d has %d active loans", id, active)
		}
		ok, err := s.members.Delete(ctx, tx, id)
		if err != nil {
			return err
		}
		if !ok {
			return errs.NotFound("member %d not found", id)
		}
		return nil
	})
}

func (s *service) GetMemberLoanSummary(ctx context.Context, memberID int64) (*MemberLoanSummary, error) {
	m, err := s.members.ByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	loans, err := s.loans.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	sum := &MemberLoanSummary{Member: m, Loans: loans, TotalLoans: len(loans)}
	for _, l := range loans {
		if l.Status != model.LoanReturned {
			sum.ActiveLoans++
		}
		sum.TotalFines = sum.TotalFines.Add(l.FineAmount)
	}
	return sum, nil
}

func validateMember(m *model.Member) error {
	if strings.TrimSpace(m.Name) == "" {
		return errs.Validation("member name is required")
	}
	if !isValidEmail(m.Email) {
		return errs.Validation("invalid email format: %q", m.Email)
	}
	if !isValidPhone(m.Phone) {
		return errs.Validation("phone number needs at least 10 digits")
	}
	return nil
}

func isValidEmail(email string) bool {
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}

func isValidPhone(phone string) bool {
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 10
}
