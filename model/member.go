// model/member.go
package model

import "time"

type MembershipType string

const (
	MembershipBasic   MembershipType = "BASIC"
	MembershipPremium MembershipType = "PREMIUM"
)

func (t MembershipType) Valid() bool {
	return t == MembershipBasic || t == MembershipPremium
}

type Member struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone"`
	JoinDate       time.Time      `json:"join_date"`
	MembershipType MembershipType `json:"membership_type"`
}

// MaxBooksAllowed is the loan cap for the membership tier.
func (m *Member) MaxBooksAllowed() int {
	if m.MembershipType == MembershipPremium {
		return 10
	}
	return 3
}

// LoanDurationDays is how long a newly issued loan runs before it is due.
func (m *Member) LoanDurationDays() int {
	if m.MembershipType == MembershipPremium {
		return 21
	}
	return 14
}
