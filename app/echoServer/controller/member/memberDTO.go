package member

type MemberReq struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required"`
	MembershipType string `json:"membership_type" validate:"omitempty,oneof=BASIC PREMIUM"`
}
