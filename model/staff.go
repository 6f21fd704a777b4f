package model

import "time"

// Staff is a librarian account used to authenticate API calls.
type Staff struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// StaffRegisterReq represents a staff registration payload.
// swagger:model StaffRegisterReq
type StaffRegisterReq struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// StaffLoginReq represents a staff login payload.
// swagger:model StaffLoginReq
type StaffLoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
