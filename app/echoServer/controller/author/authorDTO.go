package author

type AuthorReq struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	BirthYear *int   `json:"birth_year" validate:"omitempty,gt=0"`
	Biography string `json:"biography"`
}
