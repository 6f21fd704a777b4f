// model/author.go
package model

type Author struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	BirthYear *int   `json:"birth_year,omitempty"`
	Biography string `json:"biography,omitempty"`
}
