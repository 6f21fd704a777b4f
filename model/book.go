// model/book.go
package model

import "github.com/shopspring/decimal"

type Book struct {
	ID              int64            `json:"id"`
	Title           string           `json:"title"`
	ISBN            string           `json:"isbn"`
	PublicationYear *int             `json:"publication_year,omitempty"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	CopiesAvailable int              `json:"copies_available"`
	AuthorID        int64            `json:"author_id"`
	AuthorName      string           `json:"author_name,omitempty"` // joined queries only
}
