package book

import "github.com/shopspring/decimal"

type BookReq struct {
	Title           string           `json:"title" validate:"required"`
	ISBN            string           `json:"isbn" validate:"required"`
	PublicationYear *int             `json:"publication_year" validate:"omitempty,gt=0"`
	Price           *decimal.Decimal `json:"price"`
	CopiesAvailable int              `json:"copies_available" validate:"gte=0"`
	AuthorID        int64            `json:"author_id" validate:"required,gt=0"`
}
