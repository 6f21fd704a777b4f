package loan

type IssueLoanReq struct {
	BookID   int64 `json:"book_id" validate:"required,gt=0"`
	MemberID int64 `json:"member_id" validate:"required,gt=0"`
}
