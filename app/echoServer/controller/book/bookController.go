package book

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"libraryms/app/echoServer/controller/respond"
	"libraryms/model"
	librarysvc "libraryms/service/library"
)

type Controller struct {
	Svc librarysvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func fromReq(id int64, req BookReq) *model.Book {
	return &model.Book{
		ID:              id,
		Title:           req.Title,
		ISBN:            req.ISBN,
		PublicationYear: req.PublicationYear,
		Price:           req.Price,
		CopiesAvailable: req.CopiesAvailable,
		AuthorID:        req.AuthorID,
	}
}

// POST /v1/books
// @Summary  Add book
// @Tags     books
// @Accept   json
// @Produce  json
// @Param    payload  body  BookReq  true  "Book payload"
// @Success  201  {object}  model.Book
// @Router   /v1/books [post]
func (ct *Controller) Create(c echo.Context) error {
	var req BookReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	b := fromReq(0, req)
	if err := ct.Svc.AddBook(c.Request().Context(), b); err != nil {
		return respond.Error(c, ct.Log, err)
	}
	return c.JSON(http.StatusCreated, b)
}

// GET /v1/books?q=term
// A blank q lists the whole catalog; otherwise titles are matched.
func (ct *Controller) List(c echo.Context) error {
	rows, err := ct.Svc.SearchBooks(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return respond.Error(c, ct.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/books/:id
func (ct *Controller) Detail(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	b, err := ct.Svc.GetBook(c.Request().Context(), id)
	if err != nil {
		return respond.Error(c, ct.Log, err)
	}
	return c.JSON(http.StatusOK, b)
}

// PUT /v1/books/:id
func (ct *Controller) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req BookReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	b := fromReq(id, req)
	if err := ct.Svc.UpdateBook(c.Request().Context(), b); err != nil {
		return respond.Error(c, ct.Log, err)
	}
	return c.JSON(http.StatusOK, b)
}

// DELETE /v1/books/:id
func (ct *Controller) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := ct.Svc.DeleteBook(c.Request().Context(), id); err != nil {
		return respond.Error(c, ct.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}
