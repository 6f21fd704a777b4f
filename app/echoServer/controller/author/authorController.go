package author

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

// POST /v1/authors
// @Summary  Register author
// @Tags     authors
// @Accept   json
// @Produce  json
// @Param    payload  body  AuthorReq  true  "Author payload"
// @Success  201  {object}  model.Author
// @Router   /v1/authors [post]
func (ct *Controller) Create(c echo.Context) error {
	var req AuthorReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	a := &model.Author{
		Name:      req.Name,
		Email:     req.Email,
		BirthYear: req.BirthYear,
		Biography: req.Biography,
	}
	if err := ct.Svc.RegisterAuthor(c.Request().Context(), a); err != nil {
		return respond.Error(c, ct.Log, err)
	}
	return c.JSON(http.StatusCreated, a)
}

// GET /v1/authors
func (ct *Controller) List(c echo.Context) error {
	rows, err := ct.Svc.ListAuthors(c.Request().Context())
	if err != nil {
		return respond.Error(c, ct.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/authors/:id
func (ct *Controller) Detail(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	a, err := ct.Svc.GetAuthor(c.Request().Context(), id)
	if err != nil {
		return respond.Error(c, ct.Log, err)
	}
	return c.JSON(http.StatusOK, a)
}

// PUT /v1/authors/:id
func (ct *Controller) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req AuthorReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	a := &model.Author{
		ID:        id,
		Name:      req.Name,
		Email:     req.Email,
		BirthYear: req.BirthYear,
		Biography: req.Biography,
	}
	if err := ct.Svc.UpdateAuthor(c.Request().Context(), a); err != nil {
		return respond.Error(c, ct.Log, err)
	}
	return c.JSON(http.StatusOK, a)
}

// DELETE /v1/authors/:id
func (ct *Controller) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := ct.Svc.DeleteAuthor(c.Request().Context(), id); err != nil {
		return respond.Error(c, ct.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}
