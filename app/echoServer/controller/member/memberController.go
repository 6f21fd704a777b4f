package member

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

// POST /v1/members
// @Summary  Register member
// @Tags     members
// @Accept   json
// @Produce  json
// @Param    payload  body  MemberReq  true  "Member payload"
// @Success  201  {object}  model.Member
// @Router   /v1/members [post]
func (ct *Controller) Create(c echo.Context) error {
	var req MemberReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	m := &model.Member{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		MembershipType: model.MembershipType(req.MembershipType),
	}
	if err := ct.Svc.RegisterMember(c.Request().Context(), m); err != nil {
		return respond.Error(c, ct.Log, err)
	}
	return c.JSON(http.StatusCreated, m)
}

// GET /v1/members
func (ct *Controller) List(c echo.Context) error {
	rows, err := ct.Svc.ListMembers(c.Request().Context())
	if err != nil {
		return respond.Error(c, ct.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/members/:id
func (ct *Controller) Detail(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	m, err := ct.Svc.GetMember(c.Request().Context(), id)
	if err != nil {
		return respond.Error(c, ct.Log, err)
	}
	return c.JSON(http.StatusOK, m)
}

// GET /v1/members/:id/loans
// Full loan history plus active-loan and fine totals.
func (ct *Controller) Loans(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	sum, err := ct.Svc.GetMemberLoanSummary(c.Request().Context(), id)
	if err != nil {
		return respond.Error(c, ct.Log, err)
	}
	return c.JSON(http.StatusOK, sum)
}

// PUT /v1/members/:id
func (ct *Controller) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req MemberReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	m := &model.Member{
		ID:             id,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		MembershipType: model.MembershipType(req.MembershipType),
	}
	if err := ct.Svc.UpdateMember(c.Request().Context(), m); err != nil {
		return respond.Error(c, ct.Log, err)
	}
	return c.JSON(http.StatusOK, m)
}

// DELETE /v1/members/:id
func (ct *Controller) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := ct.Svc.DeleteMember(c.Request().Context(), id); err != nil {
		return respond.Error(c, ct.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}
