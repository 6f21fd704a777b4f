package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"libraryms/app/echoServer/controller/respond"
	"libraryms/model"
	authsvc "libraryms/service/auth"
)

type Controller struct {
	Svc authsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Register a staff account
// @Summary      Register staff
// @Description  Create a librarian account and return a JWT
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        payload  body  model.StaffRegisterReq  true  "Register payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      409  {object}  map[string]any "email already registered"
// @Router       /v1/staff/register [post]
func (ct *Controller) Register(c echo.Context) error {
	var req model.StaffRegisterReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		ct.Log.Warn("validation failed", "path", c.Path(), "err", err)
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	st, token, err := ct.Svc.Register(c.Request().Context(), req)
	if err != nil {
		return respond.Error(c, ct.Log, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "registered",
		"staff":   st,
		"token":   token,
	})
}

// Login
// @Summary      Staff login
// @Description  Login with email + password, returns JWT
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        payload  body  model.StaffLoginReq  true  "Login payload"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /v1/staff/login [post]
func (ct *Controller) Login(c echo.Context) error {
	var req model.StaffLoginReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		ct.Log.Warn("validation failed", "path", c.Path(), "err", err)
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	_, token, err := ct.Svc.Login(c.Request().Context(), req)
	if err != nil {
		// Bad credentials come back as a validation code; answer 401 here
		// instead of the generic mapping.
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "login success",
		"token":   token,
	})
}
