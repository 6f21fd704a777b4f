package loan

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"libraryms/app/echoServer/controller/respond"
	"libraryms/app/echoServer/jwtx"
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

// POST /v1/loans
// @Summary  Issue book
// @Tags     loans
// @Accept   json
// @Produce  json
// @Param    payload  body  IssueLoanReq  true  "Issue payload"
// @Success  201  {object}  map[string]any
// @Failure  409  {object}  map[string]any "no copies available"
// @Failure  422  {object}  map[string]any "loan limit reached"
// @Router   /v1/loans [post]
func (ct *Controller) Issue(c echo.Context) error {
	var req IssueLoanReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	id, err := ct.Svc.IssueBook(c.Request().Context(), req.BookID, req.MemberID)
	if err != nil {
		return respond.Error(c, ct.Log, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"loan_id": id, "status": "ACTIVE"})
}

// POST /v1/loans/:id/return
// @Summary  Return book
// @Tags     loans
// @Produce  json
// @Param    id  path  int  true  "Loan id"
// @Success  200  {object}  map[string]any
// @Failure  404  {object}  map[string]any "unknown or already returned"
// @Router   /v1/loans/{id}/return [post]
func (ct *Controller) Return(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	fine, err := ct.Svc.ReturnBook(c.Request().Context(), id)
	if err != nil {
		return respond.Error(c, ct.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "returned", "fine_amount": fine})
}

// GET /v1/loans/:id
func (ct *Controller) Detail(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	l, err := ct.Svc.GetLoan(c.Request().Context(), id)
	if err != nil {
		return respond.Error(c, ct.Log, err)
	}
	return c.JSON(http.StatusOK, l)
}

// GET /v1/loans/active
func (ct *Controller) ListActive(c echo.Context) error {
	rows, err := ct.Svc.ListActiveLoans(c.Request().Context())
	if err != nil {
		return respond.Error(c, ct.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/loans/overdue
func (ct *Controller) ListOverdue(c echo.Context) error {
	rows, err := ct.Svc.ListOverdueLoans(c.Request().Context())
	if err != nil {
		return respond.Error(c, ct.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// POST /v1/reconciliation
// @Summary  Run the daily overdue sweep
// @Tags     operations
// @Produce  json
// @Success  200  {object}  librarysvc.ReconciliationResult
// @Router   /v1/reconciliation [post]
func (ct *Controller) Reconcile(c echo.Context) error {
	res, err := ct.Svc.ProcessDailyReconciliation(c.Request().Context())
	if err != nil {
		return respond.Error(c, ct.Log, err)
	}
	staffID, _ := jwtx.StaffIDFromContext(c)
	ct.Log.Info("daily reconciliation",
		"staff_id", staffID,
		"loans_updated", res.LoansUpdated,
		"overdue_loans", res.OverdueLoans,
		"outstanding_fines", res.OutstandingFines,
	)
	return c.JSON(http.StatusOK, res)
}

// GET /v1/statistics
func (ct *Controller) Statistics(c echo.Context) error {
	stats, err := ct.Svc.GetLibraryStatistics(c.Request().Context())
	if err != nil {
		return respond.Error(c, ct.Log, err)
	}
	return c.JSON(http.StatusOK, stats)
}
