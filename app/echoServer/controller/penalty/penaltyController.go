package penalty

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"librarymgmt/app/echoServer/jwtx"
	"librarymgmt/model"
	penaltysvc "librarymgmt/service/penalty"
	"librarymgmt/util/query"
)

type Controller struct {
	Svc penaltysvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /api/penalty
func (h *Controller) List(c echo.Context) error {
	f, err := query.One(
		query.ID(c.QueryParam("_id")),
		query.BookID(c.QueryParam("bookId")),
		query.Borrower(c.QueryParam("borrower")),
		query.ApprovedBy(c.QueryParam("approvedBy")),
	)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	rows, err := h.Svc.List(c.Request().Context(), f)
	if err != nil {
		h.Log.Error("penalty list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if rows == nil {
		rows = []model.Penalty{}
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /api/penalty/value
func (h *Controller) Value(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"penalty": h.Svc.Rate()})
}

// GET /api/penalty/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	row, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		h.Log.Error("penalty detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if row == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	}
	return c.JSON(http.StatusOK, row)
}

// POST /api/penalty
func (h *Controller) Create(c echo.Context) error {
	approver, err := jwtx.ApproverID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	var req AddPenaltyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	borrowID, _ := uuid.Parse(req.BorrowID)
	bookID, _ := uuid.Parse(req.BookID)
	borrower, _ := uuid.Parse(req.Borrower)

	entry := model.Penalty{
		BorrowID: borrowID,
		BookID:   bookID,
		Title:    req.Title,
		Borrower: borrower,
		Penalty:  req.Penalty,
	}
	out, err := h.Svc.AddEntry(c.Request().Context(), entry, approver)
	if err != nil {
		switch {
		case errors.Is(err, penaltysvc.ErrBadPayload):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid penalty entry"})
		case errors.Is(err, penaltysvc.ErrDuplicate):
			return c.JSON(http.StatusConflict, echo.Map{"message": "penalty already recorded"})
		default:
			h.Log.Error("penalty create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, out)
}
