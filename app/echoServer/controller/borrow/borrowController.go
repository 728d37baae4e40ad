package borrow

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"librarymgmt/app/echoServer/jwtx"
	"librarymgmt/model"
	borrowsvc "librarymgmt/service/borrow"
	"librarymgmt/util/query"
)

type Controller struct {
	Svc borrowsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /api/borrow
func (h *Controller) List(c echo.Context) error {
	f, err := query.One(
		query.ID(c.QueryParam("_id")),
		query.BookID(c.QueryParam("bookId")),
		query.Borrower(c.QueryParam("borrower")),
		query.ApprovedBy(c.QueryParam("approvedBy")),
		query.Title(c.QueryParam("title")),
	)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	rows, err := h.Svc.List(c.Request().Context(), f)
	if err != nil {
		h.Log.Error("borrow list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if rows == nil {
		rows = []model.Borrow{}
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /api/borrow/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	row, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		h.Log.Error("borrow detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if row == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	}
	return c.JSON(http.StatusOK, row)
}

// POST /api/borrow
func (h *Controller) Create(c echo.Context) error {
	approver, err := jwtx.ApproverID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	var req CreateBorrowReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	bookID, _ := uuid.Parse(req.BookID)
	borrower, _ := uuid.Parse(req.Borrower)

	out, err := h.Svc.Borrow(c.Request().Context(), bookID, borrower, req.PromisedReturnDate, approver)
	if err != nil {
		h.Log.Error("borrow create", "err", err)
		switch borrowsvc.Code(err) {
		case borrowsvc.ErrBookNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "missing book"})
		case borrowsvc.ErrNoCopies:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "no more available books!"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, out)
}
