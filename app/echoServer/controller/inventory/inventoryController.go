package inventory

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"librarymgmt/model"
	inventorysvc "librarymgmt/service/inventory"
	"librarymgmt/util/query"
)

type Controller struct {
	Svc inventorysvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /api/inventory
func (h *Controller) List(c echo.Context) error {
	f, err := query.One(
		query.ID(c.QueryParam("_id")),
		query.Title(c.QueryParam("title")),
	)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	rows, err := h.Svc.List(c.Request().Context(), f)
	if err != nil {
		h.Log.Error("inventory list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if rows == nil {
		rows = []model.Inventory{}
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /api/inventory/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	row, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		h.Log.Error("inventory detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if row == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	}
	return c.JSON(http.StatusOK, row)
}

// POST /api/inventory
func (h *Controller) Create(c echo.Context) error {
	var req CreateInventoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	bookID, _ := uuid.Parse(req.BookID)

	if err := h.Svc.Create(c.Request().Context(), bookID, req.Title, req.Total); err != nil {
		switch {
		case errors.Is(err, inventorysvc.ErrBookMissing):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "no such book"})
		case errors.Is(err, inventorysvc.ErrInconsistent):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		default:
			h.Log.Error("inventory create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"_id": bookID})
}

// PATCH /api/inventory/:id
func (h *Controller) Patch(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	var req PatchInventoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	row, err := h.Svc.Override(c.Request().Context(), id, inventorysvc.Patch{
		Title:     req.Title,
		Total:     req.Total,
		Available: req.Available,
		Borrowed:  req.Borrowed,
	})
	if err != nil {
		switch {
		case errors.Is(err, inventorysvc.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
		case errors.Is(err, inventorysvc.ErrInconsistent):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		default:
			h.Log.Error("inventory patch", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, row)
}
