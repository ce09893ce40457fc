package loan

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	ls "librarydesk/service/loan"
)

type Controller struct {
	Svc ls.Service
	V   *validator.Validate
	Log *slog.Logger
}

// parseDate accepts a bare date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// POST /v1/loans
func (h *Controller) Create(c echo.Context) error {
	var req CreateLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	issue := ls.IssueReq{
		StudentID: req.StudentID,
		BookID:    req.BookID,
		CopyID:    req.CopyID,
	}
	if req.IssueDate != "" {
		t, err := parseDate(req.IssueDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid issue_date"})
		}
		issue.IssueDate = t
	}
	due, err := parseDate(req.DueDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid due_date"})
	}
	issue.DueDate = due

	out, err := h.Svc.Issue(c.Request().Context(), issue)
	if err != nil {
		h.Log.Error("loan issue", "err", err)
		switch ls.Code(err) {
		case ls.ErrStudentNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "student not found"})
		case ls.ErrBookNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		case ls.ErrInvalidCopy:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "copy id not valid for this book"})
		case ls.ErrCopyTaken:
			return c.JSON(http.StatusConflict, echo.Map{"message": "copy already issued"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": out})
}

// GET /v1/loans
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("loan list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"results": len(rows), "data": rows})
}

// PUT /v1/loans/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	upd := ls.UpdateReq{
		StudentID: req.StudentID,
		BookID:    req.BookID,
		CopyID:    req.CopyID,
	}
	if req.IssueDate != nil {
		t, err := parseDate(*req.IssueDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid issue_date"})
		}
		upd.IssueDate = &t
	}
	if req.DueDate != nil {
		t, err := parseDate(*req.DueDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid due_date"})
		}
		upd.DueDate = &t
	}

	out, err := h.Svc.Update(c.Request().Context(), id, upd)
	if err != nil {
		h.Log.Error("loan update", "err", err, "id", id)
		switch ls.Code(err) {
		case ls.ErrLoanNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "loan not found"})
		case ls.ErrStudentNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "student not found"})
		case ls.ErrBookNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		case ls.ErrInvalidCopy:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "copy id not valid for this book"})
		case ls.ErrCopyTaken:
			return c.JSON(http.StatusConflict, echo.Map{"message": "copy already issued"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// PUT /v1/loans/:id/return
func (h *Controller) Return(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	out, err := h.Svc.Return(c.Request().Context(), id)
	if err != nil {
		h.Log.Error("loan return", "err", err, "id", id)
		switch ls.Code(err) {
		case ls.ErrLoanNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "loan not found"})
		case ls.ErrAlreadyReturned:
			return c.JSON(http.StatusConflict, echo.Map{"message": "loan already returned"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// DELETE /v1/loans/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		h.Log.Error("loan delete", "err", err, "id", id)
		switch ls.Code(err) {
		case ls.ErrLoanNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "loan not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
