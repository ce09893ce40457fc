package student

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"librarydesk/model"
	studentsvc "librarydesk/service/student"
)

type Controller struct {
	Svc studentsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/students
func (h *Controller) Create(c echo.Context) error {
	var req StudentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	st := &model.Student{
		Name:        req.Name,
		Department:  req.Department,
		RollNo:      req.RollNo,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
	}
	if err := h.Svc.Create(c.Request().Context(), st); err != nil {
		h.Log.Error("student create", "err", err)
		switch {
		case errors.Is(err, studentsvc.ErrRollNoTaken):
			return c.JSON(http.StatusConflict, echo.Map{"message": "roll number already registered"})
		case errors.Is(err, studentsvc.ErrBadInput):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": st})
}

// GET /v1/students
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("student list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"results": len(rows), "data": rows})
}

// GET /v1/students/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	st, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, studentsvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "student not found"})
		}
		h.Log.Error("student detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": st})
}

// PUT /v1/students/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req StudentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	st := &model.Student{
		ID:          id,
		Name:        req.Name,
		Department:  req.Department,
		RollNo:      req.RollNo,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
	}
	if err := h.Svc.Update(c.Request().Context(), st); err != nil {
		h.Log.Error("student update", "err", err, "id", id)
		switch {
		case errors.Is(err, studentsvc.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "student not found"})
		case errors.Is(err, studentsvc.ErrRollNoTaken):
			return c.JSON(http.StatusConflict, echo.Map{"message": "roll number already registered"})
		case errors.Is(err, studentsvc.ErrBadInput):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"data": st})
}

// DELETE /v1/students/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, studentsvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "student not found"})
		}
		h.Log.Error("student delete", "err", err, "id", id)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.NoContent(http.StatusNoContent)
}
