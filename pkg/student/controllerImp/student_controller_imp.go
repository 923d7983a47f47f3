package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"campus/pkg/student/controller"
	"campus/pkg/student/service"
)

type StudentCtrl struct{ svc service.StudentService }

func New(svc service.StudentService) controller.StudentController { return &StudentCtrl{svc} }

func (h *StudentCtrl) Create(c echo.Context) error {
	var req service.CreateStudent
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	st, err := h.svc.Add(req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, st)
}

func (h *StudentCtrl) Get(c echo.Context) error {
	st, err := h.svc.Get(c.Param("student_id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if st == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "student not found"})
	}
	return c.JSON(http.StatusOK, st)
}

func (h *StudentCtrl) Update(c echo.Context) error {
	var fields map[string]string
	if err := c.Bind(&fields); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	st, err := h.svc.UpdateFields(c.Param("student_id"), fields)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if st == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "student not found"})
	}
	return c.JSON(http.StatusOK, st)
}

func (h *StudentCtrl) Delete(c echo.Context) error {
	ok, err := h.svc.Delete(c.Param("student_id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "student not found"})
	}
	return c.JSON(http.StatusOK, map[string]bool{"deleted": true})
}

func (h *StudentCtrl) List(c echo.Context) error {
	students, err := h.svc.List()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"students": students, "total": len(students)})
}

func (h *StudentCtrl) Analytics(c echo.Context) error {
	total, err := h.svc.Total()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	byDept, err := h.svc.ByDepartment()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	recent, err := h.svc.Recent(5)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	active, err := h.svc.ActiveLast7Days()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"total_students":     total,
		"by_department":      byDept,
		"recent_students":    recent,
		"active_last_7_days": active,
	})
}
