package handler

import (
	"net/http"

	"anoa.com/hrpayroll/internal/service"
	"anoa.com/hrpayroll/pkg/response"
	"github.com/gin-gonic/gin"
)

// EmployeeHandler exposes the administrative employee CRUD surface.
type EmployeeHandler struct {
	employeeService service.EmployeeService
}

func NewEmployeeHandler(employeeService service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var input service.CreateEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.employeeService.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	user, err := h.employeeService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *EmployeeHandler) List(c *gin.Context) {
	users, err := h.employeeService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	var input service.UpdateEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.employeeService.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	if err := h.employeeService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "employee deleted")
}
