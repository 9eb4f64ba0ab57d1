package handler

import (
	"net/http"

	"anoa.com/hrpayroll/internal/service"
	"anoa.com/hrpayroll/pkg/response"
	"github.com/gin-gonic/gin"
)

type TaxRateHandler struct {
	taxRateService service.TaxRateService
}

func NewTaxRateHandler(taxRateService service.TaxRateService) *TaxRateHandler {
	return &TaxRateHandler{taxRateService: taxRateService}
}

func (h *TaxRateHandler) Create(c *gin.Context) {
	var input service.TaxRateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	rate, err := h.taxRateService.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, rate)
}

func (h *TaxRateHandler) Update(c *gin.Context) {
	var input service.TaxRateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	rate, err := h.taxRateService.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, rate)
}

func (h *TaxRateHandler) List(c *gin.Context) {
	rates, err := h.taxRateService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, rates)
}

func (h *TaxRateHandler) Delete(c *gin.Context) {
	if err := h.taxRateService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "tax rate deleted")
}
