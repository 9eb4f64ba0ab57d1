package handler

import (
	"net/http"

	"anoa.com/hrpayroll/internal/service"
	"anoa.com/hrpayroll/pkg/response"
	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input service.PaymentMethodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	method, err := h.paymentService.Create(c.Request.Context(), userID.String(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, method)
}

func (h *PaymentHandler) List(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	methods, err := h.paymentService.List(c.Request.Context(), userID.String())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, methods)
}

func (h *PaymentHandler) Delete(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.paymentService.Delete(c.Request.Context(), userID.String(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "payment method deleted")
}
