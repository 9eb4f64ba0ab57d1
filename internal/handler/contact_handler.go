package handler

import (
	"net/http"

	"anoa.com/hrpayroll/internal/service"
	"anoa.com/hrpayroll/pkg/response"
	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactService service.ContactService
}

func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var input service.ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	if err := h.contactService.Submit(c.Request.Context(), input); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusCreated, "message received")
}
