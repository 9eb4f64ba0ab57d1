package handler

import (
	"net/http"

	"anoa.com/hrpayroll/internal/service"
	"anoa.com/hrpayroll/pkg/apperror"
	"anoa.com/hrpayroll/pkg/response"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input service.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Activate(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, apperror.ErrBadRequest)
		return
	}

	if err := h.authService.Activate(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "account activated")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input service.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var input service.PasswordResetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	if err := h.authService.RequestPasswordReset(c.Request.Context(), input); err != nil {
		response.Error(c, err)
		return
	}

	// Deliberately identical for known and unknown addresses.
	response.Message(c, http.StatusOK, "if the address is registered, a reset code has been sent")
}

func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var input service.PasswordResetConfirmInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	if err := h.authService.ConfirmPasswordReset(c.Request.Context(), input); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "password updated")
}
