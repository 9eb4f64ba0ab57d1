package handler

import (
	"net/http"

	"anoa.com/hrpayroll/internal/service"
	"anoa.com/hrpayroll/pkg/response"
	"github.com/gin-gonic/gin"
)

// OnboardingHandler drives the multi-step hiring wizard. Each step is saved
// independently; Complete materializes the account.
type OnboardingHandler struct {
	onboardingService service.OnboardingService
}

func NewOnboardingHandler(onboardingService service.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{onboardingService: onboardingService}
}

func (h *OnboardingHandler) Start(c *gin.Context) {
	id, err := h.onboardingService.Start(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"wizard_id": id})
}

func (h *OnboardingHandler) SaveEmail(c *gin.Context) {
	var input service.WizardEmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	if err := h.onboardingService.SaveEmail(c.Request.Context(), c.Param("id"), input); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "step saved")
}

func (h *OnboardingHandler) SaveBasic(c *gin.Context) {
	var input service.WizardBasicInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	if err := h.onboardingService.SaveBasic(c.Request.Context(), c.Param("id"), input); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "step saved")
}

func (h *OnboardingHandler) SaveContact(c *gin.Context) {
	var input service.WizardContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	if err := h.onboardingService.SaveContact(c.Request.Context(), c.Param("id"), input); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "step saved")
}

func (h *OnboardingHandler) SaveContract(c *gin.Context) {
	var input service.WizardContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	if err := h.onboardingService.SaveContract(c.Request.Context(), c.Param("id"), input); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "step saved")
}

func (h *OnboardingHandler) SaveBenefits(c *gin.Context) {
	var input service.WizardBenefitsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	if err := h.onboardingService.SaveBenefits(c.Request.Context(), c.Param("id"), input); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "step saved")
}

func (h *OnboardingHandler) SavePayment(c *gin.Context) {
	var input service.PaymentMethodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	if err := h.onboardingService.SavePayment(c.Request.Context(), c.Param("id"), input); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "step saved")
}

func (h *OnboardingHandler) Complete(c *gin.Context) {
	user, err := h.onboardingService.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}
