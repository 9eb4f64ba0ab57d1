package handler

import (
	"net/http"

	"anoa.com/hrpayroll/internal/service"
	"anoa.com/hrpayroll/pkg/response"
	"github.com/gin-gonic/gin"
)

type ContractHandler struct {
	contractService service.ContractService
}

func NewContractHandler(contractService service.ContractService) *ContractHandler {
	return &ContractHandler{contractService: contractService}
}

// Mine returns the authenticated employee's own contract.
func (h *ContractHandler) Mine(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	contract, err := h.contractService.GetByUser(c.Request.Context(), userID.String())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, contract)
}

func (h *ContractHandler) Get(c *gin.Context) {
	contract, err := h.contractService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, contract)
}

func (h *ContractHandler) Update(c *gin.Context) {
	var input service.UpdateContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	contract, err := h.contractService.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, contract)
}

func (h *ContractHandler) SetBenefits(c *gin.Context) {
	var input service.SetBenefitsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	contract, err := h.contractService.SetBenefits(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, contract)
}

func (h *ContractHandler) ListBenefits(c *gin.Context) {
	benefits, err := h.contractService.ListBenefits(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, benefits)
}
