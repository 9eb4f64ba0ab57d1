package handler

import (
	"net/http"

	"anoa.com/hrpayroll/internal/service"
	"anoa.com/hrpayroll/pkg/response"
	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	invoiceService  service.InvoiceService
	contractService service.ContractService
}

func NewInvoiceHandler(invoiceService service.InvoiceService, contractService service.ContractService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService:  invoiceService,
		contractService: contractService,
	}
}

// Issue creates an invoice from multipart form data. The invoice document
// itself is optional; a PDF is generated when none is uploaded.
func (h *InvoiceHandler) Issue(c *gin.Context) {
	var input service.IssueInvoiceInput
	if err := c.ShouldBind(&input); err != nil {
		bindError(c, err)
		return
	}

	var file *service.InvoiceFile
	if fileHeader, err := c.FormFile("file"); err == nil && fileHeader != nil {
		f, err := fileHeader.Open()
		if err != nil {
			bindError(c, err)
			return
		}
		defer f.Close()

		file = &service.InvoiceFile{
			Reader:   f,
			FileName: fileHeader.Filename,
		}
	}

	invoice, err := h.invoiceService.Issue(c.Request.Context(), input, file)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, invoice)
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	invoice, err := h.invoiceService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandler) ListByContract(c *gin.Context) {
	invoices, err := h.invoiceService.ListByContract(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, invoices)
}

// Mine lists the invoices issued against the authenticated employee's
// contract.
func (h *InvoiceHandler) Mine(c *gin.Context) {
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

	invoices, err := h.invoiceService.ListByContract(c.Request.Context(), contract.ID.String())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, invoices)
}
