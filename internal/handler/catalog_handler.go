package handler

import (
	"net/http"

	"anoa.com/hrpayroll/internal/service"
	"anoa.com/hrpayroll/pkg/response"
	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) Create(c *gin.Context) {
	var input service.CreateServiceInput
	if err := c.ShouldBind(&input); err != nil {
		bindError(c, err)
		return
	}

	image, cleanup, err := formImage(c, "image")
	if err != nil {
		bindError(c, err)
		return
	}
	defer cleanup()

	svc, err := h.catalogService.Create(c.Request.Context(), input, image)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, svc)
}

func (h *CatalogHandler) Update(c *gin.Context) {
	var input service.UpdateServiceInput
	if err := c.ShouldBind(&input); err != nil {
		bindError(c, err)
		return
	}

	image, cleanup, err := formImage(c, "image")
	if err != nil {
		bindError(c, err)
		return
	}
	defer cleanup()

	svc, err := h.catalogService.Update(c.Request.Context(), c.Param("id"), input, image)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, svc)
}

func (h *CatalogHandler) Get(c *gin.Context) {
	svc, err := h.catalogService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, svc)
}

func (h *CatalogHandler) List(c *gin.Context) {
	services, err := h.catalogService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *CatalogHandler) Delete(c *gin.Context) {
	if err := h.catalogService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "service deleted")
}
