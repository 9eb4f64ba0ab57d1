package handler

import (
	"net/http"

	"anoa.com/hrpayroll/internal/service"
	"anoa.com/hrpayroll/pkg/validator"
	"github.com/gin-gonic/gin"
)

// bindError writes a 400 with a human readable validation message.
func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
}

// formImage opens an optional multipart image field. The returned cleanup
// func is always safe to defer; image is nil when the field is absent.
func formImage(c *gin.Context, field string) (*service.ImageFile, func(), error) {
	fileHeader, err := c.FormFile(field)
	if err != nil || fileHeader == nil {
		return nil, func() {}, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, func() {}, err
	}

	image := &service.ImageFile{
		Reader:   file,
		FileName: fileHeader.Filename,
	}
	return image, func() { file.Close() }, nil
}
