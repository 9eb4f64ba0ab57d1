package service

import (
	"path/filepath"
	"strings"
)

// storageExt normalizes an uploaded file's extension; unknown uploads are
// stored as jpg.
func storageExt(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff", ".pdf":
		return ext
	default:
		return ".jpg"
	}
}
