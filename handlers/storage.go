package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"dentra/services/storage"

	"github.com/gin-gonic/gin"
)

// StorageHandler serves patient document uploads and download URLs. A nil
// DocumentStorage (cloudinary not configured) turns every endpoint into a
// 503 instead of failing startup.
type StorageHandler struct {
	Storage storage.DocumentStorage
}

func NewStorageHandler(svc storage.DocumentStorage) *StorageHandler {
	return &StorageHandler{Storage: svc}
}

func (h *StorageHandler) unavailable(c *gin.Context) bool {
	if h.Storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "document storage is not configured"})
		return true
	}
	return false
}

// UploadDocumentHandler accepts a multipart file and stores it under the
// patient's folder.
func (h *StorageHandler) UploadDocumentHandler(c *gin.Context) {
	if h.unavailable(c) {
		return
	}
	patientID := c.Param("patientId")
	if patientID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "patientId is required"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided", "details": err.Error()})
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), fileHeader.Filename)
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file", "details": err.Error()})
		return
	}
	defer os.Remove(tempFilePath)

	publicID, err := h.Storage.UploadDocument(c, tempFilePath, patientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload document", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"publicId": publicID}})
}

// GetDocumentURLHandler returns a signed, short-lived download URL for a
// stored document.
func (h *StorageHandler) GetDocumentURLHandler(c *gin.Context) {
	if h.unavailable(c) {
		return
	}
	publicID := c.Query("publicId")
	if publicID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "publicId is required"})
		return
	}
	resourceType := c.DefaultQuery("type", "image")

	expiry := 15 * time.Minute
	if expStr := c.Query("expires"); expStr != "" {
		if exp, err := time.ParseDuration(expStr); err == nil {
			expiry = exp
		}
	}

	url, err := h.Storage.GetSecureDownloadURL(c, resourceType, publicID, expiry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate download URL", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"downloadURL": url}})
}

// DeleteDocumentHandler removes a stored document.
func (h *StorageHandler) DeleteDocumentHandler(c *gin.Context) {
	if h.unavailable(c) {
		return
	}
	publicID := c.Query("publicId")
	if publicID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "publicId is required"})
		return
	}
	if err := h.Storage.DeleteDocument(c, publicID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete document", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "document deleted"})
}
