package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"nordlayer-server/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// proxyClient bounds the upstream fetch; nothing else about the request
// is retried or cached.
var proxyClient = &http.Client{Timeout: 30 * time.Second}

// ProxyS3File relays a GET for an object-storage file through the
// backend so browsers get CORS headers the bucket itself never sends.
// The captured path is forwarded verbatim; any upstream problem comes
// back as a 404 with a detail message.
func ProxyS3File(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	upstreamURL := config.AppConfig.S3ProxyBaseURL + "/" + path

	resp, err := proxyClient.Get(upstreamURL)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": fmt.Sprintf("File not found: %v", err)})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.JSON(http.StatusNotFound, gin.H{"detail": fmt.Sprintf("File not found: upstream returned %s", resp.Status)})
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Cache-Control", "public, max-age=31536000")
	c.DataFromReader(http.StatusOK, resp.ContentLength, contentType, resp.Body, nil)
}

// UploadFile stores an uploaded model or image file under the upload
// dir with a uuid-prefixed name and returns its path for order creation
func UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	if file.Size > config.AppConfig.MaxFileSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is too large"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := false
	for _, allowedExt := range config.AppConfig.AllowedFileTypes {
		if ext == allowedExt {
			allowed = true
			break
		}
	}
	if !allowed {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("File type %s is not allowed", ext)})
		return
	}

	uploadDir := config.AppConfig.UploadDir
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare upload directory"})
		return
	}

	storedName := uuid.New().String() + ext
	storedPath := filepath.Join(uploadDir, storedName)
	if err := c.SaveUploadedFile(file, storedPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"file_path":         storedPath,
			"original_filename": file.Filename,
			"file_size":         file.Size,
			"file_type":         strings.TrimPrefix(ext, "."),
		},
	})
}

// DownloadFile serves a previously uploaded file from the upload dir
func DownloadFile(c *gin.Context) {
	name := filepath.Base(c.Param("name"))
	path := filepath.Join(config.AppConfig.UploadDir, name)

	f, err := os.Open(path)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.DataFromReader(http.StatusOK, info.Size(), "application/octet-stream", f, nil)
}
