package handlers

import (
	"github.com/ngocthb/OJT-BE/internal/services"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct{}

func NewUploadHandler() *UploadHandler {
	return &UploadHandler{}
}

// Upload pushes an image (avatar, claim attachment) to the CDN and returns
// its URL.
func (h *UploadHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		BadRequest(c, "image file is required")
		return
	}

	file, err := header.Open()
	if err != nil {
		BadRequest(c, "failed to open uploaded file")
		return
	}
	defer file.Close()

	result, err := services.UploadToCloudinary(file, header)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	OK(c, "Successfully uploaded image", result)
}
