package services

import (
	"bytes"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CloudinaryResponse is the subset of the upload API response we use.
type CloudinaryResponse struct {
	PublicID  string `json:"public_id"`
	URL       string `json:"url"`
	SecureURL string `json:"secure_url"`
	Format    string `json:"format"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

type ImageUploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadToCloudinary pushes an image to the Cloudinary upload endpoint using
// the CLOUD_NAME / API_KEY / API_SECRET environment configuration. Signed
// upload: signature is the SHA-1 of the timestamp parameter plus the secret.
func UploadToCloudinary(file multipart.File, header *multipart.FileHeader) (*ImageUploadResult, error) {
	cloudName := os.Getenv("CLOUD_NAME")
	apiKey := os.Getenv("API_KEY")
	apiSecret := os.Getenv("API_SECRET")
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary is not configured")
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		return nil, fmt.Errorf("unsupported image type: %s", ext)
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	dataURI := fmt.Sprintf("data:%s;base64,%s",
		header.Header.Get("Content-Type"),
		base64.StdEncoding.EncodeToString(fileBytes))

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	digest := sha1.Sum([]byte("timestamp=" + timestamp + apiSecret))
	signature := hex.EncodeToString(digest[:])

	var requestBody bytes.Buffer
	writer := multipart.NewWriter(&requestBody)
	for field, value := range map[string]string{
		"file":      dataURI,
		"api_key":   apiKey,
		"timestamp": timestamp,
		"signature": signature,
	} {
		if err := writer.WriteField(field, value); err != nil {
			return nil, fmt.Errorf("failed to build request body: %w", err)
		}
	}
	writer.Close()

	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", cloudName)
	req, err := http.NewRequest(http.MethodPost, endpoint, &requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	var result CloudinaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upload failed (%d): %s", resp.StatusCode, result.Error.Message)
	}

	url := result.SecureURL
	if url == "" {
		url = result.URL
	}
	return &ImageUploadResult{URL: url, PublicID: result.PublicID}, nil
}
