package certificate

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// UploadResult points at an externally hosted plaintext copy of an artifact.
type UploadResult struct {
	URL      string
	PublicID string
}

// Uploader pushes artifact bytes to external object storage. Upload failures
// are returned to the caller, which decides whether to tolerate them; the
// certificate pipeline treats hosting as best-effort.
type Uploader interface {
	Upload(data []byte, format, folder, publicID string) (*UploadResult, error)
}

// CloudinaryClient uploads artifacts through Cloudinary's unsigned upload
// endpoint. Uploads carry their own timeout and hold no locks.
type CloudinaryClient struct {
	client       *resty.Client
	cloudName    string
	uploadPreset string
}

// NewCloudinaryClient builds a client for the given cloud and unsigned
// upload preset.
func NewCloudinaryClient(cloudName, uploadPreset string) *CloudinaryClient {
	client := resty.New().SetTimeout(15 * time.Second)
	return &CloudinaryClient{
		client:       client,
		cloudName:    cloudName,
		uploadPreset: uploadPreset,
	}
}

// Upload sends the artifact as a base64 data URI form field. Cloudinary's
// auto resource type covers both image formats and PDF.
func (c *CloudinaryClient) Upload(data []byte, format, folder, publicID string) (*UploadResult, error) {
	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/auto/upload", c.cloudName)
	dataURI := fmt.Sprintf("data:%s;base64,%s", ContentType(format), base64.StdEncoding.EncodeToString(data))

	resp, err := c.client.R().
		SetFormData(map[string]string{
			"file":          dataURI,
			"upload_preset": c.uploadPreset,
			"folder":        folder,
			"public_id":     publicID,
		}).
		Post(endpoint)
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("cloudinary upload failed with status %d: %s", resp.StatusCode(), resp.String())
	}

	var uploadResp struct {
		SecureURL string `json:"secure_url"`
		PublicID  string `json:"public_id"`
	}
	if err := json.Unmarshal(resp.Body(), &uploadResp); err != nil {
		return nil, fmt.Errorf("parse cloudinary response: %w", err)
	}

	return &UploadResult{URL: uploadResp.SecureURL, PublicID: uploadResp.PublicID}, nil
}
