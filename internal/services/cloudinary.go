package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// MediaResource is one asset on the media host
type MediaResource struct {
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// MediaLibrary is the surface the gallery needs from the media host
type MediaLibrary interface {
	// Upload stores one image (a data URI or remote URL) under the given
	// folder and returns its secure URL.
	Upload(ctx context.Context, folder, file string) (string, error)
	// ListByPrefix returns assets whose folder path starts with prefix.
	ListByPrefix(ctx context.Context, prefix string) ([]MediaResource, error)
}

// CloudinaryService talks to the Cloudinary upload and admin APIs
type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryService builds a client from CLOUDINARY_URL
func NewCloudinaryService() (*CloudinaryService, error) {
	url := os.Getenv("CLOUDINARY_URL")
	if url == "" {
		return nil, fmt.Errorf("CLOUDINARY_URL not set")
	}

	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to init cloudinary: %w", err)
	}
	return &CloudinaryService{cld: cld}, nil
}

// Upload stores one image under the given folder
func (s *CloudinaryService) Upload(ctx context.Context, folder, file string) (string, error) {
	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder: folder,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload error: %w", err)
	}
	if resp.SecureURL == "" {
		return "", fmt.Errorf("cloudinary upload returned no url: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}

// ListByPrefix lists up to 100 uploaded assets under the prefix
func (s *CloudinaryService) ListByPrefix(ctx context.Context, prefix string) ([]MediaResource, error) {
	resp, err := s.cld.Admin.Assets(ctx, admin.AssetsParams{
		AssetType:    api.Image,
		DeliveryType: "upload",
		Prefix:       prefix,
		MaxResults:   100,
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary list error: %w", err)
	}

	resources := make([]MediaResource, 0, len(resp.Assets))
	for _, asset := range resp.Assets {
		resources = append(resources, MediaResource{
			URL:       asset.SecureURL,
			CreatedAt: asset.CreatedAt,
		})
	}
	return resources, nil
}
