package media

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStore uploads and deletes media through Cloudinary.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStore creates a CloudinaryStore from a cloudinary:// URL.
func NewCloudinaryStore(url, folder string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("cloudinary configuration error: %w", err)
	}
	return &CloudinaryStore{cld: cld, folder: folder}, nil
}

// Upload sends the file (data URI, remote URL or local path) to Cloudinary
// and returns the hosted secure URL.
func (s *CloudinaryStore) Upload(ctx context.Context, file string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         s.folder,
		Transformation: "c_limit,w_1200,q_auto",
	})
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}

// Destroy removes the asset with the given public ID from Cloudinary.
func (s *CloudinaryStore) Destroy(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}

// PublicIDFromURL derives the Cloudinary public ID from a hosted asset URL.
func PublicIDFromURL(url string) string {
	parts := strings.Split(url, "/upload/")
	if len(parts) != 2 {
		return ""
	}
	path := parts[1]
	// Strip the version segment, e.g. v1712345678/
	if i := strings.Index(path, "/"); i != -1 && strings.HasPrefix(path, "v") {
		path = path[i+1:]
	}
	// Strip the file extension
	if i := strings.LastIndex(path, "."); i != -1 {
		path = path[:i]
	}
	return path
}
