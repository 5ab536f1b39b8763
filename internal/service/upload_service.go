package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"tastebook/internal/models"
	"tastebook/internal/observability"
)

// allowed image extensions, lowercased
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadService stores uploaded images on local disk and hands back the
// public URL path clients use to fetch them.
type UploadService struct {
	dir string
}

// NewUploadService returns an UploadService writing into dir, creating it
// if necessary.
func NewUploadService(dir string) (*UploadService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, models.NewInternalError(fmt.Errorf("creating upload dir: %w", err))
	}
	return &UploadService{dir: dir}, nil
}

// SaveImage persists the uploaded file under a random name and returns the
// URL path it will be served from. The original filename is discarded so
// uploads can never collide or traverse outside the upload directory.
func (s *UploadService) SaveImage(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", models.NewValidationError("Unsupported image type")
	}

	name := uuid.NewString() + ext
	dst := filepath.Join(s.dir, name)

	src, err := file.Open()
	if err != nil {
		return "", models.NewInternalError(fmt.Errorf("opening upload: %w", err))
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", models.NewInternalError(fmt.Errorf("creating %s: %w", dst, err))
	}
	defer out.Close()

	written, err := io.Copy(out, src)
	if err != nil {
		os.Remove(dst)
		return "", models.NewInternalError(fmt.Errorf("writing %s: %w", dst, err))
	}

	observability.UploadsTotal.Inc()
	observability.UploadBytesTotal.Add(float64(written))

	return "/uploads/images/" + name, nil
}
