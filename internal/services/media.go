package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/MassBabyGeek/PumpPro-client/internal/config"
	model "github.com/MassBabyGeek/PumpPro-client/internal/models"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Uploader stocke des octets et retourne une URL. Utilisé comme étape
// intermédiaire avant l'appel distant d'une mutation : son échec annule la
// mutation avant tout envoi au backend.
type Uploader interface {
	Upload(ctx context.Context, data []byte, name string) (string, error)
}

// CloudinaryService gère l'upload des médias vers Cloudinary
type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryService crée une instance du service Cloudinary
func NewCloudinaryService(cfg *config.Config) (*CloudinaryService, error) {
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary configuration is missing")
	}

	cld, err := cloudinary.NewFromParams(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &CloudinaryService{cld: cld}, nil
}

// Upload envoie un média vers Cloudinary et retourne son URL sécurisée
func (s *CloudinaryService) Upload(ctx context.Context, data []byte, name string) (string, error) {
	overwrite := true

	uploadResult, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID:  name,
		Folder:    "pumppro/media",
		Overwrite: &overwrite,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to cloudinary: %w", err)
	}

	return uploadResult.SecureURL, nil
}

// DetectMediaType déduit le type de média depuis le nom de fichier
func DetectMediaType(name string) model.MediaType {
	lower := strings.ToLower(name)
	for _, ext := range []string{".mp4", ".mov", ".webm", ".avi"} {
		if strings.HasSuffix(lower, ext) {
			return model.MediaTypeVideo
		}
	}
	return model.MediaTypeImage
}
