package services

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/stellarchive/catalogbackend/apperrors"
	"github.com/stellarchive/catalogbackend/media"
	"github.com/stellarchive/catalogbackend/models"
	"github.com/stellarchive/catalogbackend/repository"
	"github.com/stellarchive/catalogbackend/utils"
)

const (
	// MaxUploadBytes is the per-file upload size ceiling
	MaxUploadBytes = 1 << 20 // 1 MiB

	defaultThumbnailMaxSize = 300
)

// acceptedUploadFormats is the MIME-level allow-list, keyed by the format
// name reported by image.Decode
var acceptedUploadFormats = map[string]bool{
	"jpeg": true,
	"png":  true,
}

// UploadFile is one file of a multi-file upload request
type UploadFile struct {
	OriginalName string
	Data         []byte
}

// UploadResult reports the outcome for one file of a multi-file upload.
// Failures of individual files never abort the batch.
type UploadResult struct {
	OriginalName string `json:"original_name"`
	Filename     string `json:"filename,omitempty"` // stored name, set on success
	URL          string `json:"url,omitempty"`
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
}

// ImageService manages the lifecycle of uploaded images: resolution of
// filenames to stored rows, attachment to owning entities, and cleanup of
// rows and backing files once unreferenced.
type ImageService struct {
	repo             repository.ImageRepositoryInterface
	store            media.Store
	publicBaseURL    string
	thumbnailMaxSize int
}

func NewImageService(repo repository.ImageRepositoryInterface, store media.Store, publicBaseURL string, thumbnailMaxSize int) *ImageService {
	if thumbnailMaxSize <= 0 {
		thumbnailMaxSize = defaultThumbnailMaxSize
	}
	return &ImageService{repo: repo, store: store, publicBaseURL: publicBaseURL, thumbnailMaxSize: thumbnailMaxSize}
}

// GetImages resolves stored image rows by filename. Filenames that do not
// resolve are silently dropped; empty input returns an empty slice.
func (s *ImageService) GetImages(filenames []string) ([]models.Image, error) {
	images := make([]models.Image, 0, len(filenames))
	for _, filename := range filenames {
		image, err := s.repo.GetByFilename(filename)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		images = append(images, *image)
	}
	return images, nil
}

// AttachImages claims the given images for the owning entity. An image that
// already belongs to a different entity cannot be claimed; images are never
// re-parented.
func (s *ImageService) AttachImages(ownerType string, ownerID uint, images []models.Image) error {
	for _, image := range images {
		if image.OwnerType != "" && (image.OwnerType != ownerType || image.OwnerID != ownerID) {
			return apperrors.NewValidationError("images",
				fmt.Sprintf("image %s already belongs to another entity", image.Filename))
		}
		if err := s.repo.SetOwner(image.ID, ownerType, ownerID); err != nil {
			if errors.Is(err, repository.ErrImageOwned) {
				return apperrors.NewValidationError("images",
					fmt.Sprintf("image %s already belongs to another entity", image.Filename))
			}
			return fmt.Errorf("failed to attach image %s: %w", image.Filename, err)
		}
	}
	return nil
}

// CleanUpUnusedImages removes every image present in oldImages but absent
// from newImages, by id: the backing files and the row are deleted. An empty
// newImages set removes all old images (the full-delete path).
func (s *ImageService) CleanUpUnusedImages(oldImages, newImages []models.Image) error {
	kept := make(map[uint]bool, len(newImages))
	for _, image := range newImages {
		kept[image.ID] = true
	}

	for _, image := range oldImages {
		if kept[image.ID] {
			continue
		}
		if err := s.Remove(image); err != nil {
			return err
		}
	}
	return nil
}

// Remove deletes an image's backing files and its row
func (s *ImageService) Remove(image models.Image) error {
	if err := s.store.Delete(image.StoredPath); err != nil {
		return fmt.Errorf("failed to delete stored file for image %s: %w", image.Filename, err)
	}
	if image.ThumbnailPath != nil {
		if err := s.store.Delete(*image.ThumbnailPath); err != nil {
			log.Printf("warning: failed to delete thumbnail for image %s: %v", image.Filename, err)
		}
	}
	if err := s.repo.Delete(image.ID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to delete image row %d: %w", image.ID, err)
	}
	return nil
}

// RemoveByFilename deletes a stored image by its filename
func (s *ImageService) RemoveByFilename(filename string) error {
	image, err := s.repo.GetByFilename(filename)
	if err != nil {
		return err
	}
	return s.Remove(*image)
}

// Upload processes a batch of uploaded files. Each file is validated (size
// ceiling, jpeg/png only), stored under a UUID filename with a generated
// thumbnail, and recorded; a failing file is reported in its result entry
// while the rest of the batch continues.
func (s *ImageService) Upload(ownerType string, ownerID uint, files []UploadFile) []UploadResult {
	results := make([]UploadResult, 0, len(files))
	for _, file := range files {
		result := UploadResult{OriginalName: file.OriginalName}

		image, err := s.processOne(ownerType, ownerID, file)
		if err != nil {
			log.Printf("upload: %s failed: %v", file.OriginalName, err)
			result.Error = err.Error()
			results = append(results, result)
			continue
		}

		result.Success = true
		result.Filename = image.Filename
		result.URL = image.URL
		results = append(results, result)
	}
	return results
}

func (s *ImageService) processOne(ownerType string, ownerID uint, file UploadFile) (*models.Image, error) {
	if len(file.Data) > MaxUploadBytes {
		return nil, fmt.Errorf("file exceeds the %d byte limit", MaxUploadBytes)
	}
	if len(file.Data) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	img, format, err := utils.DecodeImage(file.Data)
	if err != nil {
		return nil, err
	}
	if !acceptedUploadFormats[format] {
		return nil, fmt.Errorf("unsupported image format %q, accepted: jpeg, png", format)
	}

	storedName := utils.StoredFilename(file.OriginalName)
	storedPath, err := s.store.Save(media.AssetTypeUpload, storedName, bytes.NewReader(file.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	var thumbnailPath *string
	thumbBytes, thumbName, err := utils.EncodeThumbnail(img, s.thumbnailMaxSize)
	if err != nil {
		log.Printf("upload: thumbnail generation failed for %s: %v", storedName, err)
	} else {
		relPath, err := s.store.Save(media.AssetTypeThumbnail, thumbName, bytes.NewReader(thumbBytes))
		if err != nil {
			log.Printf("upload: failed to store thumbnail for %s: %v", storedName, err)
		} else {
			thumbnailPath = &relPath
		}
	}

	meta := utils.GetImageMetadata(file.Data)
	image := &models.Image{
		Filename:      storedName,
		StoredPath:    storedPath,
		URL:           fmt.Sprintf("%s/api/v1/%s", s.publicBaseURL, storedPath),
		ThumbnailPath: thumbnailPath,
		Width:         meta.Width,
		Height:        meta.Height,
		TakenAt:       meta.TakenAt,
		OwnerType:     ownerType,
		OwnerID:       ownerID,
		CreatedAt:     time.Now().Unix(),
	}
	if err := s.repo.Create(image); err != nil {
		// roll the stored files back so a failed row doesn't orphan them
		_ = s.store.Delete(storedPath)
		if thumbnailPath != nil {
			_ = s.store.Delete(*thumbnailPath)
		}
		return nil, fmt.Errorf("failed to record image: %w", err)
	}
	return image, nil
}
