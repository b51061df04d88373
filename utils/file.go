package utils

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	ThumbnailJpegQuality   = 80
	ThumbnailFileExtension = ".jpg"
)

var supportedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// IsRasterImage checks if the filename has an accepted raster image extension
func IsRasterImage(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return supportedImageExtensions[ext]
}

// StoredFilename generates a UUID-based filename preserving the original extension
func StoredFilename(originalFilename string) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	return uuid.NewString() + ext
}

// DecodeImage decodes raw uploaded bytes and reports the detected format
// ("jpeg" or "png" for accepted uploads)
func DecodeImage(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode uploaded image: %w", err)
	}
	return img, format, nil
}

// EncodeThumbnail downsizes the image so its longest side fits maxSize and
// encodes it as JPEG. Returns the encoded bytes and the UUID-based filename
// to store them under.
func EncodeThumbnail(img image.Image, maxSize int) ([]byte, string, error) {
	thumb := imaging.Fit(img, maxSize, maxSize, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(ThumbnailJpegQuality)); err != nil {
		return nil, "", fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	thumbFilename := uuid.NewString() + ThumbnailFileExtension
	log.Printf("generated thumbnail %s (%dx%d source)", thumbFilename, img.Bounds().Dx(), img.Bounds().Dy())
	return buf.Bytes(), thumbFilename, nil
}
