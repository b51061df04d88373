package utils

import (
	"bytes"
	"image"
	"log"

	"github.com/rwcarlsen/goexif/exif"
)

// Metadata holds the dimension and capture-time information recorded for an
// uploaded image
type Metadata struct {
	Width   *int   `json:"width,omitempty"`
	Height  *int   `json:"height,omitempty"`
	TakenAt *int64 `json:"taken_at,omitempty"` // Unix timestamp
}

// GetImageMetadata extracts dimensions and, when EXIF data is present, the
// capture timestamp from raw uploaded bytes. Missing EXIF data is not an
// error; most catalog artwork has none.
func GetImageMetadata(data []byte) *Metadata {
	meta := &Metadata{}

	config, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err == nil {
		w, h := config.Width, config.Height
		meta.Width = &w
		meta.Height = &h
	} else {
		log.Printf("metadata: could not decode config for dimensions (format %s): %v", format, err)
	}

	exifData, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		// file simply lacks EXIF data
		return meta
	}

	if takenAt, err := exifData.DateTime(); err == nil {
		ts := takenAt.Unix()
		meta.TakenAt = &ts
	}

	return meta
}
