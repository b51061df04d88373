package models

// Image represents an uploaded image record in the database using GORM.
// It corresponds to the 'images' table.
//
// Ownership is a single polymorphic (owner_type, owner_id) pair: an image
// belongs to exactly one catalog entity and is never re-parented. Reassigning
// is not supported; images are created per upload and deleted when orphaned.
type Image struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Filename      string  `gorm:"not null;uniqueIndex" json:"filename"` // stored UUID-based name
	StoredPath    string  `gorm:"not null" json:"-"`                    // store-relative path, e.g. "uploads/<name>"
	URL           string  `gorm:"not null" json:"url"`
	ThumbnailPath *string `gorm:"" json:"thumbnail_path,omitempty"` // Nullable
	Width         *int    `gorm:"" json:"width,omitempty"`          // Nullable
	Height        *int    `gorm:"" json:"height,omitempty"`         // Nullable
	TakenAt       *int64  `gorm:"" json:"taken_at,omitempty"`       // Nullable, Unix timestamp from EXIF
	OwnerType     string  `gorm:"index:idx_image_owner" json:"owner_type"` // empty until claimed by an entity
	OwnerID       uint    `gorm:"index:idx_image_owner" json:"owner_id"`
	CreatedAt     int64   `gorm:"not null" json:"created"`
}

// TableName explicitly sets the table name for GORM.
func (Image) TableName() string {
	return "images"
}
