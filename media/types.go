// media/types.go
package media

type AssetType string

const (
	AssetTypeUpload    AssetType = "upload"
	AssetTypeThumbnail AssetType = "thumbnail"
	AssetTypeUnknown   AssetType = "unknown"
)
