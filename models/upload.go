package models

// StorageKind names where an upload ended up.
type StorageKind string

const (
	StorageLocal    StorageKind = "local"
	StorageExternal StorageKind = "external"
)

// UploadResult describes a stored image.
type UploadResult struct {
	FileName string      `json:"fileName"`
	FilePath string      `json:"filePath"`
	Storage  StorageKind `json:"storage"`
	Image    ImageRef    `json:"-"`
}
