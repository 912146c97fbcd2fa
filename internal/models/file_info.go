package models

import "time"

// FileInfo represents metadata about an uploaded leaf image.
type FileInfo struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`       // original client-side filename
	StoredName string    `json:"storedName"` // unique name on disk
	Path       string    `json:"-"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
}
