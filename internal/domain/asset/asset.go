package asset

import (
	"path/filepath"
	"strings"
)

// File is an uploaded asset already read into memory.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

func (f *File) Size() int64 {
	if f == nil {
		return 0
	}
	return int64(len(f.Data))
}

// Ext returns the lower-cased extension of the original file name, including the dot.
func (f *File) Ext() string {
	return strings.ToLower(filepath.Ext(f.Name))
}

// Folders are the logical destinations an uploaded asset is stored under.
const (
	FolderStories         = "stories"
	FolderEvents          = "events"
	FolderMedia           = "media"
	FolderLibraryLogos    = "libraries/logos"
	FolderLibraryFeatured = "libraries/featured"
	FolderBackups         = "backups"
)
