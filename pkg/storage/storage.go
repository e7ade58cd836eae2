// Package storage uploads hotel media and compliance documents and resolves
// their public URLs.
package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

const (
	// MaxImageSize is the largest gallery image accepted (5MB).
	MaxImageSize = 5 * 1024 * 1024
	// MaxDocumentSize is the largest compliance document accepted (10MB).
	MaxDocumentSize = 10 * 1024 * 1024

	FolderImages    = "images"
	FolderDocuments = "documents"
)

var (
	AllowedImageTypes = map[string]string{
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".webp": "image/webp",
	}
	AllowedDocumentTypes = map[string]string{
		".pdf":  "application/pdf",
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
	}
)

// ObjectStore is the upload-by-path plus public URL contract.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	PublicURL(key string) string
}

// ContentType resolves the MIME type of filename against an allow list.
// ok is false when the extension is not allowed.
func ContentType(filename string, allowed map[string]string) (string, bool) {
	ct, ok := allowed[strings.ToLower(path.Ext(filename))]
	return ct, ok
}

// ObjectKey returns hotels/{hotelID}/{folder}/{uuid}{ext}.
func ObjectKey(hotelID, folder, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return path.Join("hotels", hotelID, folder, uuid.NewString()+ext)
}
