package utils

import (
	"net/http"
	"path/filepath"
	"strings"
)

// allowedImageTypes sniffed content type -> stored file extension
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// DetectImage sniffs the first bytes of an upload. ok is false for anything
// that is not one of the accepted image formats.
func DetectImage(head []byte) (contentType, ext string, ok bool) {
	contentType = http.DetectContentType(head)
	ext, ok = allowedImageTypes[contentType]
	return contentType, ext, ok
}

// ContentTypeByExt is the reverse lookup used when serving stored files.
func ContentTypeByExt(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	for ct, e := range allowedImageTypes {
		if e == ext {
			return ct
		}
	}
	return "application/octet-stream"
}

// NormalizePath converts an OS path into the forward-slash form stored in the database.
func NormalizePath(p string) string {
	return strings.ReplaceAll(filepath.ToSlash(p), `\`, "/")
}
