package constants

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const (
	MaxUploadBytes    = 10 * 1024 * 1024
	SignedURLTTL      = 15 * time.Minute
	UploadPrefix      = "uploads"
	AvatarPrefix      = "avatars"
	AvatarMaxSide     = 512
	AvatarWebPQuality = 80
)

// UploadContentType restricts signed uploads to images, PDF and Word files.
var UploadContentType = regexp.MustCompile(`^(image/[a-zA-Z0-9.+-]+|application/pdf|application/msword|application/vnd\.openxmlformats-officedocument\.wordprocessingml\.document)$`)

// ContentTypeFromExt is the fallback when a multipart part carries no type.
func ContentTypeFromExt(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}
