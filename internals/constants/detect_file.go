package constants

import (
	"path/filepath"
	"strings"
)

// Upload kinds for source documents.
const (
	FileKindText    = 1
	FileKindDocx    = 3
	FileKindPDF     = 4
	FileKindImage   = 6
	FileKindUnknown = 99
)

func DetectFileKindFromExt(filename string) int {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".txt", ".md":
		return FileKindText
	case ".doc", ".docx":
		return FileKindDocx
	case ".pdf":
		return FileKindPDF
	case ".png", ".jpg", ".jpeg", ".webp":
		return FileKindImage
	default:
		return FileKindUnknown
	}
}

// IsTextKind reports whether the raw bytes of the upload can be used
// directly as module content without going through document parsing.
func IsTextKind(kind int) bool {
	return kind == FileKindText
}
