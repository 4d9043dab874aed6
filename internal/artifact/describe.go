package artifact

import "strings"

// typeDescriptions maps common MIME types to friendly names.
var typeDescriptions = map[string]string{
	"text/plain":         "text file",
	"text/csv":           "CSV spreadsheet",
	"text/html":          "HTML document",
	"text/markdown":      "Markdown document",
	"application/pdf":    "PDF document",
	"application/json":   "JSON file",
	"application/xml":    "XML document",
	"application/msword": "Word document",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   "Word document",
	"application/vnd.ms-excel": "Excel spreadsheet",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         "Excel spreadsheet",
	"application/vnd.ms-powerpoint":                                             "PowerPoint presentation",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": "PowerPoint presentation",
	"image/jpeg":    "JPEG image",
	"image/png":     "PNG image",
	"image/gif":     "GIF image",
	"image/svg+xml": "SVG image",
	"audio/mpeg":    "MP3 audio file",
	"audio/wav":     "WAV audio file",
	"video/mp4":     "MP4 video file",
}

// TypeDescription returns a user-friendly description for a MIME type,
// falling back to the top-level type family, then to "file".
func TypeDescription(mimeType string) string {
	if desc, ok := typeDescriptions[mimeType]; ok {
		return desc
	}
	family, _, _ := strings.Cut(mimeType, "/")
	switch family {
	case "text", "application", "image", "audio", "video":
		return family + " file"
	}
	return "file"
}
