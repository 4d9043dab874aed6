// Package artifact prepares learner-uploaded files for the tutoring model:
// MIME type resolution, base64 encoding for media payloads, and text content
// extraction with an encoding fallback.
package artifact

import (
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/polyglot-labs/polyglot/internal/catalog"
)

// Artifact is a processed upload, ready to be injected into a model payload.
// Level and Language record the learner's selection at upload time.
type Artifact struct {
	Name     string
	Data     []byte
	Base64   string
	MIMEType string

	// IsText marks content the model receives inline rather than as media.
	IsText bool
	// Text is the decoded content for text artifacts, empty if undecodable.
	Text string

	Level      catalog.Level
	Language   string
	UploadedAt time.Time
}

// IsImage reports whether the artifact is an image.
func (a *Artifact) IsImage() bool {
	return strings.HasPrefix(a.MIMEType, "image/")
}

// DataURI returns the artifact as a base64 data URI for media parts.
func (a *Artifact) DataURI() string {
	return "data:" + a.MIMEType + ";base64," + a.Base64
}

// Process prepares an uploaded file. The MIME type is taken from
// declaredType when given, otherwise guessed from the file extension,
// otherwise sniffed from content. Text-based artifacts are decoded as UTF-8
// with a Latin-1 fallback.
func Process(filename string, data []byte, declaredType string, level catalog.Level, language string) (*Artifact, error) {
	if err := ValidateFilename(filename); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	mimeType := resolveMIMEType(filename, data, declaredType)

	a := &Artifact{
		Name:       filename,
		Data:       data,
		Base64:     base64.StdEncoding.EncodeToString(data),
		MIMEType:   mimeType,
		IsText:     isTextType(mimeType),
		Level:      level,
		Language:   language,
		UploadedAt: time.Now(),
	}

	if a.IsText {
		a.Text = decodeText(data)
	}

	return a, nil
}

func resolveMIMEType(filename string, data []byte, declaredType string) string {
	if declaredType != "" {
		return normalizeMIMEType(declaredType)
	}
	if byExt := mime.TypeByExtension(filepath.Ext(filename)); byExt != "" {
		return normalizeMIMEType(byExt)
	}
	// DetectContentType falls back to application/octet-stream itself.
	return http.DetectContentType(data)
}

// normalizeMIMEType strips parameters such as "; charset=utf-8".
func normalizeMIMEType(t string) string {
	if mediaType, _, err := mime.ParseMediaType(t); err == nil {
		return mediaType
	}
	return t
}

func isTextType(mimeType string) bool {
	return strings.HasPrefix(mimeType, "text/") ||
		mimeType == "application/json" ||
		mimeType == "application/xml"
}

// decodeText decodes data as UTF-8, falling back to Latin-1. Latin-1 maps
// every byte to a rune, so the fallback cannot fail; a decoder error still
// yields an empty string rather than garbage.
func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return ""
	}
	return string(decoded)
}

// UploadNotice is the assistant message recorded when a file is attached.
// The tutor treats its presence as the trigger for one-shot injection of the
// artifact into the next model payload.
func UploadNotice(a *Artifact, languageName string) string {
	return fmt.Sprintf("%s File '%s' has been uploaded. You can now ask questions about it, request translations of text in the file, or ask for exercises based on it that are adapted to your %s level %s learning.",
		a.Level.Badge(), a.Name, a.Level.Code(), languageName)
}
