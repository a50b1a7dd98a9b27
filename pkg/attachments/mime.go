package attachments

import (
	"mime"
	"net/http"
	"path/filepath"
)

// MIME type constants.
const (
	MIMEOctetStream    = "application/octet-stream"
	mimeDetectionBytes = 512 // http.DetectContentType reads up to 512 bytes
)

// DetectMIME infers a content type for an attachment: filename extension
// first, then content sniffing, then application/octet-stream.
func DetectMIME(filename string, content []byte) string {
	if ext := filepath.Ext(filename); ext != "" {
		if ct := mime.TypeByExtension(ext); ct != "" {
			return ct
		}
	}

	if len(content) > 0 {
		sample := content
		if len(sample) > mimeDetectionBytes {
			sample = sample[:mimeDetectionBytes]
		}
		if ct := http.DetectContentType(sample); ct != "" {
			return ct
		}
	}

	return MIMEOctetStream
}
