package blastengine

import (
	"bytes"
	"fmt"
	"mime"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"strings"
)

// jsonPartFilename names the metadata part of a multipart delivery request.
const jsonPartFilename = "payload.json"

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// buildMultipart assembles a multipart/form-data body: one "data" part
// carrying the JSON payload, then one "file" part per attachment. The whole
// body is buffered so retries can replay identical bytes.
func buildMultipart(payload []byte, attachments []Attachment) (contentType string, body []byte, err error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreatePart(partHeader("data", jsonPartFilename, "application/json"))
	if err != nil {
		return "", nil, fmt.Errorf("blastengine: build multipart: %w", err)
	}
	if _, err := part.Write(payload); err != nil {
		return "", nil, fmt.Errorf("blastengine: build multipart: %w", err)
	}

	for _, a := range attachments {
		filename := a.Filename
		if filename == "" {
			filename = "attachment.bin"
		}
		part, err := w.CreatePart(partHeader("file", filename, attachmentContentType(a)))
		if err != nil {
			return "", nil, fmt.Errorf("blastengine: build multipart: %w", err)
		}
		if _, err := part.Write(a.Content); err != nil {
			return "", nil, fmt.Errorf("blastengine: build multipart: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return "", nil, fmt.Errorf("blastengine: build multipart: %w", err)
	}
	return w.FormDataContentType(), buf.Bytes(), nil
}

func partHeader(field, filename, contentType string) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(filename)))
	h.Set("Content-Type", contentType)
	return h
}

// attachmentContentType resolves the MIME type for a file part: explicit
// value first, then the filename extension, then application/octet-stream.
func attachmentContentType(a Attachment) string {
	if a.ContentType != "" {
		return a.ContentType
	}
	if ct := mime.TypeByExtension(filepath.Ext(a.Filename)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
