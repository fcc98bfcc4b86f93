package testutil

import (
	"bytes"
	"mime"
	"mime/multipart"
	"testing"
)

// Minimal file contents that content sniffing recognizes
var (
	PNGBytes  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")
	JPEGBytes = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00\xff\xd9")
	GIFBytes  = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\xff\xff\xff\x00\x00\x00!\xf9\x04\x00\x00\x00\x00\x00,\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02D\x01\x00;")
)

// MultipartBody builds a multipart form with one file part and the given fields.
// It returns the body and its content type.
func MultipartBody(t *testing.T, fileField, filename string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("failed to write field %s: %v", key, err)
		}
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, filename)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("failed to write file content: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

// NewFileHeader returns the header of an uploaded file, as a handler would see it
func NewFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body, contentType := MultipartBody(t, "file", filename, content, nil)
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		t.Fatalf("failed to parse content type: %v", err)
	}

	form, err := multipart.NewReader(body, params["boundary"]).ReadForm(int64(len(content)) + 1024)
	if err != nil {
		t.Fatalf("failed to read multipart form: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })

	headers := form.File["file"]
	if len(headers) != 1 {
		t.Fatalf("expected one file header, got %d", len(headers))
	}
	return headers[0]
}
