package services

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="resume"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["resume"][0]
}

func TestUploadService_Open(t *testing.T) {
	content := []byte("%PDF-1.4 pretend")
	svc := NewUploadService(1024)

	doc, closeFn, err := svc.Open(fileHeader(t, "Resume.PDF", "application/pdf", content))
	require.NoError(t, err)
	defer closeFn()

	assert.Equal(t, "Resume.PDF", doc.Name)
	assert.Equal(t, int64(len(content)), doc.Size)

	read, err := io.ReadAll(io.NewSectionReader(doc.Reader, 0, doc.Size))
	require.NoError(t, err)
	assert.Equal(t, content, read)
}

func TestUploadService_RejectsNonPDF(t *testing.T) {
	svc := NewUploadService(1024)

	_, _, err := svc.Open(fileHeader(t, "resume.docx", "application/octet-stream", []byte("PK")))
	assert.ErrorIs(t, err, ErrUnsupportedFile)

	_, _, err = svc.Open(fileHeader(t, "resume.pdf", "text/plain", []byte("hello")))
	assert.ErrorIs(t, err, ErrUnsupportedFile)
}

func TestUploadService_RejectsLargeFiles(t *testing.T) {
	svc := NewUploadService(4)

	_, _, err := svc.Open(fileHeader(t, "resume.pdf", "application/pdf", []byte("%PDF-1.4")))
	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.Equal(t, int64(4), svc.MaxFileSize())
}
