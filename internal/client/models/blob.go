package models

import (
	"bytes"
	"io"
)

// Blob is a file selected for upload.
type Blob interface {
	Name() string
	// ContentType is the declared MIME type; it may be empty.
	ContentType() string
	Size() int64
	Open() (io.ReadCloser, error)
}

// MemBlob is an in-memory Blob.
type MemBlob struct {
	FileName string
	MIME     string
	Data     []byte
}

func (b *MemBlob) Name() string        { return b.FileName }
func (b *MemBlob) ContentType() string { return b.MIME }
func (b *MemBlob) Size() int64         { return int64(len(b.Data)) }

func (b *MemBlob) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.Data)), nil
}
