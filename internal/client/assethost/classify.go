package assethost

import (
	"fmt"
	"mime"
	"strings"

	"github.com/dmitrijs2005/healthrecords/internal/client/models"
)

// MaxFileSize is the default upload limit, inclusive.
const MaxFileSize int64 = 10 << 20

// DefaultFolder is the base folder assets are stored under.
const DefaultFolder = "health-records"

// ResourceType selects the upload endpoint.
type ResourceType string

const (
	ResourceImage ResourceType = "image"
	ResourceVideo ResourceType = "video"
	ResourceRaw   ResourceType = "raw"
)

var (
	imageExts = map[string]struct{}{"jpg": {}, "jpeg": {}, "png": {}, "gif": {}, "webp": {}, "svg": {}}
	videoExts = map[string]struct{}{"mp4": {}, "webm": {}, "mov": {}}
)

// Classify picks the resource type of a file. A specific MIME type decides
// on its own; an empty or generic one falls back to the file extension.
func Classify(name, mimeType string) ResourceType {
	mt := essence(mimeType)
	if mt != "" && !isGeneric(mt) {
		switch {
		case strings.HasPrefix(mt, "image/"):
			return ResourceImage
		case strings.HasPrefix(mt, "video/"):
			return ResourceVideo
		default:
			return ResourceRaw
		}
	}

	ext := models.ExtensionOf(name)
	if _, ok := imageExts[ext]; ok {
		return ResourceImage
	}
	if _, ok := videoExts[ext]; ok {
		return ResourceVideo
	}
	return ResourceRaw
}

func isGeneric(mt string) bool {
	return mt == "application/octet-stream" || mt == "binary/octet-stream"
}

// essence strips parameters and case from a MIME type.
func essence(mimeType string) string {
	if mimeType == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(strings.SplitN(mimeType, ";", 2)[0]))
	}
	return mt
}

// Subtype returns the part after the slash of a MIME type, e.g. "pdf".
func Subtype(mimeType string) string {
	mt := essence(mimeType)
	if i := strings.IndexByte(mt, '/'); i >= 0 {
		return mt[i+1:]
	}
	return ""
}

// ScopedFolder returns the per-identity folder under base.
func ScopedFolder(base, identity string) string {
	base = strings.Trim(base, "/")
	if identity == "" {
		return base
	}
	if base == "" {
		return identity
	}
	return base + "/" + identity
}

// Tags returns the host tags attached to an identity's uploads.
func Tags(identity string) []string {
	if identity == "" {
		return nil
	}
	return []string{"user-" + identity, "medical-record"}
}

// Validate checks an upload before any network call.
func Validate(blob models.Blob, maxSize int64) error {
	if blob == nil || blob.Name() == "" {
		return fmt.Errorf("%w: missing file or file name", ErrValidation)
	}
	if maxSize <= 0 {
		maxSize = MaxFileSize
	}
	if blob.Size() > maxSize {
		return fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrFileTooLarge, blob.Name(), blob.Size(), maxSize)
	}
	return nil
}
