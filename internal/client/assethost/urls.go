package assethost

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/healthrecords/internal/client/models"
)

// Transform describes an image delivery variant. Zero fields use the
// defaults: crop "fill", quality "auto", format "auto".
type Transform struct {
	Width   int
	Height  int
	Crop    string
	Quality string
	Format  string
}

// URLBuilder builds delivery URLs for assets stored on a Cloudinary-style host.
type URLBuilder struct {
	DeliveryBase string
	CloudName    string
}

// ImageURL returns the delivery URL of publicID with t applied, or "" when
// publicID or the cloud name is empty.
func (b URLBuilder) ImageURL(publicID string, t Transform) string {
	if publicID == "" || b.CloudName == "" {
		return ""
	}
	base := b.DeliveryBase
	if base == "" {
		base = DefaultDeliveryBase
	}

	crop, quality, format := t.Crop, t.Quality, t.Format
	if crop == "" {
		crop = "fill"
	}
	if quality == "" {
		quality = "auto"
	}
	if format == "" {
		format = "auto"
	}

	var parts []string
	if t.Width > 0 {
		parts = append(parts, fmt.Sprintf("w_%d", t.Width))
	}
	if t.Height > 0 {
		parts = append(parts, fmt.Sprintf("h_%d", t.Height))
	}
	parts = append(parts, "c_"+crop, "q_"+quality, "f_"+format)

	return fmt.Sprintf("%s/%s/image/upload/%s/%s",
		strings.TrimRight(base, "/"), b.CloudName, strings.Join(parts, ","), publicID)
}

var thumbnailFormats = map[string]struct{}{"jpg": {}, "jpeg": {}, "png": {}, "gif": {}, "webp": {}}

// IsImageFormat reports whether a record format gets a thumbnail.
func IsImageFormat(format string) bool {
	_, ok := thumbnailFormats[strings.ToLower(format)]
	return ok
}

// FormatOf returns the record format for an uploaded file: the host's
// format, else the MIME subtype, else the file extension.
func FormatOf(asset *models.Asset, blob models.Blob) string {
	if asset != nil && asset.Format != "" {
		return strings.ToLower(asset.Format)
	}
	if blob == nil {
		return ""
	}
	if st := Subtype(blob.ContentType()); st != "" && st != "octet-stream" {
		return st
	}
	return models.ExtensionOf(blob.Name())
}
