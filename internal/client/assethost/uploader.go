package assethost

import (
	"context"

	"github.com/dmitrijs2005/healthrecords/internal/client/models"
)

// Uploader stores files on an asset host.
type Uploader interface {
	// CheckConfig reports an ErrConfiguration error when uploads cannot
	// possibly succeed. It does no I/O.
	CheckConfig() error
	// Upload stores blob under folder, tagged for identity.
	Upload(ctx context.Context, blob models.Blob, folder, identity string) (*models.Asset, error)
}

// URLResolver produces a fresh delivery URL for a stored asset, for hosts
// whose URLs expire.
type URLResolver interface {
	ResolveURL(ctx context.Context, remoteID string) (string, error)
}
