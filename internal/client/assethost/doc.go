// Package assethost uploads record files to a remote asset host and builds
// delivery URLs for stored assets.
//
// Two hosts are supported: a Cloudinary-style unsigned multipart upload API
// (CloudinaryClient) and any S3-compatible object store (S3Host). Both
// validate files before touching the network and report failures as one of
// ErrConfiguration, ErrValidation, ErrTransport (*TransportError) or
// ErrProtocol. Uploads are not idempotent: every call stores a new asset.
package assethost
