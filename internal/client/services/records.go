package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/healthrecords/internal/client/assethost"
	"github.com/dmitrijs2005/healthrecords/internal/client/models"
	"github.com/dmitrijs2005/healthrecords/internal/client/repositories/index"
	"github.com/dmitrijs2005/healthrecords/internal/filex"
	"github.com/dmitrijs2005/healthrecords/internal/logging"
	"github.com/dmitrijs2005/healthrecords/internal/netx"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrNoAsset     = errors.New("record has no stored file")
	ErrNoThumbnail = errors.New("record has no thumbnail")
)

// Catalog is the read side of the record catalog plus bulk import.
type Catalog interface {
	Get(id string) (models.Record, bool)
	Records() []models.Record
	Import(ctx context.Context, records []models.Record) (int, error)
}

type RecordService interface {
	ViewURL(ctx context.Context, id string) (string, error)
	ThumbnailURL(id string, width, height int) (string, error)
	Download(ctx context.Context, id, dir string) (string, error)
	Export(ctx context.Context, path string) (int, error)
	Import(ctx context.Context, path string) (int, error)
}

type recordService struct {
	catalog  Catalog
	resolver assethost.URLResolver
	builder  *assethost.URLBuilder
	http     *http.Client
	log      logging.Logger
}

// NewRecordService wires view and download support. resolver and builder
// are optional: resolver re-signs expiring URLs, builder derives delivery
// and thumbnail URLs from the asset id.
func NewRecordService(catalog Catalog, resolver assethost.URLResolver, builder *assethost.URLBuilder, httpClient *http.Client, log logging.Logger) RecordService {
	return &recordService{
		catalog:  catalog,
		resolver: resolver,
		builder:  builder,
		http:     httpClient,
		log:      log.With("component", "records"),
	}
}

func (s *recordService) record(id string) (models.Record, error) {
	rec, ok := s.catalog.Get(id)
	if !ok {
		return models.Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return rec, nil
}

func (s *recordService) ViewURL(ctx context.Context, id string) (string, error) {
	rec, err := s.record(id)
	if err != nil {
		return "", err
	}
	if rec.Asset == nil {
		return "", fmt.Errorf("%w: %s", ErrNoAsset, rec.Name)
	}

	if s.resolver != nil && rec.Asset.RemoteID != "" {
		u, err := s.resolver.ResolveURL(ctx, rec.Asset.RemoteID)
		if err == nil {
			return u, nil
		}
		s.log.Warn(ctx, "could not resolve asset url", "id", id, "error", err)
	}

	if rec.Asset.SecureURL != "" {
		return rec.Asset.SecureURL, nil
	}

	if s.builder != nil {
		if u := s.builder.ImageURL(rec.Asset.RemoteID, assethost.Transform{}); u != "" {
			return u, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNoAsset, rec.Name)
}

func (s *recordService) ThumbnailURL(id string, width, height int) (string, error) {
	rec, err := s.record(id)
	if err != nil {
		return "", err
	}
	if rec.Asset == nil || !assethost.IsImageFormat(rec.Format) || s.builder == nil {
		return "", ErrNoThumbnail
	}
	u := s.builder.ImageURL(rec.Asset.RemoteID, assethost.Transform{Width: width, Height: height})
	if u == "" {
		return "", ErrNoThumbnail
	}
	return u, nil
}

// Download fetches the stored file of id into dir and returns its path.
func (s *recordService) Download(ctx context.Context, id, dir string) (string, error) {
	rec, err := s.record(id)
	if err != nil {
		return "", err
	}
	u, err := s.ViewURL(ctx, id)
	if err != nil {
		return "", err
	}

	dir, err = filex.EnsureDir(dir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, localName(rec))

	body, err := netx.OpenURL(ctx, s.http, u)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", rec.Name, err)
	}
	defer body.Close()

	n, err := filex.WriteFileAtomic(path, body, 0o600)
	if err != nil {
		return "", err
	}

	s.log.Info(ctx, "record downloaded", "id", id, "path", path, "bytes", n)
	return path, nil
}

// Export writes the whole index as JSON to path.
func (s *recordService) Export(ctx context.Context, path string) (int, error) {
	records := s.catalog.Records()
	data, err := index.Encode(records)
	if err != nil {
		return 0, err
	}
	if _, err := filex.WriteFileAtomic(path, bytes.NewReader(data), 0o600); err != nil {
		return 0, err
	}
	s.log.Info(ctx, "index exported", "path", path, "records", len(records))
	return len(records), nil
}

// Import merges the records of an exported index file into the catalog.
func (s *recordService) Import(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	records, err := index.Decode(data)
	if err != nil {
		return 0, err
	}
	return s.catalog.Import(ctx, records)
}

// localName is the record's base name, with the format appended when the
// name carries no extension.
func localName(rec models.Record) string {
	name := filepath.Base(strings.ReplaceAll(rec.Name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = rec.ID
	}
	if models.ExtensionOf(name) == "" && rec.Format != "" {
		name += "." + rec.Format
	}
	return name
}
