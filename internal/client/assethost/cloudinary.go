package assethost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/healthrecords/internal/client/models"
	"github.com/dmitrijs2005/healthrecords/internal/logging"
)

const (
	DefaultAPIBase      = "https://api.cloudinary.com/v1_1"
	DefaultDeliveryBase = "https://res.cloudinary.com"

	maxResponseBody = 1 << 20
)

type CloudinaryConfig struct {
	CloudName    string
	UploadPreset string
	// APIBase defaults to DefaultAPIBase.
	APIBase     string
	MaxFileSize int64
}

// CloudinaryClient performs unsigned multipart uploads.
type CloudinaryClient struct {
	cfg  CloudinaryConfig
	http *http.Client
	log  logging.Logger
}

func NewCloudinaryClient(cfg CloudinaryConfig, httpClient *http.Client, log logging.Logger) *CloudinaryClient {
	if cfg.APIBase == "" {
		cfg.APIBase = DefaultAPIBase
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = MaxFileSize
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &CloudinaryClient{cfg: cfg, http: httpClient, log: log.With("component", "cloudinary")}
}

func (c *CloudinaryClient) CheckConfig() error {
	if c.cfg.CloudName == "" {
		return fmt.Errorf("%w: cloud name is not set", ErrConfiguration)
	}
	if c.cfg.UploadPreset == "" {
		return fmt.Errorf("%w: upload preset is not set", ErrConfiguration)
	}
	return nil
}

type uploadResponse struct {
	PublicID     string `json:"public_id"`
	SecureURL    string `json:"secure_url"`
	URL          string `json:"url"`
	Format       string `json:"format"`
	Bytes        int64  `json:"bytes"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	ResourceType string `json:"resource_type"`
	CreatedAt    string `json:"created_at"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *CloudinaryClient) Upload(ctx context.Context, blob models.Blob, folder, identity string) (*models.Asset, error) {
	if err := c.CheckConfig(); err != nil {
		return nil, err
	}
	if err := Validate(blob, c.cfg.MaxFileSize); err != nil {
		return nil, err
	}

	rt := Classify(blob.Name(), blob.ContentType())
	endpoint := fmt.Sprintf("%s/%s/%s/upload",
		strings.TrimRight(c.cfg.APIBase, "/"), url.PathEscape(c.cfg.CloudName), rt)

	body, contentType, err := c.form(blob, folder, identity)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, &TransportError{Message: err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", contentType)

	c.log.Debug(ctx, "uploading", "file", blob.Name(), "size", blob.Size(), "resource_type", rt, "folder", folder)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Message: err.Error(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{StatusCode: resp.StatusCode, Message: hostError(raw)}
	}

	var ur uploadResponse
	if err := json.Unmarshal(raw, &ur); err != nil {
		return nil, fmt.Errorf("%w: malformed body: %v", ErrProtocol, err)
	}
	if ur.PublicID == "" {
		return nil, fmt.Errorf("%w: upload succeeded but no public_id returned", ErrProtocol)
	}

	asset := &models.Asset{
		RemoteID:     ur.PublicID,
		SecureURL:    ur.SecureURL,
		URL:          ur.URL,
		Format:       strings.ToLower(ur.Format),
		Bytes:        ur.Bytes,
		Width:        ur.Width,
		Height:       ur.Height,
		ResourceType: ur.ResourceType,
	}
	if asset.ResourceType == "" {
		asset.ResourceType = string(rt)
	}
	if t, err := time.Parse(time.RFC3339, ur.CreatedAt); err == nil {
		asset.CreatedAt = t
	}

	c.log.Info(ctx, "upload stored", "file", blob.Name(), "public_id", asset.RemoteID)
	return asset, nil
}

func (c *CloudinaryClient) form(blob models.Blob, folder, identity string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	ct := blob.ContentType()
	if ct == "" {
		ct = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, blob.Name()))
	h.Set("Content-Type", ct)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}

	rc, err := blob.Open()
	if err != nil {
		return nil, "", fmt.Errorf("%w: open %s: %v", ErrValidation, blob.Name(), err)
	}
	defer rc.Close()
	if _, err := io.Copy(part, rc); err != nil {
		return nil, "", fmt.Errorf("%w: read %s: %v", ErrValidation, blob.Name(), err)
	}

	fields := [][2]string{{"upload_preset", c.cfg.UploadPreset}}
	if folder != "" {
		fields = append(fields, [2]string{"folder", folder})
	}
	if tags := Tags(identity); len(tags) > 0 {
		fields = append(fields, [2]string{"tags", strings.Join(tags, ",")})
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// hostError extracts error.message from a failure body, falling back to
// the raw text.
func hostError(raw []byte) string {
	var er errorResponse
	if err := json.Unmarshal(raw, &er); err == nil && er.Error.Message != "" {
		return er.Error.Message
	}
	return strings.TrimSpace(string(raw))
}
