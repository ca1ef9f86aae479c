package assethost

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/dmitrijs2005/healthrecords/internal/client/models"
	"github.com/dmitrijs2005/healthrecords/internal/logging"
	"github.com/google/uuid"
)

// Test seams over the AWS SDK.
var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// DefaultPresignExpiry is the longest lifetime SigV4 allows.
const DefaultPresignExpiry = 7 * 24 * time.Hour

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	// UsePathStyle addresses the bucket in the path, as MinIO expects.
	UsePathStyle  bool
	PresignExpiry time.Duration
	MaxFileSize   int64
}

// S3Host stores assets as objects in an S3-compatible bucket. SecureURL is
// a presigned GET URL; ResolveURL re-signs it on demand.
type S3Host struct {
	cfg S3Config
	log logging.Logger
	now func() time.Time

	mu     sync.Mutex
	client *s3.Client
}

func NewS3Host(cfg S3Config, log logging.Logger) *S3Host {
	if cfg.PresignExpiry <= 0 {
		cfg.PresignExpiry = DefaultPresignExpiry
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = MaxFileSize
	}
	return &S3Host{cfg: cfg, log: log.With("component", "s3"), now: time.Now}
}

func (h *S3Host) CheckConfig() error {
	switch {
	case h.cfg.Bucket == "":
		return fmt.Errorf("%w: s3 bucket is not set", ErrConfiguration)
	case h.cfg.Region == "":
		return fmt.Errorf("%w: s3 region is not set", ErrConfiguration)
	case (h.cfg.AccessKey == "") != (h.cfg.SecretKey == ""):
		return fmt.Errorf("%w: s3 access key and secret key must be set together", ErrConfiguration)
	}
	return nil
}

func (h *S3Host) s3Client(ctx context.Context) (*s3.Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.client != nil {
		return h.client, nil
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(h.cfg.Region)}
	// without keys the SDK default chain applies (env, shared config, IMDS)
	if h.cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			h.cfg.AccessKey,
			h.cfg.SecretKey,
			"",
		)))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: load aws config: %v", ErrConfiguration, err)
	}

	h.client = newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if h.cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(h.cfg.Endpoint)
		}
		o.UsePathStyle = h.cfg.UsePathStyle
	})
	return h.client, nil
}

// ObjectKey returns a fresh key under folder that keeps the file extension.
func ObjectKey(folder, name string) string {
	file := uuid.NewString()
	if ext := models.ExtensionOf(name); ext != "" {
		file += "." + ext
	}
	if folder == "" {
		return file
	}
	return path.Join(folder, file)
}

func (h *S3Host) Upload(ctx context.Context, blob models.Blob, folder, identity string) (*models.Asset, error) {
	if err := h.CheckConfig(); err != nil {
		return nil, err
	}
	if err := Validate(blob, h.cfg.MaxFileSize); err != nil {
		return nil, err
	}

	client, err := h.s3Client(ctx)
	if err != nil {
		return nil, err
	}

	data, err := readBlob(blob)
	if err != nil {
		return nil, err
	}

	ct := blob.ContentType()
	if ct == "" {
		ct = "application/octet-stream"
	}
	key := ObjectKey(folder, blob.Name())
	rt := Classify(blob.Name(), blob.ContentType())

	in := &s3.PutObjectInput{
		Bucket:        aws.String(h.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(ct),
		ContentLength: aws.Int64(int64(len(data))),
		Metadata:      map[string]string{"original-name": url.PathEscape(blob.Name())},
	}
	if tags := Tags(identity); len(tags) > 0 {
		in.Tagging = aws.String(tagging(tags))
	}

	h.log.Debug(ctx, "putting object", "bucket", h.cfg.Bucket, "key", key, "size", blob.Size())

	if _, err := putObject(client, ctx, in); err != nil {
		return nil, s3TransportError(err)
	}

	secure, err := h.ResolveURL(ctx, key)
	if err != nil {
		return nil, err
	}

	asset := &models.Asset{
		RemoteID:     key,
		SecureURL:    secure,
		Format:       FormatOf(nil, blob),
		Bytes:        int64(len(data)),
		ResourceType: string(rt),
		CreatedAt:    h.now().UTC(),
	}
	h.log.Info(ctx, "object stored", "file", blob.Name(), "key", key)
	return asset, nil
}

func (h *S3Host) ResolveURL(ctx context.Context, remoteID string) (string, error) {
	if err := h.CheckConfig(); err != nil {
		return "", err
	}
	client, err := h.s3Client(ctx)
	if err != nil {
		return "", err
	}

	req, err := presignGetObject(s3.NewPresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: aws.String(h.cfg.Bucket),
		Key:    aws.String(remoteID),
	}, s3.WithPresignExpires(h.cfg.PresignExpiry))
	if err != nil {
		return "", fmt.Errorf("%w: presign %s: %v", ErrProtocol, remoteID, err)
	}
	return req.URL, nil
}

// readBlob buffers the file so the SDK can sign a seekable body, which
// plain-HTTP endpoints require.
func readBlob(blob models.Blob) ([]byte, error) {
	rc, err := blob.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrValidation, blob.Name(), err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrValidation, blob.Name(), err)
	}
	return data, nil
}

// tagging encodes tags as the S3 x-amz-tagging query string. Tags with a
// "user-" prefix become user=<id>.
func tagging(tags []string) string {
	v := url.Values{}
	for _, t := range tags {
		if id, ok := strings.CutPrefix(t, "user-"); ok {
			v.Set("user", id)
			continue
		}
		v.Set("purpose", t)
	}
	return v.Encode()
}

func s3TransportError(err error) error {
	te := &TransportError{Message: err.Error(), Err: err}

	var re *awshttp.ResponseError
	if errors.As(err, &re) {
		te.StatusCode = re.HTTPStatusCode()
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if msg := apiErr.ErrorMessage(); msg != "" {
			te.Message = msg
		} else {
			te.Message = apiErr.ErrorCode()
		}
	}
	return te
}
