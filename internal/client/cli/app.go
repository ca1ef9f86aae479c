package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/healthrecords/internal/client/assethost"
	"github.com/dmitrijs2005/healthrecords/internal/client/catalog"
	"github.com/dmitrijs2005/healthrecords/internal/client/config"
	"github.com/dmitrijs2005/healthrecords/internal/client/identity"
	"github.com/dmitrijs2005/healthrecords/internal/client/models"
	"github.com/dmitrijs2005/healthrecords/internal/client/repositories/index"
	"github.com/dmitrijs2005/healthrecords/internal/client/services"
	"github.com/dmitrijs2005/healthrecords/internal/client/upload"
	"github.com/dmitrijs2005/healthrecords/internal/logging"
	"github.com/dmitrijs2005/healthrecords/internal/metrics"
	"github.com/dmitrijs2005/healthrecords/internal/timex"
)

type App struct {
	config   *config.Config
	log      logging.Logger
	session  *identity.Session
	verifier *identity.Verifier
	catalog  *catalog.Catalog
	uploads  *upload.Orchestrator
	records  services.RecordService
	metrics  *metrics.Metrics
	host     string

	// list view state, reset on every sign-in
	search     string
	typeFilter string

	lines  *bufio.Scanner
	out    io.Writer
	closer func() error
}

// NewApp opens the configured storage and asset host. It signs in
// cfg.UserID when set; otherwise the session starts signed out.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	repo, closeRepo, err := openRepository(ctx, c, log)
	if err != nil {
		log.Error(ctx, "error opening index storage", "storage", c.Storage, "error", err)
		return nil, err
	}

	m := metrics.New()
	cat := catalog.New(index.NewKVStore(repo, log), log, m)

	httpClient := &http.Client{}
	uploader, resolver, builder := newAssetHost(c, httpClient, log)

	orch := upload.New(uploader, cat, timex.Real(), log, m, upload.Options{
		MaxFiles:      c.MaxFiles,
		MaxFileSize:   c.MaxFileSize,
		Folder:        c.BaseFolder,
		SuccessExpiry: c.TaskExpiry,
		ErrorExpiry:   c.ErrorTaskExpiry,
		Timeout:       c.UploadTimeout,
		Retries:       c.UploadRetries,
	})
	orch.OnChange(func(task models.UploadTask, evicted bool) {
		if evicted {
			return
		}
		log.Debug(context.Background(), "upload task", "file", task.FileName, "status", task.Status, "error", task.Error)
	})

	a := &App{
		config:  c,
		log:     log,
		session: identity.NewSession(),
		catalog: cat,
		uploads: orch,
		records: services.NewRecordService(cat, resolver, builder, httpClient, log),
		metrics: m,
		host:    c.AssetHost,
		lines:   bufio.NewScanner(os.Stdin),
		out:     os.Stdout,
		closer:  closeRepo,
	}
	if c.IdentitySecret != "" {
		a.verifier = identity.NewVerifier([]byte(c.IdentitySecret))
	}

	if c.UserID != "" {
		if err := a.signIn(ctx, c.UserID); err != nil {
			_ = a.Close()
			return nil, err
		}
	} else {
		a.session.SignOut()
	}
	return a, nil
}

func newAssetHost(c *config.Config, httpClient *http.Client, log logging.Logger) (assethost.Uploader, assethost.URLResolver, *assethost.URLBuilder) {
	if c.AssetHost == config.HostS3 {
		h := assethost.NewS3Host(assethost.S3Config{
			Bucket:        c.S3Bucket,
			Region:        c.S3Region,
			Endpoint:      c.S3Endpoint,
			AccessKey:     c.S3AccessKey,
			SecretKey:     c.S3SecretKey,
			UsePathStyle:  c.S3PathStyle,
			PresignExpiry: c.S3PresignValid,
			MaxFileSize:   c.MaxFileSize,
		}, log)
		return h, h, nil
	}

	cl := assethost.NewCloudinaryClient(assethost.CloudinaryConfig{
		CloudName:    c.CloudName,
		UploadPreset: c.UploadPreset,
		APIBase:      c.APIBase,
		MaxFileSize:  c.MaxFileSize,
	}, httpClient, log)
	return cl, nil, &assethost.URLBuilder{DeliveryBase: c.DeliveryBase, CloudName: c.CloudName}
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.Close(); err != nil {
			a.log.Error(ctx, "error closing app", "error", err)
		}
	}()
	a.Root(ctx)
}

// Close writes the metrics textfile, when configured, and closes storage.
func (a *App) Close() error {
	var errs []error
	if err := a.metrics.WriteTextfile(a.config.MetricsFile); err != nil {
		errs = append(errs, fmt.Errorf("write metrics: %w", err))
	}
	if a.closer != nil {
		if err := a.closer(); err != nil {
			errs = append(errs, err)
		}
		a.closer = nil
	}
	return errors.Join(errs...)
}

func (a *App) isLoggedIn() bool {
	return a.session.Current().SignedIn() && a.catalog.Ready()
}
