package upload

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/healthrecords/internal/client/assethost"
	"github.com/dmitrijs2005/healthrecords/internal/client/models"
	"github.com/dmitrijs2005/healthrecords/internal/client/repositories/index"
	"github.com/dmitrijs2005/healthrecords/internal/logging"
	"github.com/dmitrijs2005/healthrecords/internal/metrics"
	"github.com/dmitrijs2005/healthrecords/internal/timex"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
)

const (
	DefaultMaxFiles = 5
	DefaultExpiry   = 3 * time.Second
)

// ErrNotSignedIn marks tasks submitted while no catalog is loaded.
var ErrNotSignedIn = errors.New("not signed in")

// Catalog is the part of the record catalog the orchestrator writes to.
type Catalog interface {
	Identity() string
	Add(ctx context.Context, rec models.Record) error
}

type Options struct {
	MaxFiles    int
	MaxFileSize int64
	// Folder is the base folder; uploads go to Folder/<identity>.
	Folder        string
	SuccessExpiry time.Duration
	// ErrorExpiry is raised to SuccessExpiry when shorter.
	ErrorExpiry time.Duration
	// Timeout bounds each file's upload, retries included. Zero means none.
	Timeout time.Duration
	// Retries is how many extra attempts a retryable failure gets.
	Retries   uint64
	RetryBase time.Duration
}

func (o *Options) normalize() {
	if o.MaxFiles <= 0 {
		o.MaxFiles = DefaultMaxFiles
	}
	if o.MaxFileSize <= 0 {
		o.MaxFileSize = assethost.MaxFileSize
	}
	if o.SuccessExpiry <= 0 {
		o.SuccessExpiry = DefaultExpiry
	}
	if o.ErrorExpiry < o.SuccessExpiry {
		o.ErrorExpiry = o.SuccessExpiry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = 500 * time.Millisecond
	}
}

// Result summarizes one Submit call.
type Result struct {
	Tasks  []models.UploadTask
	Added  []models.Record
	Failed int
}

// Observer receives every task transition; evicted is true when the task
// has been dropped from the progress list.
type Observer func(task models.UploadTask, evicted bool)

type entry struct {
	task  models.UploadTask
	timer timex.Timer
}

type Orchestrator struct {
	uploader assethost.Uploader
	catalog  Catalog
	clock    timex.Clock
	log      logging.Logger
	metrics  *metrics.Metrics
	opts     Options
	newID    func() string

	run sync.Mutex

	mu       sync.Mutex
	gen      int
	entries  []*entry
	observer Observer
}

func New(uploader assethost.Uploader, catalog Catalog, clock timex.Clock, log logging.Logger, m *metrics.Metrics, opts Options) *Orchestrator {
	opts.normalize()
	if clock == nil {
		clock = timex.Real()
	}
	return &Orchestrator{
		uploader: uploader,
		catalog:  catalog,
		clock:    clock,
		log:      log.With("component", "upload"),
		metrics:  m,
		opts:     opts,
		newID:    uuid.NewString,
	}
}

// OnChange installs the transition observer. It is called without locks held.
func (o *Orchestrator) OnChange(fn Observer) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.observer = fn
}

// CheckConfig reports whether the asset host can accept uploads at all.
func (o *Orchestrator) CheckConfig() error {
	return o.uploader.CheckConfig()
}

// Tasks returns the current progress list in submission order.
func (o *Orchestrator) Tasks() []models.UploadTask {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]models.UploadTask, 0, len(o.entries))
	for _, e := range o.entries {
		out = append(out, e.task)
	}
	return out
}

// Submit uploads up to maxFiles of files (Options.MaxFiles when maxFiles
// is not positive), one at a time, and blocks until the batch is done.
func (o *Orchestrator) Submit(ctx context.Context, files []models.Blob, maxFiles int) Result {
	o.run.Lock()
	defer o.run.Unlock()

	if maxFiles <= 0 {
		maxFiles = o.opts.MaxFiles
	}
	if len(files) > maxFiles {
		o.log.Warn(ctx, "too many files selected, extra files ignored", "selected", len(files), "max", maxFiles)
		files = files[:maxFiles]
	}

	gen, entries := o.reset(files)
	res := Result{}

	identity := o.catalog.Identity()
	if identity == "" {
		o.failAll(gen, entries, ErrNotSignedIn)
		return o.finish(res, entries)
	}
	if err := o.uploader.CheckConfig(); err != nil {
		o.log.Error(ctx, "asset host not configured", "error", err)
		o.failAll(gen, entries, err)
		return o.finish(res, entries)
	}

	pending := make([]int, 0, len(files))
	for i, f := range files {
		if err := assethost.Validate(f, o.opts.MaxFileSize); err != nil {
			o.metrics.Upload(metrics.ResultRejected, 0)
			o.fail(gen, entries[i], rejectMessage(err, o.opts.MaxFileSize))
			continue
		}
		pending = append(pending, i)
	}

	folder := assethost.ScopedFolder(o.opts.Folder, identity)

	for _, i := range pending {
		f, e := files[i], entries[i]

		if err := ctx.Err(); err != nil {
			o.fail(gen, e, "cancelled")
			continue
		}

		o.update(e, func(t *models.UploadTask) {
			t.Status = models.TaskUploading
			t.Progress = 0
		})

		asset, err := o.upload(ctx, f, folder, identity)
		if err != nil {
			o.metrics.Upload(metrics.ResultFailed, 0)
			o.log.Warn(ctx, "upload failed", "file", f.Name(), "error", err)
			o.fail(gen, e, assethost.HostMessage(err))
			continue
		}

		rec := o.record(f, asset)
		if err := o.catalog.Add(ctx, rec); err != nil {
			o.metrics.Upload(metrics.ResultUnsaved, 0)
			o.log.Error(ctx, "uploaded file not saved to index", "file", f.Name(), "remote_id", asset.RemoteID, "error", err)
			if errors.Is(err, index.ErrStorageWrite) {
				// the record is listed but will not survive a restart
				o.update(e, func(t *models.UploadTask) { t.RecordID = rec.ID })
			}
			o.fail(gen, e, fmt.Sprintf("uploaded but not saved: %v", err))
			continue
		}

		o.metrics.Upload(metrics.ResultSuccess, asset.Bytes)
		res.Added = append(res.Added, rec)
		o.update(e, func(t *models.UploadTask) {
			t.Status = models.TaskSuccess
			t.Progress = 100
			t.RecordID = rec.ID
		})
		o.expire(gen, e, o.opts.SuccessExpiry)
	}

	return o.finish(res, entries)
}

func (o *Orchestrator) upload(ctx context.Context, f models.Blob, folder, identity string) (*models.Asset, error) {
	if o.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.opts.Timeout)
		defer cancel()
	}
	if o.opts.Retries == 0 {
		return o.uploader.Upload(ctx, f, folder, identity)
	}

	var asset *models.Asset
	backoff := retry.WithMaxRetries(o.opts.Retries, retry.NewExponential(o.opts.RetryBase))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		a, err := o.uploader.Upload(ctx, f, folder, identity)
		if err != nil {
			if assethost.Retryable(err) {
				o.log.Debug(ctx, "retrying upload", "file", f.Name(), "error", err)
				return retry.RetryableError(err)
			}
			return err
		}
		asset = a
		return nil
	})
	return asset, err
}

func (o *Orchestrator) record(f models.Blob, asset *models.Asset) models.Record {
	size := asset.Bytes
	if size <= 0 {
		size = f.Size()
	}
	created := asset.CreatedAt
	if created.IsZero() {
		created = o.clock.Now().UTC()
	}
	return models.Record{
		ID:        o.newID(),
		Name:      f.Name(),
		Category:  models.CategoryFromName(f.Name()),
		Asset:     &models.AssetRef{RemoteID: asset.RemoteID, SecureURL: asset.SecureURL},
		SizeBytes: &size,
		Format:    assethost.FormatOf(asset, f),
		CreatedAt: created,
	}
}

// reset drops the previous batch and queues files as a new one.
func (o *Orchestrator) reset(files []models.Blob) (int, []*entry) {
	o.mu.Lock()
	for _, e := range o.entries {
		if e.timer != nil {
			e.timer.Stop()
		}
	}
	o.gen++
	gen := o.gen
	entries := make([]*entry, 0, len(files))
	for _, f := range files {
		name := ""
		if f != nil {
			name = f.Name()
		}
		entries = append(entries, &entry{task: models.UploadTask{FileName: name, Status: models.TaskQueued}})
	}
	// the progress list shrinks on eviction; Submit keeps indexing its own copy
	o.entries = append([]*entry(nil), entries...)
	obs := o.observer
	o.mu.Unlock()

	if obs != nil {
		for _, e := range entries {
			obs(e.task, false)
		}
	}
	return gen, entries
}

func (o *Orchestrator) update(e *entry, fn func(t *models.UploadTask)) {
	o.mu.Lock()
	fn(&e.task)
	task := e.task
	obs := o.observer
	o.mu.Unlock()

	if obs != nil {
		obs(task, false)
	}
}

func (o *Orchestrator) fail(gen int, e *entry, msg string) {
	o.update(e, func(t *models.UploadTask) {
		t.Status = models.TaskError
		t.Error = msg
	})
	o.expire(gen, e, o.opts.ErrorExpiry)
}

func (o *Orchestrator) failAll(gen int, entries []*entry, err error) {
	for _, e := range entries {
		o.metrics.Upload(metrics.ResultRejected, 0)
		o.fail(gen, e, err.Error())
	}
}

func (o *Orchestrator) expire(gen int, e *entry, after time.Duration) {
	t := o.clock.AfterFunc(after, func() { o.evict(gen, e) })

	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.gen {
		t.Stop()
		return
	}
	e.timer = t
}

func (o *Orchestrator) evict(gen int, e *entry) {
	o.mu.Lock()
	if gen != o.gen {
		o.mu.Unlock()
		return
	}
	found := false
	kept := make([]*entry, 0, len(o.entries))
	for _, x := range o.entries {
		if x == e {
			found = true
			continue
		}
		kept = append(kept, x)
	}
	o.entries = kept
	task := e.task
	obs := o.observer
	o.mu.Unlock()

	if found && obs != nil {
		obs(task, true)
	}
}

func (o *Orchestrator) finish(res Result, entries []*entry) Result {
	o.mu.Lock()
	defer o.mu.Unlock()
	res.Tasks = make([]models.UploadTask, 0, len(entries))
	for _, e := range entries {
		res.Tasks = append(res.Tasks, e.task)
		if e.task.Status == models.TaskError {
			res.Failed++
		}
	}
	return res
}

func rejectMessage(err error, maxSize int64) string {
	if errors.Is(err, assethost.ErrFileTooLarge) {
		return fmt.Sprintf("File too large (max %dMB)", maxSize>>20)
	}
	return err.Error()
}
