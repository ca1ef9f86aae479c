package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/healthrecords/internal/client/models"
	"github.com/dmitrijs2005/healthrecords/internal/client/repositories/index"
	"github.com/dmitrijs2005/healthrecords/internal/logging"
	"github.com/dmitrijs2005/healthrecords/internal/metrics"
)

var (
	ErrNotInitialized = errors.New("catalog not initialized")
	ErrNoIdentity     = errors.New("no signed-in identity")
	ErrInvalidRecord  = errors.New("invalid record")
)

type Catalog struct {
	mu      sync.RWMutex
	store   index.Store
	log     logging.Logger
	metrics *metrics.Metrics

	identity string
	records  []models.Record
	ready    bool
}

func New(store index.Store, log logging.Logger, m *metrics.Metrics) *Catalog {
	return &Catalog{store: store, log: log.With("component", "catalog"), metrics: m}
}

// SeedRecords returns the demo records shown to an identity that has
// never saved an index.
func SeedRecords() []models.Record {
	return []models.Record{
		{ID: "1", Name: "Lab Report - Feb.pdf", Category: models.CategoryLab, Format: "pdf", Added: "2 days ago"},
		{ID: "2", Name: "Prescription - Dr. Rao.png", Category: models.CategoryPrescription, Format: "png", Added: "1 week ago"},
	}
}

// Initialize loads the index of identity. An identity with nothing saved
// gets the demo records, which are saved at once so they appear only once
// per identity. A failed seed save still leaves the catalog usable.
func (c *Catalog) Initialize(ctx context.Context, identity string) error {
	if identity == "" {
		return ErrNoIdentity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	records, found := c.store.Load(ctx, identity)

	c.identity = identity
	c.ready = true

	if found {
		c.records = records
		c.metrics.SetIndexSize(len(c.records))
		c.log.Info(ctx, "index loaded", "identity", identity, "records", len(records))
		return nil
	}

	c.records = SeedRecords()
	c.log.Info(ctx, "no saved index, seeding demo records", "identity", identity)
	return c.persistLocked(ctx)
}

// Reset forgets the loaded index, e.g. on sign-out.
func (c *Catalog) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.identity = ""
	c.records = nil
	c.ready = false
	c.metrics.SetIndexSize(0)
}

func (c *Catalog) Identity() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.identity
}

func (c *Catalog) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ready
}

// Add prepends rec and saves the index.
func (c *Catalog) Add(ctx context.Context, rec models.Record) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.ready {
		return ErrNotInitialized
	}
	if c.indexLocked(rec.ID) >= 0 {
		return fmt.Errorf("%w: %w %q", ErrInvalidRecord, models.ErrDuplicateID, rec.ID)
	}

	next := make([]models.Record, 0, len(c.records)+1)
	next = append(next, rec.Clone())
	c.records = append(next, c.records...)

	c.log.Info(ctx, "record added", "id", rec.ID, "name", rec.Name, "category", rec.Category)
	return c.persistLocked(ctx)
}

// Remove deletes the record with id. Removing an unknown id changes
// nothing and saves nothing.
func (c *Catalog) Remove(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.ready {
		return false, ErrNotInitialized
	}

	i := c.indexLocked(id)
	if i < 0 {
		return false, nil
	}

	next := make([]models.Record, 0, len(c.records)-1)
	next = append(next, c.records[:i]...)
	c.records = append(next, c.records[i+1:]...)

	c.log.Info(ctx, "record removed", "id", id)
	return true, c.persistLocked(ctx)
}

// Import merges records from an exported index in front of the current
// ones. Records whose id is already present are skipped.
func (c *Catalog) Import(ctx context.Context, records []models.Record) (int, error) {
	if err := index.Check(records); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.ready {
		return 0, ErrNotInitialized
	}

	merged, added := index.Merge(c.records, records)
	if added == 0 {
		return 0, nil
	}
	c.records = merged

	c.log.Info(ctx, "records imported", "added", added)
	return added, c.persistLocked(ctx)
}

// Get returns a copy of the record with id.
func (c *Catalog) Get(id string) (models.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := c.indexLocked(id)
	if i < 0 {
		return models.Record{}, false
	}
	return c.records[i].Clone(), true
}

// Records returns a copy of the whole index, newest first.
func (c *Catalog) Records() []models.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneAll(c.records)
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Query returns the records whose name contains search (case-insensitive,
// empty matches all) and whose category equals typeFilter (case-insensitive,
// "all" or empty matches all), in index order.
func (c *Catalog) Query(search, typeFilter string) []models.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Filter(c.records, search, typeFilter)
}

// DistinctCategories returns "all" followed by each category present, in
// first-seen order. Categories differing only in case are reported once,
// with the first spelling seen.
func (c *Catalog) DistinctCategories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Categories(c.records)
}

func (c *Catalog) indexLocked(id string) int {
	for i := range c.records {
		if c.records[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Catalog) persistLocked(ctx context.Context) error {
	c.metrics.SetIndexSize(len(c.records))

	if err := c.store.Save(ctx, c.identity, c.records); err != nil {
		c.metrics.PersistFailed()
		c.log.Error(ctx, "index save failed, keeping changes in memory", "identity", c.identity, "error", err)
		return err
	}
	return nil
}

// Filter is the pure form of Query.
func Filter(records []models.Record, search, typeFilter string) []models.Record {
	needle := strings.ToLower(search)
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if needle != "" && !strings.Contains(strings.ToLower(r.Name), needle) {
			continue
		}
		if typeFilter != "" && !strings.EqualFold(typeFilter, models.CategoryAll) &&
			!strings.EqualFold(typeFilter, string(r.Category)) {
			continue
		}
		out = append(out, r.Clone())
	}
	return out
}

// Categories is the pure form of DistinctCategories.
func Categories(records []models.Record) []string {
	out := []string{models.CategoryAll}
	seen := map[string]struct{}{models.CategoryAll: {}}
	for _, r := range records {
		key := strings.ToLower(string(r.Category))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, string(r.Category))
	}
	return out
}

func cloneAll(records []models.Record) []models.Record {
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		out = append(out, r.Clone())
	}
	return out
}
