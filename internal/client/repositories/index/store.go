package index

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/healthrecords/internal/client/models"
	"github.com/dmitrijs2005/healthrecords/internal/client/repositories/kv"
	"github.com/dmitrijs2005/healthrecords/internal/logging"
)

var (
	ErrStorageRead  = errors.New("index storage read failed")
	ErrStorageWrite = errors.New("index storage write failed")
	ErrNoIdentity   = errors.New("identity is empty")
)

// KeyPrefix namespaces index keys in the substrate.
const KeyPrefix = "health-records-"

// Key returns the substrate key of identity's index.
func Key(identity string) string {
	return KeyPrefix + identity
}

// Store loads and saves whole indexes.
type Store interface {
	// Load returns the saved records of identity. found is false when
	// nothing usable was ever saved; Load never fails.
	Load(ctx context.Context, identity string) (records []models.Record, found bool)
	// Save replaces the saved records of identity.
	Save(ctx context.Context, identity string, records []models.Record) error
}

// KVStore is a Store over a string key-value substrate.
type KVStore struct {
	repo kv.Repository
	log  logging.Logger
}

func NewKVStore(repo kv.Repository, log logging.Logger) *KVStore {
	return &KVStore{repo: repo, log: log.With("component", "index")}
}

func (s *KVStore) Load(ctx context.Context, identity string) ([]models.Record, bool) {
	if identity == "" {
		return nil, false
	}

	raw, ok, err := s.repo.Get(ctx, Key(identity))
	if err != nil {
		s.log.Warn(ctx, "index load failed, treating as empty",
			"identity", identity, "error", fmt.Errorf("%w: %w", ErrStorageRead, err))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	records, err := Decode([]byte(raw))
	if err != nil {
		s.log.Warn(ctx, "stored index is corrupt, ignoring it", "identity", identity, "error", err)
		return nil, false
	}
	return records, true
}

func (s *KVStore) Save(ctx context.Context, identity string, records []models.Record) error {
	if identity == "" {
		return fmt.Errorf("%w: %w", ErrStorageWrite, ErrNoIdentity)
	}

	data, err := Encode(records)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}

	if err := s.repo.Set(ctx, Key(identity), string(data)); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}

	s.log.Debug(ctx, "index saved", "identity", identity, "records", len(records))
	return nil
}
