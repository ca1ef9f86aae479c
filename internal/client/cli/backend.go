package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/healthrecords/internal/client/config"
	"github.com/dmitrijs2005/healthrecords/internal/client/repositories/kv"
	"github.com/dmitrijs2005/healthrecords/internal/logging"
)

// openRepository opens the kv backend named by c.Storage. The returned
// func releases it.
func openRepository(ctx context.Context, c *config.Config, log logging.Logger) (kv.Repository, func() error, error) {
	switch c.Storage {
	case config.StorageSQLite:
		repo, db, err := kv.OpenSQLite(ctx, c.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return repo, db.Close, nil

	case config.StorageRedis:
		repo, err := kv.DialRedis(ctx, kv.RedisOptions{
			Addr:           c.RedisAddr,
			Password:       c.RedisPassword,
			DB:             c.RedisDB,
			KeyPrefix:      c.RedisPrefix,
			ConnectRetries: 3,
		}, log)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil

	case config.StorageMemory:
		log.Warn(ctx, "using in-memory index storage, records are lost on exit")
		repo := kv.NewMemoryRepository()
		return repo, repo.Close, nil
	}
	return nil, nil, fmt.Errorf("%w: unknown storage %q", config.ErrInvalid, c.Storage)
}
