// Package storage defines the StudentStore interface, the contract any
// persistence backend must satisfy, and Open, which picks a backend from
// configuration.
//
// Handlers and services depend only on the interface, so tests can pass
// an in-memory fake and deployments can switch between SQLite and Redis
// without touching anything above this package.
package storage

import (
	"context"
	"fmt"

	"github.com/aanand-mishra/students-service/internal/config"
	"github.com/aanand-mishra/students-service/internal/storage/redis"
	"github.com/aanand-mishra/students-service/internal/storage/sqlite"
	"github.com/aanand-mishra/students-service/internal/types"
)

// StudentStore is the persistence contract for student records.
type StudentStore interface {
	// Save durably writes a new record and returns it with the
	// storage-assigned ID filled in. Any ID on the input is ignored.
	Save(ctx context.Context, student types.Student) (types.Student, error)

	// FindAll returns every record in ascending ID order.
	// Returns an empty slice (not nil) if there are none.
	FindAll(ctx context.Context) ([]types.Student, error)
}

// Backend is a StudentStore that owns a connection which must be released.
type Backend interface {
	StudentStore
	Close() error
}

// Open connects to the backend named by cfg.Storage.Driver.
func Open(ctx context.Context, cfg *config.Config) (Backend, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		s, err := sqlite.New(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverRedis:
		s, err := redis.New(ctx, redis.Options{
			Addr:     cfg.Storage.Redis.Addr,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("storage.Open: unknown driver %q", cfg.Storage.Driver)
	}
}
