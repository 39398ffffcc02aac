// Package settings is the key-value configuration store the form reads its
// defaults from and writes submissions to.
package settings

import (
	"context"
	"errors"
	"fmt"
)

var ErrUnknownDriver = errors.New("settings: unknown store driver")

// Values holds the keys of one namespace.
type Values map[string]string

func (v Values) clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Store persists namespaced values. Get on an unknown namespace returns empty
// values. Set writes every given key and leaves the others untouched.
type Store interface {
	Get(ctx context.Context, namespace string) (Values, error)
	Set(ctx context.Context, namespace string, values Values) error
	Close() error
}

// Open returns the store for driver. dsn is driver specific: a file path for
// sqlite and badger, a connection URL for postgres and redis.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return OpenSQLite(ctx, dsn)
	case "postgres":
		return OpenPostgres(ctx, dsn)
	case "redis":
		return OpenRedis(ctx, dsn)
	case "badger":
		return OpenBadger(dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}
