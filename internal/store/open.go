package store

import (
	"context"
	"fmt"

	"layout-converter/internal/config"
)

// Open creates the backend selected by the settings.
func Open(ctx context.Context, s config.StorageSettings, opts ...Option) (Store, error) {
	var (
		st  Store
		err error
	)

	switch s.Backend {
	case config.BackendFile:
		st, err = NewFileStore(s.Dir, opts...)
	case config.BackendRedis:
		st, err = DialRedis(ctx, s.Redis.Addr, s.Redis.Password, s.Redis.DB, s.Redis.Prefix, opts...)
	case config.BackendSQLite:
		st, err = OpenSQLite(ctx, s.SQLite.Path, opts...)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", s.Backend)
	}

	if err != nil {
		return nil, err
	}

	return st, nil
}
