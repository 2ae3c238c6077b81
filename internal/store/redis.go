package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"layout-converter/internal/catalog"
	"layout-converter/internal/mapping"
)

// RedisStore keeps configs as JSON strings under <prefix>:config:<name>,
// indexed by the set <prefix>:configs.
type RedisStore struct {
	client *redis.Client
	prefix string
	opt    options
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore wraps a client. The store owns the client and closes it in
// Close.
func NewRedisStore(client *redis.Client, prefix string, opts ...Option) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, opt: buildOptions(opts)}
}

// DialRedis connects to addr and checks the connection.
func DialRedis(ctx context.Context, addr, password string, db int, prefix string, opts ...Option) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}

	return NewRedisStore(rdb, prefix, opts...), nil
}

func (s *RedisStore) configKey(name string) string { return s.prefix + ":config:" + name }
func (s *RedisStore) indexKey() string             { return s.prefix + ":configs" }
func (s *RedisStore) fieldsKey() string            { return s.prefix + ":custom_fields" }

// Save implements ConfigStore. The version bump is an optimistic
// transaction on the config key.
func (s *RedisStore) Save(ctx context.Context, cfg mapping.OutputConfig) (*Document, error) {
	if err := checkName(cfg.Name); err != nil {
		return nil, err
	}

	key := s.configKey(cfg.Name)

	var doc *Document

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		var prev *Document

		raw, err := tx.Get(ctx, key).Bytes()

		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return err
		default:
			if prev, err = DecodeDocument(raw); err != nil {
				return err
			}
		}

		doc = nextDocument(prev, cfg, s.opt.now())

		data, err := encodeDocument(doc)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			pipe.SAdd(ctx, s.indexKey(), cfg.Name)

			return nil
		})

		return err
	}, key)
	if err != nil {
		return nil, fmt.Errorf("saving config %q: %w", cfg.Name, err)
	}

	return doc, nil
}

// Load implements ConfigStore.
func (s *RedisStore) Load(ctx context.Context, name string) (*Document, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	raw, err := s.client.Get(ctx, s.configKey(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	if err != nil {
		return nil, fmt.Errorf("loading config %q: %w", name, err)
	}

	return DecodeDocument(raw)
}

// List implements ConfigStore. Names whose document disappeared since the
// index was read are skipped.
func (s *RedisStore) List(ctx context.Context) ([]Summary, error) {
	names, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("listing configs: %w", err)
	}

	out := make([]Summary, 0, len(names))

	for _, name := range names {
		doc, err := s.Load(ctx, name)
		if errors.Is(err, ErrNotFound) {
			continue
		}

		if err != nil {
			return nil, err
		}

		out = append(out, doc.Summary())
	}

	sortSummaries(out)

	return out, nil
}

// Delete implements ConfigStore.
func (s *RedisStore) Delete(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}

	var del *redis.IntCmd

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, s.configKey(name))
		pipe.SRem(ctx, s.indexKey(), name)

		return nil
	})
	if err != nil {
		return fmt.Errorf("deleting config %q: %w", name, err)
	}

	if del.Val() == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	return nil
}

// LoadCustomFields implements CatalogStore.
func (s *RedisStore) LoadCustomFields(ctx context.Context) ([]catalog.Field, error) {
	raw, err := s.client.Get(ctx, s.fieldsKey()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("loading custom fields: %w", err)
	}

	var fields []catalog.Field
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decoding custom fields: %w", err)
	}

	return fields, nil
}

// SaveCustomFields implements CatalogStore.
func (s *RedisStore) SaveCustomFields(ctx context.Context, fields []catalog.Field) error {
	data, err := json.Marshal(retained(fields))
	if err != nil {
		return fmt.Errorf("encoding custom fields: %w", err)
	}

	if err := s.client.Set(ctx, s.fieldsKey(), data, 0).Err(); err != nil {
		return fmt.Errorf("saving custom fields: %w", err)
	}

	return nil
}

// Close implements Store.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
