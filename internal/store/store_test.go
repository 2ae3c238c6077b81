package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"layout-converter/internal/catalog"
	"layout-converter/internal/config"
	"layout-converter/internal/mapping"
)

var savedAt = time.Date(2025, time.July, 4, 12, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return savedAt }

func sampleConfig(name string) mapping.OutputConfig {
	cfg := mapping.NewOutputConfig(mapping.FormatFixedWidth)
	cfg.Name = name
	cfg.Encoding = mapping.EncodingWindows1252
	cfg.Fields = []mapping.OutputField{
		{
			ID: "f1", Order: 0,
			Layout: &mapping.Layout{Length: 11, PadChar: "0", PadDirection: mapping.PadLeft},
			Source: mapping.MappedSource{FieldID: "cpf"},
		},
		{
			ID: "f2", Order: 1,
			Layout: &mapping.Layout{Length: 3, PadChar: "0", PadDirection: mapping.PadLeft},
			Source: mapping.StaticSource{Label: "Banco", Value: "341"},
		},
		{
			ID: "f3", Order: 2, DateFormat: mapping.DateYYYYMMDD,
			Layout: &mapping.Layout{Length: 8, PadChar: "0", PadDirection: mapping.PadLeft},
			Source: mapping.CalculatedSource{
				Label:            "Início",
				Algorithm:        mapping.AlgorithmStartDate,
				RequiredFieldIDs: []string{"parcelas_pagas"},
				Parameters:       map[string]string{mapping.ParamReferencePeriod: "31/12/2024"},
			},
		},
	}

	return cfg
}

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"minimal", `{"name":"a","fields":[]}`, false},
		{"full", `{"name":"a","format":"delimited","fields":[{"id":"x"}],"version":3}`, false},
		{"missing fields", `{"name":"a"}`, true},
		{"null fields", `{"name":"a","fields":null}`, true},
		{"missing name", `{"fields":[]}`, true},
		{"numeric name", `{"name":1,"fields":[]}`, true},
		{"blank name", `{"name":"  ","fields":[]}`, true},
		{"fields object", `{"name":"a","fields":{}}`, true},
		{"array", `[]`, true},
		{"not json", `name: a`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument([]byte(tt.raw))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidDocument)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestRetained(t *testing.T) {
	fields := []catalog.Field{
		{ID: "cpf", Core: true, Retained: true},
		{ID: "convenio", Retained: true},
		{ID: "lote"},
	}

	assert.Equal(t, []catalog.Field{{ID: "convenio", Retained: true}}, retained(fields))
}

// testStore runs the behaviour every backend shares. open returns an empty
// store.
func testStore(t *testing.T, open func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("save and load", func(t *testing.T) {
		s := open(t)
		cfg := sampleConfig("Remessa Banco/01")

		doc, err := s.Save(ctx, cfg)
		require.NoError(t, err)
		assert.Equal(t, 1, doc.Version)
		assert.True(t, doc.SavedAt.Equal(savedAt))

		got, err := s.Load(ctx, cfg.Name)
		require.NoError(t, err)
		assert.Equal(t, 1, got.Version)
		assert.True(t, got.SavedAt.Equal(savedAt))

		if diff := cmp.Diff(cfg, got.OutputConfig); diff != "" {
			t.Errorf("config mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("save increments version", func(t *testing.T) {
		s := open(t)

		_, err := s.Save(ctx, sampleConfig("lote"))
		require.NoError(t, err)

		cfg := sampleConfig("lote")
		cfg.Fields = cfg.Fields[:1]

		doc, err := s.Save(ctx, cfg)
		require.NoError(t, err)
		assert.Equal(t, 2, doc.Version)

		list, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, []Summary{{
			Name: "lote", Version: 2, SavedAt: list[0].SavedAt, Format: mapping.FormatFixedWidth, Fields: 1,
		}}, list)
	})

	t.Run("list is sorted", func(t *testing.T) {
		s := open(t)

		for _, name := range []string{"b", "c", "a"} {
			_, err := s.Save(ctx, sampleConfig(name))
			require.NoError(t, err)
		}

		list, err := s.List(ctx)
		require.NoError(t, err)

		names := make([]string, len(list))
		for i, sum := range list {
			names[i] = sum.Name
		}

		assert.Equal(t, []string{"a", "b", "c"}, names)
	})

	t.Run("delete", func(t *testing.T) {
		s := open(t)

		_, err := s.Save(ctx, sampleConfig("lote"))
		require.NoError(t, err)
		require.NoError(t, s.Delete(ctx, "lote"))

		_, err = s.Load(ctx, "lote")
		require.ErrorIs(t, err, ErrNotFound)
		require.ErrorIs(t, s.Delete(ctx, "lote"), ErrNotFound)

		list, err := s.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("not found", func(t *testing.T) {
		s := open(t)

		_, err := s.Load(ctx, "missing")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("invalid name", func(t *testing.T) {
		s := open(t)

		_, err := s.Save(ctx, sampleConfig(" "))
		require.ErrorIs(t, err, ErrInvalidName)
	})

	t.Run("custom fields", func(t *testing.T) {
		s := open(t)

		fields, err := s.LoadCustomFields(ctx)
		require.NoError(t, err)
		assert.Empty(t, fields)

		require.NoError(t, s.SaveCustomFields(ctx, []catalog.Field{
			{ID: "cpf", Name: "CPF", Group: catalog.GroupIdentification, Core: true, Retained: true},
			{ID: "convenio", Name: "Convênio", Group: catalog.GroupCustom, Retained: true},
			{ID: "lote", Name: "Lote", Group: catalog.GroupCustom},
			{ID: "agente", Name: "Agente", Group: catalog.GroupCustom, Comment: "código do agente", Retained: true},
		}))

		fields, err = s.LoadCustomFields(ctx)
		require.NoError(t, err)
		assert.Equal(t, []catalog.Field{
			{ID: "convenio", Name: "Convênio", Group: catalog.GroupCustom, Retained: true},
			{ID: "agente", Name: "Agente", Group: catalog.GroupCustom, Comment: "código do agente", Retained: true},
		}, fields)

		require.NoError(t, s.SaveCustomFields(ctx, nil))

		fields, err = s.LoadCustomFields(ctx)
		require.NoError(t, err)
		assert.Empty(t, fields)
	})
}

func TestFileStore(t *testing.T) {
	testStore(t, func(t *testing.T) Store {
		s, err := NewFileStore(t.TempDir(), WithClock(fixedClock))
		require.NoError(t, err)

		return s
	})
}

func TestFileStore_InvalidDocument(t *testing.T) {
	dir := t.TempDir()

	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, configsDir, "broken.json"), []byte(`{"name":1}`), filePerm))

	_, err = s.Load(context.Background(), "broken")
	require.ErrorIs(t, err, ErrInvalidDocument)
}

func TestSQLiteStore(t *testing.T) {
	testStore(t, func(t *testing.T) Store {
		s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "layouts.db"), WithClock(fixedClock))
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })

		return s
	})
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("LAYOUTCONV_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("LAYOUTCONV_TEST_REDIS_ADDR not set")
	}

	testStore(t, func(t *testing.T) Store {
		ctx := context.Background()
		prefix := "layoutconv_test_" + uuid.NewString()

		s, err := DialRedis(ctx, addr, "", 0, prefix, WithClock(fixedClock))
		require.NoError(t, err)

		t.Cleanup(func() {
			cleanup := redis.NewClient(&redis.Options{Addr: addr})
			defer cleanup.Close()

			keys, err := cleanup.Keys(ctx, prefix+":*").Result()
			if err == nil && len(keys) > 0 {
				cleanup.Del(ctx, keys...)
			}

			_ = s.Close()
		})

		return s
	})
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, config.StorageSettings{Backend: config.BackendFile, Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	s, err = Open(ctx, config.StorageSettings{
		Backend: config.BackendSQLite,
		SQLite:  config.SQLiteSettings{Path: filepath.Join(t.TempDir(), "x.db")},
	})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open(ctx, config.StorageSettings{Backend: "s3"})
	require.Error(t, err)
}
