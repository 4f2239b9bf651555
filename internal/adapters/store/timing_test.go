package store

import (
	"bytes"
	"context"
	"field-route-service/internal/adapters/repositories"
	"field-route-service/internal/platform/db"
	"field-route-service/internal/platform/obs"
	"log"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prev, flags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prev)
		log.SetFlags(flags)
	})
	return &buf
}

func TestKeyValueStoresLogTimedOps(t *testing.T) {
	ctx := obs.WithRequestID(context.Background(), "req-kv")

	conn, err := db.OpenSqlite(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, repositories.InitSchema(conn))

	redisKV, _ := newTestRedisStore(t, "")

	stores := map[string]interface {
		Get(ctx context.Context, key string) (string, bool, error)
		SetMany(ctx context.Context, entries map[string]string) error
	}{
		"sqlite": NewSqliteKeyValueStore(conn),
		"redis":  redisKV,
	}

	for name, kv := range stores {
		buf := captureLog(t)

		require.NoError(t, kv.SetMany(ctx, map[string]string{"k": "v"}))
		_, _, err := kv.Get(ctx, "k")
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "req_id=req-kv op=route.kv."+name+".SetMany", name)
		assert.Contains(t, out, "req_id=req-kv op=route.kv."+name+".Get", name)
	}
}
