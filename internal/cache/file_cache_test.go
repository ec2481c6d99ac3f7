package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func TestFileCacheRoundTrip(t *testing.T) {
	t.Setenv("ROOT_PATH", t.TempDir())

	fc := NewFileCache[payload]("test")
	key := fc.GenerateKey("a.jp2", "b.jp2", "ndvi")

	_, ok := fc.Get(key)
	require.False(t, ok)

	want := payload{Name: "ndvi", Value: 0.42}
	require.NoError(t, fc.Set(key, want))

	got, ok := fc.Get(key)
	require.True(t, ok)
	require.Equal(t, want, got)
}

func TestFileCacheRejectsTamperedEntry(t *testing.T) {
	root := t.TempDir()
	t.Setenv("ROOT_PATH", root)

	fc := NewFileCache[payload]("test")
	key := fc.GenerateKey("a.jp2")
	require.NoError(t, fc.Set(key, payload{Name: "ndvi", Value: 1}))

	cacheFile := filepath.Join(root, "data", "test", key+".json")
	tampered := `{"data":{"name":"ndvi","value":2},"created_at":"2024-01-01T00:00:00Z","checksum":"deadbeef"}`
	require.NoError(t, os.WriteFile(cacheFile, []byte(tampered), 0644))

	_, ok := fc.Get(key)
	require.False(t, ok)
}

func TestGenerateKeyIsStable(t *testing.T) {
	fc := NewFileCache[payload]("test")
	require.Equal(t, fc.GenerateKey("x", 1), fc.GenerateKey("x", 1))
	require.NotEqual(t, fc.GenerateKey("x", 1), fc.GenerateKey("x", 2))
}
