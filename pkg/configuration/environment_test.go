package configuration

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()

	c := &Configuration{}
	c.LogPath = "" // overwritten by env parse
	err := c.load([]string{filepath.Join(dir, ".env.missing")})
	require.NoError(t, err)
	t.Cleanup(c.Unload)

	require.Equal(t, 3200, c.ServerPort)
	require.Equal(t, "exports", c.Export.Dir)
	require.Equal(t, "system-access-form", c.Export.GeneratedBy)
	require.Equal(t, "localhost:3200", c.SocketAddress)
	require.NotNil(t, c.Logger())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("GO_APP_ENV", Production)
	t.Setenv("EXPORT_DIR", "/tmp/exports")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_PATH", filepath.Join(t.TempDir(), "app.log"))

	c := &Configuration{}
	require.NoError(t, c.load(nil))
	t.Cleanup(c.Unload)

	require.Equal(t, ":8081", c.SocketAddress)
	require.Equal(t, "/tmp/exports", c.Export.Dir)
	require.Equal(t, "debug", c.LogLevel)
}
