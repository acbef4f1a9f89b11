package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-api/internal/database"
)

// chdirTemp は .env や config.yaml を拾わないよう空のディレクトリに移動します。
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "custom.yaml")
	content := `
server:
  addr: ":9090"
  shutdown_timeout: 3s
db:
  driver: sqlite
  path: data/todos.db
cors:
  allow_origins:
    - http://localhost:3000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "data/todos.db", cfg.DB.Path)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowOrigins)
}

func TestLoad_DiscoversConfigYAML(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("db:\n  path: found.db\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "found.db", cfg.DB.Path)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db:\n  path: file.db\n"), 0o644))

	t.Setenv("TODO_DB_PATH", "env.db")
	t.Setenv("TODO_SERVER_ADDR", ":7070")
	t.Setenv("TODO_CORS_ALLOW_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env.db", cfg.DB.Path)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowOrigins)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TODO_DB_PATH=dotenv.db\n"), 0o644))
	// godotenv は既存の環境変数を上書きしないので、テスト後に消しておく
	t.Cleanup(func() { os.Unsetenv("TODO_DB_PATH") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "dotenv.db", cfg.DB.Path)
}

func TestLoad_Errors(t *testing.T) {
	dir := chdirTemp(t)

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("TODO_DB_DRIVER", "postgres")
		_, err := Load("")
		assert.ErrorIs(t, err, database.ErrUnknownDriver)
	})

	t.Run("empty sqlite path", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(path, []byte("db:\n  path: \"\"\n"), 0o644))
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrEmptyDBPath)
	})
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.DB.Driver = database.DriverMySQL
	cfg.DB.Path = ""
	assert.NoError(t, cfg.Validate(), "mysql does not need a path")

	cfg.Server.Addr = ""
	assert.ErrorIs(t, cfg.Validate(), ErrEmptyAddr)
}

func TestDatabaseOptions(t *testing.T) {
	cfg := Default()
	cfg.DB.DSN = "user:pass@tcp(db:3306)/todos"
	assert.Equal(t, database.Options{
		Driver: database.DriverSQLite,
		Path:   "todos.db",
		DSN:    "user:pass@tcp(db:3306)/todos",
	}, cfg.DatabaseOptions())
}
