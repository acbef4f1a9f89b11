package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-api/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configFile = ""
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "todo-api "+version+"\n", out)
}

func TestInitDBCmd(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	dbPath := filepath.Join(dir, "data", "todos.db")
	t.Setenv("TODO_DB_PATH", dbPath)

	out, err := execute(t, "init-db")
	require.NoError(t, err)
	assert.Contains(t, out, "Database initialized!")
	assert.FileExists(t, dbPath)

	// 2回目も成功する
	_, err = execute(t, "init-db")
	require.NoError(t, err)
}

func TestConfigInitCmd(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config", "config.yaml")

	out, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	// 書き出した設定はそのまま読み込める
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	// 既存ファイルは上書きしない
	require.NoError(t, os.WriteFile(path, []byte("db:\n  path: mine.db\n"), 0o644))
	out, err = execute(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "mine.db")
}

func TestInitDBCmd_BadConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TODO_DB_DRIVER", "postgres")

	_, err := execute(t, "init-db")
	assert.Error(t, err)
}
