package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"todo-api/internal/database"
	"todo-api/internal/models"
	"todo-api/internal/repositories"
	"todo-api/internal/routes"
)

// SetupTestDB はテスト用の SQLite データベースを一時ディレクトリに作成し、テーブルを作成します。
// 接続はテスト終了時に閉じられます。
func SetupTestDB(t *testing.T) (*sql.DB, *gin.Engine, *repositories.TodoRepository) {
	t.Helper()

	ctx := context.Background()
	db, err := database.Open(ctx, database.Options{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "todos.db"),
	})
	require.NoError(t, err, "Failed to open test database")
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(ctx, db, database.DriverSQLite), "Failed to create todos table")

	router := SetupTestRouter(t, db)
	todoRepo := repositories.NewTodoRepository(db)

	return db, router, todoRepo
}

// SetupTestRouter はテスト用のGinルーターをセットアップします。
func SetupTestRouter(t *testing.T, db *sql.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return routes.SetupRouter(db, []string{"http://localhost:3000"})
}

// CreateTestTodo はAPI経由でTODOを作成し、レスポンスを返します。
func CreateTestTodo(t *testing.T, router *gin.Engine, title, description string, completed bool) *models.Todo {
	t.Helper()

	todoPayload := map[string]interface{}{
		"title":       title,
		"description": description,
		"completed":   completed,
	}
	body, _ := json.Marshal(todoPayload)

	resp := DoRequest(t, router, http.MethodPost, "/todos", body)
	require.Equal(t, http.StatusCreated, resp.Code, "TODO作成に失敗しました: %s", resp.Body.String())

	var createdTodo models.Todo
	err := json.Unmarshal(resp.Body.Bytes(), &createdTodo)
	require.NoError(t, err)
	return &createdTodo
}

// DoRequest はルーターにリクエストを送り、レコーダーを返します。body が nil ならボディなしです。
func DoRequest(t *testing.T, router *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}
