// Package repositories はデータベース操作を行うリポジトリを提供します。
package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"todo-api/internal/models"
)

// ErrTodoNotFound はTODOが見つからない場合のエラーです。
var ErrTodoNotFound = errors.New("todo not found")

// ErrStoreUnavailable はデータベースへのアクセスに失敗した場合のエラーです。
var ErrStoreUnavailable = errors.New("store unavailable")

// storeError はドライバーのエラーを ErrStoreUnavailable で包みます。
func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}

// TodoRepository は todos テーブルへの操作を行います。
type TodoRepository struct {
	DB *sql.DB
}

// NewTodoRepository は新しいTodoRepositoryを作成します。
func NewTodoRepository(db *sql.DB) *TodoRepository {
	return &TodoRepository{DB: db}
}

const todoColumns = "id, title, description, completed, created_at, updated_at"

// Create は新しいTodoタスクをデータベースに挿入します。
// タイムスタンプは呼び出し側 (サービス) が設定済みである前提です。
func (r *TodoRepository) Create(ctx context.Context, t *models.Todo) (*models.Todo, error) {
	query := "INSERT INTO todos (title, description, completed, created_at, updated_at) VALUES (?, ?, ?, ?, ?)"

	result, err := r.DB.ExecContext(ctx, query,
		t.Title, t.Description, t.Completed, formatTimestamp(t.CreatedAt), formatTimestamp(t.UpdatedAt))
	if err != nil {
		log.Printf("Failed to insert todo: %v", err)
		return nil, storeError("could not insert todo", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, storeError("could not get last insert ID", err)
	}
	t.ID = int(id)

	return t, nil
}

// FindAll はすべてのTodoタスクをID順に取得します。
func (r *TodoRepository) FindAll(ctx context.Context) ([]*models.Todo, error) {
	query := "SELECT " + todoColumns + " FROM todos ORDER BY id"

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		log.Printf("Failed to query todos: %v", err)
		return nil, storeError("could not query todos", err)
	}
	defer rows.Close()

	// 0件のときも JSON で null ではなく [] を返す
	todos := make([]*models.Todo, 0)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			log.Printf("Failed to scan todo: %v", err)
			return nil, storeError("could not scan todo", err)
		}
		todos = append(todos, t)
	}

	if err = rows.Err(); err != nil {
		return nil, storeError("error iterating todos", err)
	}

	return todos, nil
}

// FindByID は指定されたIDのTodoタスクをデータベースから取得します。
func (r *TodoRepository) FindByID(ctx context.Context, id int) (*models.Todo, error) {
	query := "SELECT " + todoColumns + " FROM todos WHERE id = ?"

	t, err := scanTodo(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTodoNotFound
		}
		log.Printf("Failed to query todo by ID: %v", err)
		return nil, storeError("could not query todo", err)
	}

	return t, nil
}

// Update は t.ID のTodoタスクのすべての列を t の値で上書きします。
func (r *TodoRepository) Update(ctx context.Context, t *models.Todo) (*models.Todo, error) {
	query := "UPDATE todos SET title = ?, description = ?, completed = ?, updated_at = ? WHERE id = ?"

	result, err := r.DB.ExecContext(ctx, query,
		t.Title, t.Description, t.Completed, formatTimestamp(t.UpdatedAt), t.ID)
	if err != nil {
		log.Printf("Failed to update todo: %v", err)
		return nil, storeError("could not update todo", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, storeError("could not get rows affected", err)
	}

	// updated_at は必ず変わるので、0件は行が存在しないことを意味する
	if rowsAffected == 0 {
		return nil, ErrTodoNotFound
	}

	return t, nil
}

// Delete は指定されたIDのTodoタスクを削除します。
func (r *TodoRepository) Delete(ctx context.Context, id int) error {
	query := "DELETE FROM todos WHERE id = ?"

	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		log.Printf("Failed to delete todo: %v", err)
		return storeError("could not delete todo", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storeError("could not get rows affected", err)
	}

	if rowsAffected == 0 {
		return ErrTodoNotFound
	}

	return nil
}

// Ping はストアの疎通を確認します。
func (r *TodoRepository) Ping(ctx context.Context) error {
	if err := r.DB.PingContext(ctx); err != nil {
		return storeError("could not ping database", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (*models.Todo, error) {
	var (
		t                  models.Todo
		createdAt, updated timestamp
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &createdAt, &updated); err != nil {
		return nil, err
	}
	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updated.Time
	return &t, nil
}
