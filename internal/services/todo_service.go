package services

import (
	"context"
	"time"

	"todo-api/internal/models"
	"todo-api/internal/repositories"
)

// TodoService はTodo関連のロジック (パッチの適用とタイムスタンプ管理) を扱います。
type TodoService struct {
	todoRepo *repositories.TodoRepository
	now      func() time.Time
}

// NewTodoService は新しいTodoServiceを作成します。
func NewTodoService(todoRepo *repositories.TodoRepository) *TodoService {
	return &TodoService{todoRepo: todoRepo, now: time.Now}
}

// WithClock は現在時刻の取得方法を差し替えます (テスト用)。
func (s *TodoService) WithClock(now func() time.Time) *TodoService {
	s.now = now
	return s
}

// ストアに保存できる精度 (マイクロ秒) に揃えた現在時刻
func (s *TodoService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// CreateTodo は新しいTodoを作成します。created_at と updated_at は同じ時刻になります。
func (s *TodoService) CreateTodo(ctx context.Context, patch models.TodoPatch) (*models.Todo, error) {
	todo := patch.NewTodo()
	now := s.timestamp()
	todo.CreatedAt = now
	todo.UpdatedAt = now
	return s.todoRepo.Create(ctx, todo)
}

// GetTodos はすべてのTodoを取得します。
func (s *TodoService) GetTodos(ctx context.Context) ([]*models.Todo, error) {
	return s.todoRepo.FindAll(ctx)
}

// GetTodoByID は指定IDのTodoを取得します。
func (s *TodoService) GetTodoByID(ctx context.Context, id int) (*models.Todo, error) {
	return s.todoRepo.FindByID(ctx, id)
}

// UpdateTodo は指定されたフィールドだけを上書きし、updated_at を進めます。
// 同じIDへの同時更新は後勝ちです。
func (s *TodoService) UpdateTodo(ctx context.Context, id int, patch models.TodoPatch) (*models.Todo, error) {
	existingTodo, err := s.todoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.ApplyTo(existingTodo)

	// updated_at は必ず前回より後になるようにする
	now := s.timestamp()
	if !now.After(existingTodo.UpdatedAt) {
		now = existingTodo.UpdatedAt.Add(time.Microsecond)
	}
	existingTodo.UpdatedAt = now

	return s.todoRepo.Update(ctx, existingTodo)
}

// DeleteTodo はTodoを完全に削除します。
func (s *TodoService) DeleteTodo(ctx context.Context, id int) error {
	return s.todoRepo.Delete(ctx, id)
}

// Ping はストアが利用可能か確認します。
func (s *TodoService) Ping(ctx context.Context) error {
	return s.todoRepo.Ping(ctx)
}
