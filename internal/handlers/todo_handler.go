package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"todo-api/internal/models"
	"todo-api/internal/repositories"
	"todo-api/internal/services"
)

// TodoHandler はTodo関連のハンドラーを管理します。
type TodoHandler struct {
	todoService *services.TodoService
}

// NewTodoHandler は新しいTodoHandlerを作成します。
func NewTodoHandler(todoService *services.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// CreateTodoHandler は新しいTodoを作成します。
func (h *TodoHandler) CreateTodoHandler(c *gin.Context) {
	patch, err := bindPatch(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	createdTodo, err := h.todoService.CreateTodo(c.Request.Context(), patch)
	if err != nil {
		log.Printf("Failed to create todo: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save todo to database"})
		return
	}
	c.JSON(http.StatusCreated, createdTodo)
}

// GetTodosHandler はすべてのTodoを取得します。
func (h *TodoHandler) GetTodosHandler(c *gin.Context) {
	todos, err := h.todoService.GetTodos(c.Request.Context())
	if err != nil {
		log.Printf("Failed to fetch todos: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch todos from database"})
		return
	}
	c.JSON(http.StatusOK, todos)
}

// GetTodoByIDHandler は指定されたIDのTodoを取得します。
func (h *TodoHandler) GetTodoByIDHandler(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}

	todo, err := h.todoService.GetTodoByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to fetch todo from database")
		return
	}
	c.JSON(http.StatusOK, todo)
}

// UpdateTodoHandler はTodoを更新します。ボディにないフィールドは元の値のままです。
func (h *TodoHandler) UpdateTodoHandler(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}

	patch, err := bindPatch(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	updatedTodo, err := h.todoService.UpdateTodo(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err, "Failed to update todo in database")
		return
	}
	c.JSON(http.StatusOK, updatedTodo)
}

// DeleteTodoHandler はTodoを削除します。
func (h *TodoHandler) DeleteTodoHandler(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}

	if err := h.todoService.DeleteTodo(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete todo from database")
		return
	}
	c.Status(http.StatusNoContent)
}

// DBCheckHandler はデータベース接続の健全性を確認します。
func (h *TodoHandler) DBCheckHandler(c *gin.Context) {
	if err := h.todoService.Ping(c.Request.Context()); err != nil {
		log.Printf("DB Ping failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database connection failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Database connection is healthy"})
}

// todoID はパスの id を整数として取り出します。
// 整数でない id は存在しないルートと同じく 404 を返します。
func todoID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return 0, false
	}
	return id, true
}

// bindPatch はボディを TodoPatch として読み込みます。空のボディは {} と同じ扱いです。
func bindPatch(c *gin.Context) (models.TodoPatch, error) {
	var patch models.TodoPatch
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return patch, nil
	}
	if err := c.ShouldBindJSON(&patch); err != nil {
		if errors.Is(err, io.EOF) {
			return models.TodoPatch{}, nil
		}
		return patch, err
	}
	return patch, nil
}

// respondError はエラーの種類に応じて 404 または 500 を返します。
func respondError(c *gin.Context, err error, message string) {
	if errors.Is(err, repositories.ErrTodoNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	}
	log.Printf("%s: %v", message, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}
