// Package routesはroutingを行います。
package routes

import (
	"database/sql"
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"todo-api/internal/handlers"
	"todo-api/internal/repositories"
	"todo-api/internal/services"
)

// SetupRouter はGinルーターをセットアップし、すべてのエンドポイントを登録します。
// allowOrigins が空なら CORS ミドルウェアは付けません。"*" はすべてのオリジンを許可します。
func SetupRouter(db *sql.DB, allowOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Logger(), gin.Recovery())

	// CORS対策
	if len(allowOrigins) > 0 {
		config := cors.DefaultConfig()
		if slices.Contains(allowOrigins, "*") {
			config.AllowAllOrigins = true
		} else {
			config.AllowOrigins = allowOrigins
		}
		config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
		config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", RequestIDHeader}
		config.ExposeHeaders = []string{RequestIDHeader}
		r.Use(cors.New(config))
	}

	// リポジトリ
	todoRepo := repositories.NewTodoRepository(db)

	// サービス
	todoService := services.NewTodoService(todoRepo)

	// ハンドラー
	todoHandler := handlers.NewTodoHandler(todoService)

	// ルーティング
	r.GET("/health", HealthHandler)
	r.GET("/dbcheck", todoHandler.DBCheckHandler)

	r.GET("/todos", todoHandler.GetTodosHandler)
	r.POST("/todos", todoHandler.CreateTodoHandler)
	r.GET("/todos/:id", todoHandler.GetTodoByIDHandler)
	r.PUT("/todos/:id", todoHandler.UpdateTodoHandler)
	r.DELETE("/todos/:id", todoHandler.DeleteTodoHandler)

	return r
}

func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
