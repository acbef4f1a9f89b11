package database

import (
	"context"
	"database/sql"
	"fmt"
)

// ToDoテーブルの作成 (AUTOINCREMENT で削除済みIDの再利用を防ぐ)
const createTodoTableSQLite = `
	CREATE TABLE IF NOT EXISTS todos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title VARCHAR(100) NOT NULL,
		description VARCHAR(200) NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`

const createTodoTableMySQL = `
	CREATE TABLE IF NOT EXISTS todos (
		id INT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(100) NOT NULL,
		description VARCHAR(200) NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME(6) NOT NULL,
		updated_at DATETIME(6) NOT NULL
	);`

// Migrate は todos テーブルがなければ作成します。何度呼んでも安全です。
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	var ddl string
	switch driver {
	case DriverSQLite:
		ddl = createTodoTableSQLite
	case DriverMySQL:
		ddl = createTodoTableMySQL
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}

	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create todos table: %w", err)
	}
	return nil
}
