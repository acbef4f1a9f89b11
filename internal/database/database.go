// Package database はストア (SQLite または MySQL) への接続とスキーマ作成を行います。
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// サポートするドライバー名
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

var ErrUnknownDriver = errors.New("unknown database driver")

// Options は接続に必要な設定です。
type Options struct {
	Driver string // "sqlite" または "mysql"
	Path   string // SQLite のファイルパス
	DSN    string // MySQL の DSN (空なら環境変数から組み立てる)
}

// GetDSN は環境変数からMySQL接続文字列 (DSN) を構築します。
func GetDSN() string {
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASS")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	name := os.Getenv("DB_NAME")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", user, pass, host, port, name)
}

// sqliteDSN はファイルパスに busy_timeout と WAL の設定を付けます。
func sqliteDSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
}

// Open はデータベース接続を開き、疎通を確認します。
// 呼び出し側が Close の責任を持ちます。
func Open(ctx context.Context, opts Options) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)

	switch opts.Driver {
	case DriverSQLite:
		if opts.Path == "" {
			return nil, errors.New("sqlite path must not be empty")
		}
		if dir := filepath.Dir(opts.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
		db, err = sql.Open("sqlite", sqliteDSN(opts.Path))
		if err != nil {
			return nil, fmt.Errorf("open sqlite database: %w", err)
		}
		// SQLite は書き込みが1本なので接続も1本にする
		db.SetMaxOpenConns(1)
	case DriverMySQL:
		dsn := opts.DSN
		if dsn == "" {
			dsn = GetDSN()
		}
		db, err = sql.Open("mysql", dsn)
		if err != nil {
			return nil, fmt.Errorf("open mysql database: %w", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Printf("Successfully connected to %s database!", opts.Driver)
	return db, nil
}
