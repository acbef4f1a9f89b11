// Package config は .env、設定ファイル、環境変数からサーバー設定を読み込みます。
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"todo-api/internal/database"
)

// 設定キー
const (
	KeyServerAddr            = "server.addr"
	KeyServerMode            = "server.mode"
	KeyServerShutdownTimeout = "server.shutdown_timeout"
	KeyDBDriver              = "db.driver"
	KeyDBPath                = "db.path"
	KeyDBDSN                 = "db.dsn"
	KeyCORSAllowOrigins      = "cors.allow_origins"
)

// EnvPrefix は環境変数の接頭辞です (例: TODO_DB_PATH)。
const EnvPrefix = "TODO"

var (
	ErrEmptyAddr   = errors.New("server.addr must not be empty")
	ErrEmptyDBPath = errors.New("db.path must not be empty for sqlite")
)

// Config はサーバー全体の設定です。
type Config struct {
	Server ServerConfig `mapstructure:"server" yaml:"server"`
	DB     DBConfig     `mapstructure:"db" yaml:"db"`
	CORS   CORSConfig   `mapstructure:"cors" yaml:"cors"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr" yaml:"addr"`
	Mode            string        `mapstructure:"mode" yaml:"mode"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

type DBConfig struct {
	Driver string `mapstructure:"driver" yaml:"driver"`
	Path   string `mapstructure:"path" yaml:"path"`
	DSN    string `mapstructure:"dsn" yaml:"dsn,omitempty"`
}

type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins" yaml:"allow_origins"`
}

// Default はデフォルト値だけを持つ設定を返します。
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			Mode:            "release",
			ShutdownTimeout: 10 * time.Second,
		},
		DB: DBConfig{
			Driver: database.DriverSQLite,
			Path:   "todos.db",
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"*"},
		},
	}
}

// DatabaseOptions は database.Open に渡す値を返します。
func (c Config) DatabaseOptions() database.Options {
	return database.Options{Driver: c.DB.Driver, Path: c.DB.Path, DSN: c.DB.DSN}
}

// Validate は設定の整合性を確認します。
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return ErrEmptyAddr
	}
	switch c.DB.Driver {
	case database.DriverSQLite:
		if c.DB.Path == "" {
			return ErrEmptyDBPath
		}
	case database.DriverMySQL:
	default:
		return fmt.Errorf("%w: %q", database.ErrUnknownDriver, c.DB.Driver)
	}
	return nil
}

// Load は設定を読み込みます。優先順位は 環境変数 > 設定ファイル > デフォルト です。
// configFile が空の場合は カレントディレクトリ と ./config の config.yaml を探し、なくてもエラーにしません。
func Load(configFile string) (Config, error) {
	// .env はなくてもよい (main.go で godotenv.Load() を呼ぶ構成と同じ)
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// AutomaticEnv は SetDefault されたキーしか Unmarshal に反映しないため、すべてのキーを登録する
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault(KeyServerAddr, d.Server.Addr)
	v.SetDefault(KeyServerMode, d.Server.Mode)
	v.SetDefault(KeyServerShutdownTimeout, d.Server.ShutdownTimeout)
	v.SetDefault(KeyDBDriver, d.DB.Driver)
	v.SetDefault(KeyDBPath, d.DB.Path)
	v.SetDefault(KeyDBDSN, d.DB.DSN)
	v.SetDefault(KeyCORSAllowOrigins, d.CORS.AllowOrigins)
}
