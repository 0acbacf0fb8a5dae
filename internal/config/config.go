// Package config は投票APIサーバーの設定を環境変数と.envファイルから読み込む。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// 環境変数が未設定の場合に使う既定値。
const (
	// DefaultPort はサーバーの既定のリッスンポート。
	DefaultPort = "8000"
	// DefaultDatabasePath はSQLiteデータベースファイルの既定のパス。
	DefaultDatabasePath = "voting.db"
	// DefaultSecretKey はSECRET_KEY未設定時に使う署名鍵。開発専用であり本番では必ず上書きすること。
	DefaultSecretKey = "dev-secret-change-me"
)

// DefaultAllowedOrigins はCORSで許可するフロントエンド開発サーバーのオリジン。
var DefaultAllowedOrigins = []string{"http://localhost:8080", "http://127.0.0.1:8080"}

// ErrInvalidPort はPORTが数値として解釈できないことを表す。
var ErrInvalidPort = errors.New("invalid PORT")

// Config は投票APIサーバーの設定。
type Config struct {
	// Port はサーバーのリッスンポート。
	Port string
	// DatabasePath はSQLiteデータベースファイルのパス。
	DatabasePath string
	// SecretKey はセッショントークンの署名鍵。
	SecretKey string
	// AllowedOrigins はCORSで許可するオリジン。
	AllowedOrigins []string
	// EventStoreURL はイベント通知先のベースURL。空の場合は通知しない。
	EventStoreURL string
}

// UsesDefaultSecret は開発用の既定の署名鍵が使われているかを返す。
func (c Config) UsesDefaultSecret() bool {
	return c.SecretKey == DefaultSecretKey
}

// Load は.envファイルを読み込んだ後、環境変数から設定を生成する。
// envFilesを省略した場合はカレントディレクトリの.envを読み、存在しなければ無視する。
// 既に設定されている環境変数は.envの値で上書きされない。
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf(".envファイルの読み込みに失敗: %w", err)
		}
	} else if err := godotenv.Load(envFiles...); err != nil {
		return Config{}, fmt.Errorf("環境ファイルの読み込みに失敗: %w", err)
	}
	return FromEnv()
}

// FromEnv は環境変数のみから設定を生成する。
func FromEnv() (Config, error) {
	cfg := Config{
		Port:           getEnvOr("PORT", DefaultPort),
		DatabasePath:   getEnvOr("DATABASE_PATH", DefaultDatabasePath),
		SecretKey:      getEnvOr("SECRET_KEY", DefaultSecretKey),
		AllowedOrigins: splitOrigins(os.Getenv("CORS_ORIGINS")),
		EventStoreURL:  strings.TrimRight(os.Getenv("EVENTSTORE_URL"), "/"),
	}

	if _, err := strconv.ParseUint(cfg.Port, 10, 16); err != nil {
		return Config{}, fmt.Errorf("%w: %q", ErrInvalidPort, cfg.Port)
	}
	if cfg.UsesDefaultSecret() {
		log.Printf("[Config] SECRET_KEYが未設定のため開発用の署名鍵を使用します。本番環境では必ず設定してください")
	}
	return cfg, nil
}

// splitOrigins はカンマ区切りのオリジン一覧を分割する。空の場合は既定値を返す。
func splitOrigins(raw string) []string {
	var origins []string
	for o := range strings.SplitSeq(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return append([]string(nil), DefaultAllowedOrigins...)
	}
	return origins
}

// getEnvOr は環境変数を取得し、設定されていない場合はデフォルト値を返す。
func getEnvOr(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
