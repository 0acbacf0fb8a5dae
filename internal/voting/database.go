package voting

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/nao1215/voting/pkg/migration"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.up.sql
var migrationsFS embed.FS

// OpenDatabase はSQLiteデータベースを開き、接続を確認してマイグレーションを適用する。
// いずれかに失敗した場合は接続を閉じてエラーを返す。
func OpenDatabase(ctx context.Context, path string) (*sql.DB, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("データベースへの疎通確認に失敗: %w", err)
	}

	if err := Migrate(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}

// Migrate は投票サービスのテーブルを作成・更新する。
func Migrate(ctx context.Context, sqlDB *sql.DB) error {
	if _, err := migration.Run(ctx, sqlDB, migrationsFS, "migrations"); err != nil {
		return fmt.Errorf("スキーマ初期化に失敗: %w", err)
	}
	return nil
}
