// Package db は投票サービスのSQLiteテーブルに対するクエリを提供する。
//
// クエリはsqlcの生成コードと同じ形（Queries構造体とParams構造体）で記述する。
// テーブル定義は internal/voting/migrations と同期すること。
package db

import (
	"context"
	"database/sql"
)

// DBTX は*sql.DBと*sql.Txの共通インターフェース。
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// New は新しいクエリ実行オブジェクトを生成する。
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Queries はSQLクエリを実行するオブジェクト。
type Queries struct {
	db DBTX
}
