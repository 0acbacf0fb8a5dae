// Package middleware は投票APIで使用するGinミドルウェアと認証トークン処理を提供する。
//
// セッショントークン（HS256署名のJWT）の発行と検証、Bearerトークンによる
// 認証ゲート、ロールによるアクセス制御、CORS設定、パニックリカバリを含む。
// トークンはサーバー側に状態を持たず、署名と有効期限のみで有効性が決まる。
package middleware
