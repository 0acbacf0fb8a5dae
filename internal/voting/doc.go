// Package voting は投票APIサービスの内部実装を提供する。
//
// 投票者の認証情報を検証してセッショントークンを発行し、
// トークンのロールに応じて管理操作（候補者登録、投票期間の設定）を許可する。
// 投票の受付や集計はこのサービスの範囲外である。
//
// リクエストは次の順に処理される。
//
//	Bearerトークンの検証 → ロールの確認 → ハンドラの実行
//
// どの段階で拒否されても、そのリクエストだけが失敗しプロセスには影響しない。
package voting
