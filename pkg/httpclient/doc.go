// Package httpclient は外部サービスへJSONを送信するHTTPクライアントを提供する。
//
// 選挙設定の変更イベントを外部のイベントストアへ通知する際に使用する。
// 操作を行った投票者IDはコンテキスト経由でヘッダーに伝播する。
package httpclient
