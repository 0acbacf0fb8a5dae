// Package event は選挙設定の変更を表すドメインイベントを提供する。
//
// 候補者の登録や投票期間の設定といった管理操作を、外部のイベントストア
// （将来的には台帳やブロックチェーン）へ通知するための共通形式を定める。
package event
