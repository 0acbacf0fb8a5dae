package event

import (
	"encoding/json"
	"time"
)

// AggregateType はイベントの対象となるエンティティの種類を表す。
type AggregateType string

const (
	// AggregateTypeCandidate は候補者エンティティを表す。
	AggregateTypeCandidate AggregateType = "Candidate"
	// AggregateTypeElection は選挙設定（投票期間など）を表す。
	AggregateTypeElection AggregateType = "Election"
)

// Type はイベントの種類を表す。
type Type string

const (
	// TypeCandidateAdded は管理者が候補者を登録したことを表す。
	TypeCandidateAdded Type = "CandidateAdded"
	// TypeVotingDatesSet は管理者が投票期間を設定したことを表す。
	TypeVotingDatesSet Type = "VotingDatesSet"
)

// Event は外部のイベントストアに送信する不変のイベントレコードを表す。
type Event struct {
	// ID はイベントの一意識別子（UUID）。
	ID string `json:"id"`
	// AggregateID は対象エンティティの識別子。
	AggregateID string `json:"aggregate_id"`
	// AggregateType は対象エンティティの種類。
	AggregateType AggregateType `json:"aggregate_type"`
	// EventType はイベントの種類。
	EventType Type `json:"event_type"`
	// Data はイベント固有のデータ（JSON形式）。
	Data json.RawMessage `json:"data"`
	// Actor はイベントを発生させた投票者のID。
	Actor string `json:"actor"`
	// CreatedAt はイベントが作成された日時。
	CreatedAt time.Time `json:"created_at"`
}

// CandidateAddedData はCandidateAddedイベントのデータ。
type CandidateAddedData struct {
	// CandidateID は登録された候補者のID。
	CandidateID string `json:"candidate_id"`
	// Name は候補者名。
	Name string `json:"name"`
	// Party は候補者の所属政党。
	Party string `json:"party"`
}

// VotingDatesSetData はVotingDatesSetイベントのデータ。
type VotingDatesSetData struct {
	// StartDate は投票開始日。クライアントが送信した文字列をそのまま保持する。
	StartDate string `json:"start_date"`
	// EndDate は投票終了日。
	EndDate string `json:"end_date"`
}
