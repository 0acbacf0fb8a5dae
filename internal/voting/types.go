package voting

import "context"

// Role は投票者のロールを表す。
type Role string

const (
	// RoleVoter は一般の投票者。
	RoleVoter Role = "voter"
	// RoleAdmin は選挙を管理する管理者。
	RoleAdmin Role = "admin"
)

// Candidate は管理者が登録する候補者。
type Candidate struct {
	// ID は候補者の一意識別子（UUID）。
	ID string
	// Name は候補者名。
	Name string
	// Party は所属政党。
	Party string
	// AddedBy は登録した管理者の投票者ID。
	AddedBy string
}

// VotingPeriod は投票期間。日付はクライアントが送信した文字列をそのまま保持する。
type VotingPeriod struct {
	// StartDate は投票開始日。
	StartDate string
	// EndDate は投票終了日。
	EndDate string
	// SetBy は設定した管理者の投票者ID。
	SetBy string
}

// CandidateStore は候補者の永続化を担う外部協調者。
type CandidateStore interface {
	// Add は候補者を保存する。
	Add(ctx context.Context, candidate Candidate) error
}

// ElectionConfig は選挙設定の永続化を担う外部協調者。
type ElectionConfig interface {
	// SetDates は投票期間を保存する。既存の設定は上書きされる。
	SetDates(ctx context.Context, period VotingPeriod) error
}
