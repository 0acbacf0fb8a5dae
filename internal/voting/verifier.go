package voting

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	votingdb "github.com/nao1215/voting/internal/voting/db"
)

var (
	// ErrAuthenticationFailed は投票者IDまたはパスワードが一致しないことを表す。
	// 投票者が存在しない場合とパスワード違いを区別しない。
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrStorage は認証情報ストアの参照に失敗したことを表す。
	ErrStorage = errors.New("storage error")
)

// VoterReader は投票者レコードを参照するストア。
type VoterReader interface {
	// GetVoter は投票者IDで投票者を取得する。該当が無い場合はsql.ErrNoRowsを返す。
	GetVoter(ctx context.Context, voterID string) (votingdb.Voter, error)
}

// Verifier は投票者IDとパスワードの組を保存済みのレコードと照合する。
type Verifier struct {
	voters VoterReader
}

// NewVerifier は新しいVerifierを生成する。
func NewVerifier(voters VoterReader) *Verifier {
	return &Verifier{voters: voters}
}

// Verify は投票者IDとパスワードを照合し、一致すれば投票者のロールを返す。
// ストアへの問い合わせは1回のみ行う。
func (v *Verifier) Verify(ctx context.Context, voterID, password string) (Role, error) {
	voter, err := v.voters.GetVoter(ctx, voterID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrAuthenticationFailed
	}
	if err != nil {
		return "", fmt.Errorf("%w: 投票者の取得に失敗: %w", ErrStorage, err)
	}

	if !passwordMatches(voter.Password, password) {
		return "", ErrAuthenticationFailed
	}
	return Role(voter.Role), nil
}
