package voting

import (
	"context"
	"fmt"

	votingdb "github.com/nao1215/voting/internal/voting/db"
)

// sqlStore はSQLiteに候補者と投票期間を保存するCandidateStore兼ElectionConfig。
type sqlStore struct {
	queries *votingdb.Queries
}

// newSQLStore は新しいsqlStoreを生成する。
func newSQLStore(queries *votingdb.Queries) *sqlStore {
	return &sqlStore{queries: queries}
}

// Add は候補者をcandidatesテーブルに保存する。
func (s *sqlStore) Add(ctx context.Context, candidate Candidate) error {
	if err := s.queries.CreateCandidate(ctx, votingdb.CreateCandidateParams{
		ID:      candidate.ID,
		Name:    candidate.Name,
		Party:   candidate.Party,
		AddedBy: candidate.AddedBy,
	}); err != nil {
		return fmt.Errorf("候補者の保存に失敗: %w", err)
	}
	return nil
}

// SetDates は投票期間をvoting_periodsテーブルに保存する。
func (s *sqlStore) SetDates(ctx context.Context, period VotingPeriod) error {
	if err := s.queries.UpsertVotingPeriod(ctx, votingdb.UpsertVotingPeriodParams{
		StartDate: period.StartDate,
		EndDate:   period.EndDate,
		UpdatedBy: period.SetBy,
	}); err != nil {
		return fmt.Errorf("投票期間の保存に失敗: %w", err)
	}
	return nil
}
