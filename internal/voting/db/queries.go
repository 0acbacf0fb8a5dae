package db

import "context"

const getVoter = `SELECT voter_id, password, role, created_at FROM voters WHERE voter_id = ?`

// GetVoter は投票者IDで投票者を1件取得する。
// 該当が無い場合はsql.ErrNoRowsを返す。
func (q *Queries) GetVoter(ctx context.Context, voterID string) (Voter, error) {
	row := q.db.QueryRowContext(ctx, getVoter, voterID)
	var v Voter
	err := row.Scan(&v.VoterID, &v.Password, &v.Role, &v.CreatedAt)
	return v, err
}

const createVoter = `INSERT INTO voters (voter_id, password, role) VALUES (?, ?, ?)`

// CreateVoterParams はCreateVoterの引数。
type CreateVoterParams struct {
	VoterID  string
	Password string
	Role     string
}

// CreateVoter は投票者を登録する。
func (q *Queries) CreateVoter(ctx context.Context, arg CreateVoterParams) error {
	_, err := q.db.ExecContext(ctx, createVoter, arg.VoterID, arg.Password, arg.Role)
	return err
}

const createCandidate = `INSERT INTO candidates (id, name, party, added_by) VALUES (?, ?, ?, ?)`

// CreateCandidateParams はCreateCandidateの引数。
type CreateCandidateParams struct {
	ID      string
	Name    string
	Party   string
	AddedBy string
}

// CreateCandidate は候補者を登録する。
func (q *Queries) CreateCandidate(ctx context.Context, arg CreateCandidateParams) error {
	_, err := q.db.ExecContext(ctx, createCandidate, arg.ID, arg.Name, arg.Party, arg.AddedBy)
	return err
}

const getCandidate = `SELECT id, name, party, added_by, created_at FROM candidates WHERE id = ?`

// GetCandidate はIDで候補者を1件取得する。
func (q *Queries) GetCandidate(ctx context.Context, id string) (Candidate, error) {
	row := q.db.QueryRowContext(ctx, getCandidate, id)
	var c Candidate
	err := row.Scan(&c.ID, &c.Name, &c.Party, &c.AddedBy, &c.CreatedAt)
	return c, err
}

const upsertVotingPeriod = `
INSERT INTO voting_periods (id, start_date, end_date, updated_by, updated_at)
VALUES (1, ?, ?, ?, datetime('now'))
ON CONFLICT (id) DO UPDATE SET
    start_date = excluded.start_date,
    end_date = excluded.end_date,
    updated_by = excluded.updated_by,
    updated_at = excluded.updated_at`

// UpsertVotingPeriodParams はUpsertVotingPeriodの引数。
type UpsertVotingPeriodParams struct {
	StartDate string
	EndDate   string
	UpdatedBy string
}

// UpsertVotingPeriod は投票期間を設定する。既に設定済みの場合は上書きする。
func (q *Queries) UpsertVotingPeriod(ctx context.Context, arg UpsertVotingPeriodParams) error {
	_, err := q.db.ExecContext(ctx, upsertVotingPeriod, arg.StartDate, arg.EndDate, arg.UpdatedBy)
	return err
}

const getVotingPeriod = `SELECT start_date, end_date, updated_by, updated_at FROM voting_periods WHERE id = 1`

// GetVotingPeriod は現在の投票期間を取得する。
// 未設定の場合はsql.ErrNoRowsを返す。
func (q *Queries) GetVotingPeriod(ctx context.Context) (VotingPeriod, error) {
	row := q.db.QueryRowContext(ctx, getVotingPeriod)
	var p VotingPeriod
	err := row.Scan(&p.StartDate, &p.EndDate, &p.UpdatedBy, &p.UpdatedAt)
	return p, err
}
