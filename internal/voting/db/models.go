package db

import "time"

// Voter はvotersテーブルの1行。
type Voter struct {
	VoterID   string
	Password  string
	Role      string
	CreatedAt time.Time
}

// Candidate はcandidatesテーブルの1行。
type Candidate struct {
	ID        string
	Name      string
	Party     string
	AddedBy   string
	CreatedAt time.Time
}

// VotingPeriod はvoting_periodsテーブルの1行。
type VotingPeriod struct {
	StartDate string
	EndDate   string
	UpdatedBy string
	UpdatedAt time.Time
}
