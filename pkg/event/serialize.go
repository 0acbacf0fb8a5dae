package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ElectionAggregateID は選挙設定のAggregateID。選挙は1つのみ存在する。
const ElectionAggregateID = "election"

// ErrMissingActor はイベントを発生させた投票者が指定されていないことを表す。
var ErrMissingActor = errors.New("event actor is required")

// New は新しいイベントを生成する。
// dataはJSON形式にシリアライズされる。actorが空の場合はErrMissingActorを返す。
func New(aggregateID string, aggregateType AggregateType, eventType Type, actor string, data any) (*Event, error) {
	if actor == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingActor, eventType)
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("イベントデータのシリアライズに失敗: %w", err)
	}

	return &Event{
		ID:            uuid.New().String(),
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Data:          jsonData,
		Actor:         actor,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// CandidateAdded は候補者登録のイベントを生成する。AggregateIDは候補者IDになる。
func CandidateAdded(actor string, data CandidateAddedData) (*Event, error) {
	return New(data.CandidateID, AggregateTypeCandidate, TypeCandidateAdded, actor, data)
}

// VotingDatesSet は投票期間設定のイベントを生成する。
func VotingDatesSet(actor string, data VotingDatesSetData) (*Event, error) {
	return New(ElectionAggregateID, AggregateTypeElection, TypeVotingDatesSet, actor, data)
}

// DecodeData はイベントのDataフィールドを指定された型にデシリアライズする。
func DecodeData[T any](e *Event) (*T, error) {
	var data T
	if err := json.Unmarshal(e.Data, &data); err != nil {
		return nil, fmt.Errorf("%s のイベントデータのデシリアライズに失敗: %w", e.EventType, err)
	}
	return &data, nil
}
