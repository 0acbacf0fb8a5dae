package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout はリクエスト1回あたりの既定のタイムアウト。
const DefaultTimeout = 10 * time.Second

// ErrUnexpectedStatus は相手先が2xx以外のステータスを返したことを表す。
var ErrUnexpectedStatus = errors.New("unexpected status code")

// Client は外部サービスにJSONを送信するHTTPクライアント。
type Client struct {
	// httpClient は内部で使用するHTTPクライアント。
	httpClient *http.Client
	// baseURL は接続先サービスのベースURL。
	baseURL string
}

// New は新しいHTTPクライアントを生成する。
// baseURLには接続先サービスのベースURL（例: "http://eventstore:8084"）を指定する。
func New(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		baseURL: baseURL,
	}
}

// BaseURL は接続先のベースURLを返す。
func (c *Client) BaseURL() string {
	return c.baseURL
}

// PostJSON は指定パスにJSONボディでPOSTリクエストを送信する。
// resultがnilでなければレスポンスボディをデシリアライズする。
func (c *Client) PostJSON(ctx context.Context, path string, body, result any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("リクエストボディのシリアライズに失敗: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("HTTPリクエストの作成に失敗: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// 操作を行った投票者IDを伝播する
	if voterID, ok := ctx.Value(contextKeyVoterID).(string); ok && voterID != "" {
		req.Header.Set(HeaderVoterID, voterID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTPリクエストの送信に失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: status=%d, body=%s", ErrUnexpectedStatus, resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("レスポンスボディのデシリアライズに失敗: %w", err)
		}
	}
	return nil
}

// HeaderVoterID は操作を行った投票者IDを伝えるHTTPヘッダーキー。
const HeaderVoterID = "X-Voter-ID"

// contextKey はコンテキストキーの型。
type contextKey string

// contextKeyVoterID はコンテキストに投票者IDを格納するためのキー。
const contextKeyVoterID contextKey = "voter_id"

// WithVoterID はコンテキストに投票者IDを設定する。
func WithVoterID(ctx context.Context, voterID string) context.Context {
	return context.WithValue(ctx, contextKeyVoterID, voterID)
}
