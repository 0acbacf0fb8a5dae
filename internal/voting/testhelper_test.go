package voting

import (
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/voting/internal/config"
	votingdb "github.com/nao1215/voting/internal/voting/db"
	"github.com/nao1215/voting/pkg/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
	gin.DefaultWriter = io.Discard
}

// testSecretKey はテスト用のトークン署名鍵。
const testSecretKey = "test-secret-key"

// openTestDB はマイグレーション済みのインメモリSQLiteを開く。
// インメモリDBは接続ごとに別物になるため接続数を1に制限する。
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("インメモリDB接続に失敗: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := Migrate(t.Context(), sqlDB); err != nil {
		t.Fatalf("スキーマ初期化に失敗: %v", err)
	}
	return sqlDB
}

// testConfig はテスト用の設定を返す。
func testConfig() config.Config {
	return config.Config{
		Port:           "0",
		DatabasePath:   ":memory:",
		SecretKey:      testSecretKey,
		AllowedOrigins: config.DefaultAllowedOrigins,
	}
}

// newTestServer はインメモリSQLiteを使うテスト用サーバーを生成する。
func newTestServer(t *testing.T) *Server {
	t.Helper()
	return newServer(openTestDB(t), testConfig())
}

// seedVoter はテスト用の投票者レコードをDBに挿入する。
func seedVoter(t *testing.T, s *Server, voterID, password string, role Role) {
	t.Helper()

	if err := votingdb.New(s.db).CreateVoter(t.Context(), votingdb.CreateVoterParams{
		VoterID:  voterID,
		Password: password,
		Role:     string(role),
	}); err != nil {
		t.Fatalf("テスト用投票者の挿入に失敗: %v", err)
	}
}

// issueTestToken はテスト用のセッショントークンを発行する。
func issueTestToken(t *testing.T, voterID string, role Role) string {
	t.Helper()

	token, err := middleware.NewTokenCodec(testSecretKey).Issue(voterID, string(role))
	if err != nil {
		t.Fatalf("テスト用トークンの発行に失敗: %v", err)
	}
	return token
}

// doLogin はフォーム形式でログインリクエストを送信する。
func doLogin(s *Server, voterID, password string) *httptest.ResponseRecorder {
	form := url.Values{}
	form.Set("voter_id", voterID)
	form.Set("password", password)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// doRequest はBearerトークン付きのリクエストを送信する。tokenが空の場合はヘッダーを付けない。
func doRequest(s *Server, method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}
