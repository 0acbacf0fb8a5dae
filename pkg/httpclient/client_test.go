package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// testPayload はテスト用のリクエスト/レスポンスペイロード。
type testPayload struct {
	// Name はテスト用の名前フィールド。
	Name string `json:"name"`
	// Value はテスト用の値フィールド。
	Value int `json:"value"`
}

// TestNew はNew関数でクライアントが正しく生成されることを検証する。
func TestNew(t *testing.T) {
	t.Parallel()

	client := New("http://localhost:8084")
	if client.BaseURL() != "http://localhost:8084" {
		t.Errorf("BaseURL() = %q, want %q", client.BaseURL(), "http://localhost:8084")
	}
	if client.httpClient.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", client.httpClient.Timeout, DefaultTimeout)
	}
}

// TestPostJSON はPostJSON関数を検証する。
func TestPostJSON(t *testing.T) {
	t.Parallel()

	t.Run("JSONボディを送信してレスポンスを取得できること", func(t *testing.T) {
		t.Parallel()

		var (
			gotMethod, gotPath, gotContentType string
			gotBody                            testPayload
		)
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotPath = r.URL.Path
			gotContentType = r.Header.Get("Content-Type")
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &gotBody)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(testPayload{Name: "created", Value: 201})
		}))
		defer ts.Close()

		var result testPayload
		err := New(ts.URL).PostJSON(t.Context(), "/api/v1/events", testPayload{Name: "req", Value: 1}, &result)
		if err != nil {
			t.Fatalf("PostJSON()でエラーが発生: %v", err)
		}

		if gotMethod != http.MethodPost {
			t.Errorf("Method = %q, want %q", gotMethod, http.MethodPost)
		}
		if gotPath != "/api/v1/events" {
			t.Errorf("Path = %q, want %q", gotPath, "/api/v1/events")
		}
		if gotContentType != "application/json" {
			t.Errorf("Content-Type = %q, want %q", gotContentType, "application/json")
		}
		if gotBody != (testPayload{Name: "req", Value: 1}) {
			t.Errorf("受信ボディ = %+v", gotBody)
		}
		if result != (testPayload{Name: "created", Value: 201}) {
			t.Errorf("result = %+v", result)
		}
	})

	t.Run("resultがnilの場合でもエラーにならないこと", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusAccepted)
		}))
		defer ts.Close()

		if err := New(ts.URL).PostJSON(t.Context(), "/", testPayload{}, nil); err != nil {
			t.Errorf("PostJSON()でエラーが発生: %v", err)
		}
	})

	for _, status := range []int{http.StatusBadRequest, http.StatusInternalServerError} {
		t.Run(http.StatusText(status)+"の場合にErrUnexpectedStatusが返ること", func(t *testing.T) {
			t.Parallel()

			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(status)
				_, _ = w.Write([]byte(`{"error":"failed"}`))
			}))
			defer ts.Close()

			err := New(ts.URL).PostJSON(t.Context(), "/", testPayload{}, nil)
			if !errors.Is(err, ErrUnexpectedStatus) {
				t.Errorf("err = %v, want ErrUnexpectedStatus", err)
			}
		})
	}

	t.Run("不正なJSONレスポンスでエラーが返ること", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{broken`))
		}))
		defer ts.Close()

		var result testPayload
		if err := New(ts.URL).PostJSON(t.Context(), "/", testPayload{}, &result); err == nil {
			t.Fatal("不正なJSONでエラーが返るべき")
		}
	})

	t.Run("シリアライズできないボディでエラーが返ること", func(t *testing.T) {
		t.Parallel()

		if err := New("http://localhost:0").PostJSON(t.Context(), "/", make(chan int), nil); err == nil {
			t.Fatal("チャネル型のボディでエラーが返るべき")
		}
	})

	t.Run("キャンセルされたコンテキストでエラーが返ること", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer ts.Close()

		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		if err := New(ts.URL).PostJSON(ctx, "/", testPayload{}, nil); err == nil {
			t.Fatal("キャンセル済みコンテキストでエラーが返るべき")
		}
	})
}

// TestWithVoterID はWithVoterIDによる投票者IDの伝播を検証する。
func TestWithVoterID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ctx     func(context.Context) context.Context
		wantHdr string
	}{
		{
			name:    "投票者IDがヘッダーに設定されること",
			ctx:     func(ctx context.Context) context.Context { return WithVoterID(ctx, "admin-1") },
			wantHdr: "admin-1",
		},
		{
			name:    "WithVoterIDが無い場合ヘッダーが空であること",
			ctx:     func(ctx context.Context) context.Context { return ctx },
			wantHdr: "",
		},
		{
			name:    "空文字列の場合ヘッダーが設定されないこと",
			ctx:     func(ctx context.Context) context.Context { return WithVoterID(ctx, "") },
			wantHdr: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got string
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Get(HeaderVoterID)
				w.WriteHeader(http.StatusOK)
			}))
			defer ts.Close()

			if err := New(ts.URL).PostJSON(tt.ctx(t.Context()), "/", testPayload{}, nil); err != nil {
				t.Fatalf("PostJSON()でエラーが発生: %v", err)
			}
			if got != tt.wantHdr {
				t.Errorf("%s = %q, want %q", HeaderVoterID, got, tt.wantHdr)
			}
		})
	}
}
