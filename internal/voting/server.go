package voting

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/nao1215/voting/internal/config"
	votingdb "github.com/nao1215/voting/internal/voting/db"
	"github.com/nao1215/voting/pkg/event"
	"github.com/nao1215/voting/pkg/httpclient"
	"github.com/nao1215/voting/pkg/middleware"
)

// クライアントに返すエラーメッセージ。
const (
	detailInvalidCredentials = "Invalid voter ID or password"
	detailDatabaseError      = "Database error"
	detailTokenError         = "Token generation failed"
	detailAdminRequired      = "Admin privileges required"
)

// shutdownTimeout はシャットダウン時に処理中のリクエストを待つ時間。
const shutdownTimeout = 10 * time.Second

// Server は投票APIサービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// db はSQLiteデータベース接続。
	db *sql.DB
	// codec はセッショントークンの発行・検証を行う。
	codec *middleware.TokenCodec
	// verifier は投票者の認証情報を照合する。
	verifier *Verifier
	// candidates は候補者の保存先。
	candidates CandidateStore
	// election は投票期間の保存先。
	election ElectionConfig
	// eventClient はイベントストアへのHTTPクライアント。未設定の場合はnil。
	eventClient *httpclient.Client
}

// NewServer は新しい投票APIサーバーを生成する。
// データベースを開けない場合はエラーを返す。起動処理はこのエラーで中断すること。
func NewServer(ctx context.Context, cfg config.Config) (*Server, error) {
	sqlDB, err := OpenDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}
	return newServer(sqlDB, cfg), nil
}

// newServer は開いたデータベースと設定からサーバーを組み立てる。
func newServer(sqlDB *sql.DB, cfg config.Config) *Server {
	queries := votingdb.New(sqlDB)
	store := newSQLStore(queries)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	s := &Server{
		router:     router,
		port:       cfg.Port,
		db:         sqlDB,
		codec:      middleware.NewTokenCodec(cfg.SecretKey),
		verifier:   NewVerifier(queries),
		candidates: store,
		election:   store,
	}
	if cfg.EventStoreURL != "" {
		s.eventClient = httpclient.New(cfg.EventStoreURL)
	}
	s.setupRoutes()

	return s
}

// Run はHTTPサーバーを起動し、ctxがキャンセルされるまでリクエストを処理する。
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", s.port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.eventClient != nil {
		log.Printf("[Event] イベントを %s に送信します", s.eventClient.BaseURL())
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("サーバーの停止に失敗: %w", err)
		}
		return nil
	}
}

// Close はデータベース接続を閉じる。
func (s *Server) Close() error {
	return s.db.Close()
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	// ログイン（認証不要）
	s.router.POST("/login", s.handleLogin())

	// 認証必須のエンドポイント
	authed := s.router.Group("/", middleware.JWTAuth(s.codec))
	{
		authed.GET("/profile", s.handleProfile())

		// 管理者のみ。ボディの検証はロール確認より先に行う
		requireAdmin := middleware.RequireRole(string(RoleAdmin), detailAdminRequired)
		authed.POST("/add-candidate",
			bindJSON[addCandidateRequest]("name and party are required"), requireAdmin, s.handleAddCandidate())
		authed.POST("/set-dates",
			bindJSON[setDatesRequest]("startDate and endDate are required"), requireAdmin, s.handleSetDates())
	}

	// ヘルスチェック
	s.router.GET("/health", s.handleHealth())
}

// loginRequest はログインフォームの入力。
type loginRequest struct {
	// VoterID は投票者ID。
	VoterID string `form:"voter_id" binding:"required"`
	// Password はパスワード。
	Password string `form:"password" binding:"required"`
}

// loginResponse はログイン成功時のJSONレスポンス構造。
type loginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Role    Role   `json:"role"`
}

// contextKeyRequest はbindJSONが検証済みのリクエストボディを格納するキー。
const contextKeyRequest = "request_body"

// jsonRequest はキーの有無を検証できるリクエストボディ。
type jsonRequest interface {
	complete() bool
}

// addCandidateRequest は候補者登録リクエストのJSON構造。
// 空文字は有効な値として受け付け、キーが無い場合のみ不正とする。
// レスポンスのdataとしてそのまま返す。
type addCandidateRequest struct {
	// Name は候補者名。
	Name *string `json:"name"`
	// Party は所属政党。
	Party *string `json:"party"`
}

func (r *addCandidateRequest) complete() bool {
	return r.Name != nil && r.Party != nil
}

// setDatesRequest は投票期間設定リクエストのJSON構造。
// レスポンスのdataとしてそのまま返す。
type setDatesRequest struct {
	// StartDate は投票開始日。
	StartDate *string `json:"startDate"`
	// EndDate は投票終了日。
	EndDate *string `json:"endDate"`
}

func (r *setDatesRequest) complete() bool {
	return r.StartDate != nil && r.EndDate != nil
}

// bindJSON はJSONボディをTに変換してコンテキストに格納するミドルウェアを返す。
// 変換できない場合や必須キーが無い場合は422とdetailを返す。
func bindJSON[T any, PT interface {
	*T
	jsonRequest
}](detail string) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := PT(new(T))
		if err := c.ShouldBindJSON(req); err != nil || !req.complete() {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": detail})
			return
		}
		c.Set(contextKeyRequest, req)
		c.Next()
	}
}

// actionResponse は管理操作の成功時のJSONレスポンス構造。
type actionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// handleLogin は投票者IDとパスワードでログインし、セッショントークンを発行するハンドラを返す。
func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		// クエリ文字列は参照せず、ボディのフォームのみを受け付ける
		var b binding.Binding = binding.FormPost
		if c.ContentType() == binding.MIMEMultipartPOSTForm {
			b = binding.FormMultipart
		}

		var req loginRequest
		if err := c.ShouldBindWith(&req, b); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "voter_id and password are required"})
			return
		}

		role, err := s.verifier.Verify(c.Request.Context(), req.VoterID, req.Password)
		if errors.Is(err, ErrAuthenticationFailed) {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": detailInvalidCredentials})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": detailDatabaseError})
			log.Printf("ログイン時のDBエラー: %v", err)
			return
		}

		token, err := s.codec.Issue(req.VoterID, string(role))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": detailTokenError})
			log.Printf("トークン発行エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, loginResponse{Success: true, Token: token, Role: role})
	}
}

// handleProfile は認証済み投票者のIDとロールを返すハンドラを返す。
func (s *Server) handleProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, _ := middleware.GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Hello %s, your role is %s", identity.VoterID, identity.Role),
		})
	}
}

// handleAddCandidate は候補者を登録するハンドラを返す。管理者のみ実行できる。
func (s *Server) handleAddCandidate() gin.HandlerFunc {
	return func(c *gin.Context) {
		req := c.MustGet(contextKeyRequest).(*addCandidateRequest)

		voterID := middleware.GetVoterID(c)
		candidate := Candidate{
			ID:      uuid.New().String(),
			Name:    *req.Name,
			Party:   *req.Party,
			AddedBy: voterID,
		}
		if err := s.candidates.Add(c.Request.Context(), candidate); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": detailDatabaseError})
			log.Printf("候補者登録エラー: %v", err)
			return
		}

		s.emitEvent(c, func(actor string) (*event.Event, error) {
			return event.CandidateAdded(actor, event.CandidateAddedData{
				CandidateID: candidate.ID,
				Name:        candidate.Name,
				Party:       candidate.Party,
			})
		})

		c.JSON(http.StatusOK, actionResponse{Success: true, Message: "Candidate added", Data: req})
	}
}

// handleSetDates は投票期間を設定するハンドラを返す。管理者のみ実行できる。
func (s *Server) handleSetDates() gin.HandlerFunc {
	return func(c *gin.Context) {
		req := c.MustGet(contextKeyRequest).(*setDatesRequest)

		period := VotingPeriod{
			StartDate: *req.StartDate,
			EndDate:   *req.EndDate,
			SetBy:     middleware.GetVoterID(c),
		}
		if err := s.election.SetDates(c.Request.Context(), period); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": detailDatabaseError})
			log.Printf("投票期間設定エラー: %v", err)
			return
		}

		s.emitEvent(c, func(actor string) (*event.Event, error) {
			return event.VotingDatesSet(actor, event.VotingDatesSetData{
				StartDate: period.StartDate,
				EndDate:   period.EndDate,
			})
		})

		c.JSON(http.StatusOK, actionResponse{Success: true, Message: "Voting dates set", Data: req})
	}
}

// handleHealth はデータベースへの疎通を確認するハンドラを返す。
func (s *Server) handleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "service": "voting"})
			log.Printf("ヘルスチェック失敗: %v", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "voting"})
	}
}

// emitEvent はイベントストアにイベントを送信する。
// 送信に失敗した場合はログに記録するが、呼び出し元にはエラーを返さない。
func (s *Server) emitEvent(c *gin.Context, build func(actor string) (*event.Event, error)) {
	if s.eventClient == nil {
		return
	}

	voterID := middleware.GetVoterID(c)
	ev, err := build(voterID)
	if err != nil {
		log.Printf("[Event] イベントの生成に失敗: %v", err)
		return
	}

	ctx := httpclient.WithVoterID(c.Request.Context(), voterID)
	if err := s.eventClient.PostJSON(ctx, "/api/v1/events", ev, nil); err != nil {
		log.Printf("[Event] イベントストアへの送信に失敗: %v", err)
	}
}
