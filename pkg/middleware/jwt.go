package middleware

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL はセッショントークンの有効期間。発行時刻から60分で失効する。
const TokenTTL = 60 * time.Minute

// クライアントに返す401レスポンスの詳細メッセージ。
const (
	// DetailMissingAuthorization はBearerトークンが提示されなかった場合のメッセージ。
	DetailMissingAuthorization = "Authorization header missing"
	// DetailInvalidAuthorization はトークン検証に失敗した場合のメッセージ。
	DetailInvalidAuthorization = "Invalid authorization token"
)

var (
	// ErrInvalidToken はトークンの署名・有効期限・必須クレームのいずれかが不正であることを表す。
	// 失敗原因はラップされたエラーに含まれるが、クライアントには区別せずに返す。
	ErrInvalidToken = errors.New("invalid token")
	// ErrMissingAuthorization は "Bearer <token>" 形式のAuthorizationヘッダーが無いことを表す。
	ErrMissingAuthorization = errors.New("authorization header missing")
	// ErrInvalidAuthorization はAuthorizationヘッダーのトークンが検証に失敗したことを表す。
	ErrInvalidAuthorization = errors.New("invalid authorization token")
)

// VoterClaims はセッショントークンのクレーム（ペイロード）を表す。
type VoterClaims struct {
	jwt.RegisteredClaims
	// VoterID は認証済み投票者の識別子。
	VoterID string `json:"voter_id"`
	// Role は投票者のロール（voter / admin）。
	Role string `json:"role"`
}

// TokenCodec はHS256で署名されたセッショントークンの発行と検証を行う。
// サーバー側にセッションを持たないため、トークンの有効性は内容のみで決まる。
type TokenCodec struct {
	// secret はHMAC署名用の秘密鍵。起動後は読み取り専用。
	secret []byte
	// now は現在時刻を返す関数。テストで時計を差し替えるために使用する。
	now func() time.Time
}

// CodecOption はTokenCodecの設定を変更する関数。
type CodecOption func(*TokenCodec)

// WithClock はトークンの発行・検証に使う時計を差し替える。
func WithClock(now func() time.Time) CodecOption {
	return func(tc *TokenCodec) {
		tc.now = now
	}
}

// NewTokenCodec は指定した秘密鍵でトークンを署名・検証するTokenCodecを生成する。
func NewTokenCodec(secret string, opts ...CodecOption) *TokenCodec {
	tc := &TokenCodec{
		secret: []byte(secret),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(tc)
	}
	return tc
}

// Issue は投票者IDとロールを埋め込んだトークンを生成する。
// 有効期限は発行時刻（秒単位に切り捨て）からTokenTTL後となる。
func (tc *TokenCodec) Issue(voterID, role string) (string, error) {
	now := tc.now()
	claims := VoterClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		VoterID: voterID,
		Role:    role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tc.secret)
	if err != nil {
		return "", fmt.Errorf("トークンの署名に失敗: %w", err)
	}
	return signed, nil
}

// Validate はトークンの署名と有効期限を検証し、クレームを返す。
// 現在時刻が有効期限ちょうど以降であれば失効とみなす。
// 失敗時は常にErrInvalidTokenをラップしたエラーを返す。
func (tc *TokenCodec) Validate(tokenString string) (*VoterClaims, error) {
	claims := &VoterClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return tc.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tc.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.VoterID == "" || claims.Role == "" {
		return nil, fmt.Errorf("%w: voter_idまたはroleが含まれていません", ErrInvalidToken)
	}
	return claims, nil
}

// Authenticate はAuthorizationヘッダーの値から認証済みの投票者を取り出す。
// ヘッダーは "Bearer <token>" 形式でなければならない。
func Authenticate(codec *TokenCodec, header string) (Identity, error) {
	tokenString, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return Identity{}, ErrMissingAuthorization
	}

	claims, err := codec.Validate(tokenString)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidAuthorization, err)
	}
	return Identity{VoterID: claims.VoterID, Role: claims.Role}, nil
}

// JWTAuth はBearerトークンを検証するGinミドルウェアを返す。
// 検証に成功した場合、コンテキストに "voter_id" と "role" を設定する。
func JWTAuth(codec *TokenCodec) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := Authenticate(codec, c.GetHeader("Authorization"))
		if err != nil {
			detail := DetailInvalidAuthorization
			if errors.Is(err, ErrMissingAuthorization) {
				detail = DetailMissingAuthorization
			} else {
				log.Printf("[Auth] トークン検証に失敗: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": detail})
			return
		}

		c.Set(contextKeyVoterID, identity.VoterID)
		c.Set(contextKeyRole, identity.Role)
		c.Next()
	}
}
