package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Ginコンテキストに認証情報を格納するキー。
const (
	contextKeyVoterID = "voter_id"
	contextKeyRole    = "role"
)

// Identity はトークンから復元された認証済み投票者を表す。
type Identity struct {
	// VoterID は投票者の識別子。
	VoterID string
	// Role は投票者のロール。
	Role string
}

// GetVoterID はGinコンテキストから投票者IDを取得する。
// JWTAuthミドルウェアが事前に適用されている必要がある。
func GetVoterID(c *gin.Context) string {
	return c.GetString(contextKeyVoterID)
}

// GetRole はGinコンテキストから投票者のロールを取得する。
func GetRole(c *gin.Context) string {
	return c.GetString(contextKeyRole)
}

// GetIdentity はGinコンテキストから認証済み投票者を取得する。
// 投票者IDが設定されていない場合はfalseを返す。
func GetIdentity(c *gin.Context) (Identity, bool) {
	voterID := GetVoterID(c)
	if voterID == "" {
		return Identity{}, false
	}
	return Identity{VoterID: voterID, Role: GetRole(c)}, true
}

// RequireRole は認証済み投票者が指定ロールを持つ場合のみ後続ハンドラを実行するミドルウェアを返す。
// ロールが一致しない場合は403とdetailを返す。JWTAuthの後に適用すること。
func RequireRole(role, detail string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": DetailMissingAuthorization})
			return
		}
		if identity.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": detail})
			return
		}
		c.Next()
	}
}
