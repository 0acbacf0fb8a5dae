package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 許可オリジンに返す既定のメソッドとヘッダー。
// プリフライトで要求された値がある場合はそちらをそのまま許可する。
const (
	defaultAllowMethods = "GET, POST, PUT, DELETE, OPTIONS"
	defaultAllowHeaders = "Authorization, Content-Type"
)

// CORS は指定されたオリジンからのクロスオリジンリクエストを許可するGinミドルウェアを返す。
// 許可オリジンにはクレデンシャル付きリクエストを認め、メソッドとヘッダーは制限しない。
func CORS(allowedOrigins []string) gin.HandlerFunc {
	originsSet := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		originsSet[o] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		c.Writer.Header().Add("Vary", "Origin")
		if _, ok := originsSet[origin]; ok {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", requestedOr(c, "Access-Control-Request-Method", defaultAllowMethods))
			c.Header("Access-Control-Allow-Headers", requestedOr(c, "Access-Control-Request-Headers", defaultAllowHeaders))
			c.Header("Access-Control-Max-Age", "600")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// requestedOr はプリフライトのリクエストヘッダーの値を返す。未指定ならfallbackを返す。
func requestedOr(c *gin.Context, header, fallback string) string {
	if v := c.GetHeader(header); v != "" {
		return v
	}
	return fallback
}
