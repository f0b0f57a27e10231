package security

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/akhi1986akhi/webChat/global/config"
	"github.com/akhi1986akhi/webChat/tools/errs"
	jwts "github.com/akhi1986akhi/webChat/tools/security"
)

// Context keys the downstream handlers read.
const (
	CtxUserIDKey = "authUserId"
	CtxClaimsKey = "authClaims"
)

type Options struct {
	// HeaderToken is the request header carrying the raw token, default
	// "authorization". "Authorization: Bearer xxx" is always accepted.
	HeaderToken string
}

func DefaultOptions() *Options {
	return &Options{HeaderToken: "authorization"}
}

// Middleware verifies the bearer token and puts subject and claims on the
// request context. Verification failures answer with the token error body.
func Middleware(opts *Options) gin.HandlerFunc {
	if opts == nil {
		opts = DefaultOptions()
	}
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader(opts.HeaderToken))
		if token == "" {
			if authz := strings.TrimSpace(c.GetHeader("Authorization")); authz != "" {
				if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
					token = strings.TrimSpace(authz[len("bearer "):])
				}
			}
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errs.ErrTokenExpired)
			return
		}

		claims, err := jwts.Verify(jwts.DefaultOptions(config.GetJwtSecret()), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errs.ErrTokenExpired.WithDetail(err.Error()))
			return
		}
		if sub, ok := claims.MapClaims["sub"].(string); ok {
			c.Set(CtxUserIDKey, sub)
		}
		c.Set(CtxClaimsKey, claims)
		c.Next()
	}
}
