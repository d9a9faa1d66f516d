package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Decan209/easy-tick-bw/internal/shared/apperr"
)

// VerifyProxySignature authenticates storefront app-proxy requests. The
// platform signs the query string: every parameter except "signature" is
// rendered as key=value (multi-values joined by comma), sorted, and
// concatenated without separators before HMAC-SHA256 with the shared
// secret. Anything that does not verify gets a 401 and never reaches the
// resolver.
func VerifyProxySignature(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Request.URL.Query()
		sig := query.Get("signature")
		if sig == "" {
			Fail(c, apperr.UnauthorizedErr("Unauthorized"))
			return
		}
		query.Del("signature")

		parts := make([]string, 0, len(query))
		for k, vs := range query {
			parts = append(parts, k+"="+strings.Join(vs, ","))
		}
		sort.Strings(parts)

		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write([]byte(strings.Join(parts, "")))
		expected := hex.EncodeToString(mac.Sum(nil))

		if !hmac.Equal([]byte(expected), []byte(sig)) {
			Fail(c, apperr.UnauthorizedErr("Unauthorized"))
			return
		}

		c.Next()
	}
}
