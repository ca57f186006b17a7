package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gistworks/skim/models"
)

// apiKeyContextKey is where the authenticated key is stashed so the rate
// limiter can use it as the caller identity.
const apiKeyContextKey = "api_key"

// Auth returns API-key middleware. Callers present a key either as an
// X-API-Key header or as an Authorization bearer token. With no keys
// configured the middleware admits everything.
func Auth(apiKeys []string) gin.HandlerFunc {
	keys := make([][]byte, 0, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			keys = append(keys, []byte(k))
		}
	}
	if len(keys) == 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		presented, ok := presentedKey(c.Request)
		if !ok {
			unauthorized(c, "missing API key: provide X-API-Key or an Authorization bearer token")
			return
		}
		if !keyAllowed(keys, presented) {
			unauthorized(c, "invalid API key")
			return
		}
		c.Set(apiKeyContextKey, presented)
		c.Next()
	}
}

// presentedKey pulls the caller's key from the request: X-API-Key first,
// then a bearer token.
func presentedKey(r *http.Request) (string, bool) {
	if key := r.Header.Get("X-API-Key"); key != "" {
		return key, true
	}
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if ok && strings.EqualFold(scheme, "Bearer") && token != "" {
		return token, true
	}
	return "", false
}

// keyAllowed compares in constant time so rejection timing leaks nothing
// about how close a guess came.
func keyAllowed(keys [][]byte, presented string) bool {
	p := []byte(presented)
	allowed := false
	for _, k := range keys {
		if subtle.ConstantTimeCompare(k, p) == 1 {
			allowed = true
		}
	}
	return allowed
}

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ScrapeResponse{
		Success: false,
		Error: &models.ErrorDetail{
			Code:    models.ErrCodeUnauthorized,
			Message: msg,
		},
	})
}
