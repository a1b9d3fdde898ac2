package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"docpod/internal/api/errors"
)

// Context keys set by Auth
const (
	UserIDKey = "user_id"
	TokenKey  = "session_token"
)

// Authenticator resolves a bearer token to its user id
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (int64, error)
}

// Auth rejects requests without a valid "Authorization: Bearer <token>" header
func Auth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			HandleError(c, errors.NewUnauthorizedError("missing bearer token"))
			return
		}

		userID, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			HandleError(c, errors.FromDomain(err, "session"))
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(TokenKey, token)
		c.Next()
	}
}

// CurrentUserID returns the id stored by Auth
func CurrentUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
