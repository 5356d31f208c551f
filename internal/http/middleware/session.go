package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-snitchon-backend/internal/domain"
)

// SessionCookie is the cookie holding the signed session token.
const SessionCookie = "snitchon_session"

const (
	ctxKeyUserID  = "userID"
	ctxKeySession = "session"
	ctxKeyToken   = "session.token"
)

// SessionResolver maps a session token to a live session, or nil.
type SessionResolver interface {
	Current(ctx context.Context, token string) *domain.Session
}

// LoadSession resolves the session token from the session cookie or an
// "Authorization: Bearer" header. When it resolves, the user id and the
// session are stored on the Gin context; otherwise the request continues
// anonymously.
func LoadSession(r SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := SessionToken(c)
		if tok != "" {
			if s := r.Current(c.Request.Context(), tok); s != nil {
				c.Set(ctxKeyUserID, s.UserID)
				c.Set(ctxKeySession, s)
				c.Set(ctxKeyToken, tok)
			}
		}
		c.Next()
	}
}

// RequireSession aborts with 401 unless LoadSession found a live session.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserID(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"request_id": c.Writer.Header().Get(requestIDHeader),
				"code":       "unauthorized",
				"message":    "sign in required",
			})
			return
		}
		c.Next()
	}
}

// SessionToken returns the raw token presented by the client, if any.
func SessionToken(c *gin.Context) string {
	if v, err := c.Cookie(SessionCookie); err == nil && v != "" {
		return v
	}
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// UserID returns the signed-in user's id, or "" for anonymous requests.
func UserID(c *gin.Context) string {
	return c.GetString(ctxKeyUserID)
}

// CurrentSession returns the resolved session, or nil.
func CurrentSession(c *gin.Context) *domain.Session {
	v, ok := c.Get(ctxKeySession)
	if !ok {
		return nil
	}
	s, _ := v.(*domain.Session)
	return s
}
