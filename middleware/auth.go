package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/motoshop/motoshop-api/config"
)

const (
	// SessionCookieName is the cookie carrying the signed admin session
	SessionCookieName = "motoshop_session"
	// sessionTTL bounds how long a login survives
	sessionTTL = 14 * 24 * time.Hour

	sessionContextKey = "admin_session"
)

// AdminSession is the principal attached to authenticated requests. It is
// passed explicitly through the request context rather than kept as ambient
// global state.
type AdminSession struct {
	Username      string
	Authenticated bool
}

// AuthError represents an authentication/authorization failure
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

func sign(value, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// CreateSession sets a signed session cookie for the given admin username
func CreateSession(c *gin.Context, username string) {
	secret := config.GetConfig().GetSessionSecret()
	encoded := base64.RawURLEncoding.EncodeToString([]byte(username))
	value := encoded + "." + sign(encoded, secret)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, value, int(sessionTTL.Seconds()), "/", "", false, true)
}

// ClearSession removes the session cookie
func ClearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}

// ParseSession validates the session cookie and returns the admin username
func ParseSession(c *gin.Context) (string, bool) {
	value, err := c.Cookie(SessionCookieName)
	if err != nil || value == "" {
		return "", false
	}
	parts := strings.Split(value, ".")
	if len(parts) != 2 {
		return "", false
	}
	encoded, sig := parts[0], parts[1]
	secret := config.GetConfig().GetSessionSecret()
	expected := sign(encoded, secret)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", false
	}
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil || len(raw) == 0 {
		return "", false
	}
	return string(raw), true
}

// RequireAdmin is a middleware that rejects requests without a valid admin
// session. On success it stores the AdminSession principal in the context.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := ParseSession(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Please log in to access this resource",
				},
			})
			return
		}
		c.Set(sessionContextKey, &AdminSession{Username: username, Authenticated: true})
		c.Next()
	}
}

// GetSession extracts the AdminSession principal from the Gin context
func GetSession(c *gin.Context) (*AdminSession, error) {
	v, exists := c.Get(sessionContextKey)
	if !exists {
		return nil, &AuthError{Code: "MISSING_SESSION", Message: "Session not found in context"}
	}
	session, ok := v.(*AdminSession)
	if !ok || !session.Authenticated {
		return nil, &AuthError{Code: "INVALID_SESSION", Message: "Session is not authenticated"}
	}
	return session, nil
}
