package middleware

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// UserKey is both the session key and the gin context key holding the
// authenticated user id.
const UserKey = "user_id"

var ErrInvalidToken = errors.New("invalid token")

// ParseToken verifies an HS256 token issued by the login service and returns
// its subject, the caller's Spotify user id.
func ParseToken(tokenString string, secret []byte) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return sub, nil
}

// UserResolver maps a Spotify id to the local user id.
type UserResolver func(spotifyID string) (int64, error)

// AuthRequired lets the request through when the cookie session holds a
// user id, or the Authorization header carries a valid Bearer token for a
// known user.
func AuthRequired(secret []byte, resolve UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if id, ok := session.Get(UserKey).(int64); ok && id > 0 {
			c.Set(UserKey, id)
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if tokenString, found := strings.CutPrefix(header, "Bearer "); found {
			spotifyID, err := ParseToken(tokenString, secret)
			if err == nil {
				id, err := resolve(spotifyID)
				if err == nil {
					c.Set(UserKey, id)
					c.Next()
					return
				}
				log.Printf("[AUTH-ERROR] Unknown user %s: %v", spotifyID, err)
			} else {
				log.Printf("[AUTH-ERROR] %v", err)
			}
		}

		// Abort the request with the appropriate error code
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
}

// CurrentUserID returns the id AuthRequired stored in the context.
func CurrentUserID(c *gin.Context) (int64, bool) {
	id, ok := c.Get(UserKey)
	if !ok {
		return 0, false
	}
	userID, ok := id.(int64)
	return userID, ok
}
