package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/vineetk-singh/auctionapi/pkg/utils"
)

// Cookie names used by the auth flow.
const (
	AccessTokenCookie  = "token"
	RefreshTokenCookie = "refreshToken"
)

type Claims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// ParseClaims validates a token string against the secret and returns its
// claims.
func ParseClaims(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// AuthRequired authenticates the request from the access-token cookie.
// A missing cookie is unauthorized; a present but invalid or expired token
// is forbidden.
func AuthRequired(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(AccessTokenCookie)
		if err != nil || tokenString == "" {
			utils.SendUnauthorized(c, "No token provided")
			c.Abort()
			return
		}

		claims, err := ParseClaims(tokenString, jwtSecret)
		if err != nil {
			utils.SendForbidden(c, "Invalid token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// RequireRoles gates a route behind an allow-list of roles. It must run
// after AuthRequired.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if !roleAllowed(role, allowedRoles) {
			utils.SendForbidden(c, "Access denied")
			c.Abort()
			return
		}
		c.Next()
	}
}

func roleAllowed(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// SetAuthCookies attaches the access and refresh tokens as HTTP-only secure
// cross-site cookies.
func SetAuthCookies(c *gin.Context, accessToken, refreshToken string, accessMaxAge int) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(AccessTokenCookie, accessToken, accessMaxAge, "/", "", true, true)
	if refreshToken != "" {
		c.SetCookie(RefreshTokenCookie, refreshToken, 7*24*60*60, "/", "", true, true)
	}
}
