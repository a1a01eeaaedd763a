package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// companyKey is the gin context key carrying the authenticated caller identity
const companyKey = "auth.company"

// Claims are the token claims issued by the external Authentication service.
// The portal trusts the token; it verifies the signature and expiry only and
// performs no credential checks of its own.
type Claims struct {
	Company string `json:"company"`
	jwt.RegisteredClaims
}

// Middleware verifies bearer tokens and places the caller's company identity
// into the request context
type Middleware struct {
	secret []byte
	logger *zap.Logger
}

// NewMiddleware creates an auth middleware verifying tokens with the shared
// HMAC secret
func NewMiddleware(secret string, logger *zap.Logger) *Middleware {
	return &Middleware{
		secret: []byte(secret),
		logger: logger,
	}
}

// RequireAuth aborts with 401 unless the request carries a valid bearer token
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return m.secret, nil
		})
		if err != nil || !token.Valid {
			m.logger.Warn("Rejected invalid token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		if claims.Company == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token missing company claim"})
			return
		}

		c.Set(companyKey, claims.Company)
		c.Next()
	}
}

// CompanyFromContext returns the authenticated company identity set by
// RequireAuth, or empty if the request was not authenticated
func CompanyFromContext(c *gin.Context) string {
	if v, ok := c.Get(companyKey); ok {
		if company, ok := v.(string); ok {
			return company
		}
	}
	return ""
}

// SetCompany places a caller identity into the context directly. Test helper.
func SetCompany(c *gin.Context, company string) {
	c.Set(companyKey, company)
}
