package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/wso2/idea-management-api/internal/config"
	"github.com/wso2/idea-management-api/internal/models"
	"github.com/wso2/idea-management-api/internal/utils"
)

// Trusted gateway headers used when token verification is disabled
const (
	HeaderUserName = "X-User-Name"
	HeaderUserRole = "X-User-Role"
)

// identityClaims are the claims issued by the identity provider
type identityClaims struct {
	jwt.RegisteredClaims
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// TokenVerifier validates HS256 identity tokens
type TokenVerifier struct {
	secret []byte
	issuer string
}

// NewTokenVerifier creates a verifier for tokens signed with secret.
// An empty issuer accepts any issuer.
func NewTokenVerifier(secret, issuer string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret), issuer: issuer}
}

// IssueToken signs a token for the actor. Used by tooling and tests; the
// service itself never issues tokens.
func (v *TokenVerifier) IssueToken(actor models.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := identityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.Name,
			Issuer:    v.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Name: actor.Name,
		Role: string(actor.Role),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses a token and returns the actor it identifies
func (v *TokenVerifier) Verify(tokenString string) (models.Actor, error) {
	if tokenString == "" {
		return models.Actor{}, fmt.Errorf("token is empty")
	}

	token, err := jwt.ParseWithClaims(tokenString, &identityClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return models.Actor{}, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*identityClaims)
	if !ok || !token.Valid {
		return models.Actor{}, fmt.Errorf("invalid token claims")
	}
	if v.issuer != "" && claims.Issuer != v.issuer {
		return models.Actor{}, fmt.Errorf("invalid issuer: expected %s, got %s", v.issuer, claims.Issuer)
	}

	name := claims.Name
	if name == "" {
		name = claims.Subject
	}
	return models.Actor{Name: name, Role: parseRole(claims.Role)}, nil
}

// Identity resolves the request actor. With JWT enabled a valid bearer token
// is required; otherwise the trusted gateway headers are read and a request
// without them is treated as an anonymous submitter.
func Identity(cfg config.JWTConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			utils.SetContextValue(c, utils.ContextKeyActor, models.Actor{
				Name: strings.TrimSpace(c.GetHeader(HeaderUserName)),
				Role: parseRole(c.GetHeader(HeaderUserRole)),
			})
			c.Next()
		}
	}

	verifier := NewTokenVerifier(cfg.Secret, cfg.Issuer)
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			utils.SendUnauthorizedError(c, "Bearer token required")
			c.Abort()
			return
		}

		actor, err := verifier.Verify(strings.TrimSpace(token))
		if err != nil {
			utils.SendUnauthorizedError(c, "Invalid token")
			c.Abort()
			return
		}

		utils.SetContextValue(c, utils.ContextKeyActor, actor)
		c.Next()
	}
}

// RequireAdmin rejects requests from non-admin actors with 403
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !utils.GetActorFromContext(c).IsAdmin() {
			utils.SendForbiddenError(c, "Administrator role required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func parseRole(role string) models.Role {
	if strings.EqualFold(strings.TrimSpace(role), string(models.RoleAdmin)) {
		return models.RoleAdmin
	}
	return models.RoleSubmitter
}
