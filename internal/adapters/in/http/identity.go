package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"foodtruck/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var ErrJWTSecretIsEmpty = errors.New("jwt secret is empty")

type roleContextKey struct{}

// WithRole returns a copy of ctx carrying the caller's role.
func WithRole(ctx context.Context, role kernel.Role) context.Context {
	return context.WithValue(ctx, roleContextKey{}, role)
}

// ContextIdentity resolves the role stored in the request context by the
// authentication middleware.
type ContextIdentity struct{}

func NewContextIdentity() ContextIdentity {
	return ContextIdentity{}
}

func (ContextIdentity) CurrentRole(ctx context.Context) kernel.Role {
	if role, ok := ctx.Value(roleContextKey{}).(kernel.Role); ok {
		return role
	}
	return kernel.RoleNone
}

// Claims is the JWT payload issued to staff members.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenAuthenticator issues and verifies HS256 bearer tokens.
type TokenAuthenticator struct {
	secret []byte
	now    func() time.Time
}

func NewTokenAuthenticator(secret string) (TokenAuthenticator, error) {
	if secret == "" {
		return TokenAuthenticator{}, ErrJWTSecretIsEmpty
	}
	return TokenAuthenticator{secret: []byte(secret), now: time.Now}, nil
}

// Issue signs a token for role valid for ttl.
func (a TokenAuthenticator) Issue(subject string, role kernel.Role, ttl time.Duration) (string, error) {
	now := a.now()
	claims := Claims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Parse verifies tokenString and returns the role it grants.
func (a TokenAuthenticator) Parse(tokenString string) (kernel.Role, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))
	if err != nil {
		return kernel.RoleNone, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return kernel.RoleNone, jwt.ErrTokenInvalidClaims
	}
	return kernel.ParseRole(claims.Role)
}

// Middleware stores the role of a bearer token in the request context.
// Requests without a token proceed as kernel.RoleNone; a malformed or
// expired token is rejected.
func (a TokenAuthenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}

			tokenString, found := strings.CutPrefix(header, "Bearer ")
			if !found || tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authorization header must use the Bearer scheme")
			}

			role, err := a.Parse(tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.SetRequest(c.Request().WithContext(WithRole(c.Request().Context(), role)))
			return next(c)
		}
	}
}
