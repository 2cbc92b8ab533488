package http

import (
	"errors"
	"net/http"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	actingUserKey    = "acting-user"
	authenticatedKey = "authenticated"
)

var errInvalidBearerToken = errors.New("invalid bearer token")

// accessClaims is what the identity provider puts in its access tokens.
type accessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator resolves HS256 bearer tokens into a kernel.ActingUser.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) Authenticator {
	return Authenticator{secret: []byte(secret)}
}

// Middleware stores the acting user on the echo context. Requests without a
// bearer token act as GUEST; a malformed or expired token is rejected.
func (a Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				c.Set(actingUserKey, kernel.Guest())
				return next(c)
			}

			user, err := a.resolve(header)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, envelope{Message: err.Error()})
			}
			c.Set(actingUserKey, user)
			c.Set(authenticatedKey, true)
			return next(c)
		}
	}
}

func (a Authenticator) resolve(header string) (kernel.ActingUser, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return kernel.ActingUser{}, errInvalidBearerToken
	}

	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(strings.TrimSpace(raw), claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return kernel.ActingUser{}, errInvalidBearerToken
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return kernel.ActingUser{}, errInvalidBearerToken
	}
	return kernel.NewActingUser(subject, kernel.ParseRole(claims.Role)), nil
}

// requireToken rejects requests that did not present a valid bearer token.
func requireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if ok, _ := c.Get(authenticatedKey).(bool); !ok {
			return c.JSON(http.StatusUnauthorized, envelope{Message: "authentication required"})
		}
		return next(c)
	}
}

func actingUser(c echo.Context) kernel.ActingUser {
	if user, ok := c.Get(actingUserKey).(kernel.ActingUser); ok {
		return user
	}
	return kernel.Guest()
}
