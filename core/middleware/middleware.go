package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/EngStrategy/arenahub-backend-sub000/core/constants"
	"github.com/EngStrategy/arenahub-backend-sub000/core/errors"
	"github.com/EngStrategy/arenahub-backend-sub000/core/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Claims is the JWT payload issued by the account service.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Middleware struct {
	jwtSecret []byte
}

func New(jwtSecret string) *Middleware {
	return &Middleware{jwtSecret: []byte(jwtSecret)}
}

// IssueToken signs an access token for the given actor.
func (m *Middleware) IssueToken(actorID uuid.UUID, role string) (string, error) {
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actorID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(constants.AccessTokenTTLHours * time.Hour)),
			Issuer:    constants.AppName,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.jwtSecret)
}

// AuthMiddleware validates the bearer token and stores the actor identity on
// the request context.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, string(errors.ErrMissingAuthorizationHeader))
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, string(errors.ErrInvalidTokenFormat))
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return m.jwtSecret, nil
			})
			if err != nil || !token.Valid {
				logger.Warn("Middleware:Auth:InvalidToken", "error", err)
				return echo.NewHTTPError(http.StatusUnauthorized, string(errors.ErrTokenExpired))
			}

			actorID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, string(errors.ErrInvalidTokenFormat))
			}

			c.Set(constants.ContextActor, actorID)
			c.Set(constants.ContextRole, claims.Role)
			return next(c)
		}
	}
}

// RequireRole rejects requests whose token carries a different role.
func (m *Middleware) RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if ActorRole(c) != role {
				return echo.NewHTTPError(http.StatusForbidden, string(errors.ErrAccessDenied))
			}
			return next(c)
		}
	}
}

// ActorID returns the authenticated actor id from the request context.
func ActorID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(constants.ContextActor).(uuid.UUID)
	return id, ok
}

// ActorRole returns the authenticated actor role, empty when anonymous.
func ActorRole(c echo.Context) string {
	role, _ := c.Get(constants.ContextRole).(string)
	return role
}
