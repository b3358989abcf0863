package router

import (
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"libraryhub/internal/auth"
	apperrors "libraryhub/internal/errors"
	"libraryhub/internal/handler"
	"libraryhub/internal/model"
)

const (
	bearerPrefix = "Bearer "
	authErrorKey = "auth_error"
	unknown      = "unknown"
)

// Authenticate verifies the bearer token on every route except login and
// signup, rejects revoked tokens and attaches the principal to the request
// context.
func Authenticate(jwtService *auth.JWTService, tokens auth.TokenStoreInterface) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		Skipper:     isPublic,
		ContextKey:  handler.ClaimsContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":" + bearerPrefix,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				c.Set(authErrorKey, err)
				return nil, err
			}
			revoked, err := tokens.IsRevoked(c.Request().Context(), claims.ID)
			if err != nil || revoked {
				c.Set(authErrorKey, apperrors.ErrTokenInvalid)
				return nil, apperrors.ErrTokenInvalid
			}
			return claims, nil
		},
		SuccessHandler: func(c echo.Context) {
			claims, ok := c.Get(handler.ClaimsContextKey).(*auth.Claims)
			if !ok {
				return
			}
			ctx := auth.WithPrincipal(c.Request().Context(), auth.Principal{UserID: claims.UserID, Role: claims.Role})
			c.SetRequest(c.Request().WithContext(ctx))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
				return apperrors.ErrTokenMissing
			}
			if authErr, ok := c.Get(authErrorKey).(error); ok {
				return authErr
			}
			return apperrors.ErrTokenInvalid
		},
	})
}

// RequireRole lets only principals with role through and fails with denied otherwise.
func RequireRole(role string, denied error) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := auth.PrincipalFromContext(c.Request().Context())
			if !ok {
				return apperrors.ErrTokenMissing
			}
			if p.Role != role {
				return denied
			}
			return next(c)
		}
	}
}

// AdminOnly restricts a route to administrators.
func AdminOnly() echo.MiddlewareFunc {
	return RequireRole(model.RoleAdmin, apperrors.ErrAdminRequired)
}

// UserOnly restricts a route to library members.
func UserOnly() echo.MiddlewareFunc {
	return RequireRole(model.RoleUser, apperrors.ErrUserRequired)
}

// RequestLogger logs one line per request with the caller's identity.
func RequestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			userID, role := unknown, unknown
			if p, ok := auth.PrincipalFromContext(c.Request().Context()); ok {
				userID, role = p.UserID, p.Role
			}

			event := log.Info()
			if v.Status >= 500 {
				event = log.Error().Err(v.Error)
			}
			event.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("user_id", userID).
				Str("role", role).
				Msg("request")
			return nil
		},
	})
}
