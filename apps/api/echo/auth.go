package echoapi

import (
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/studenthub/core"
	"github.com/trezcool/studenthub/core/session"
)

const (
	contextTokenKey    = "sessionToken"
	contextIdentityKey = "identity"
)

var (
	errUnauthorized = echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	errStaleSession = echo.NewHTTPError(http.StatusUnauthorized, "session is no longer valid")
	errForbidden    = echo.NewHTTPError(http.StatusForbidden, "permission denied")
)

// Claims represents the authorization claims transmitted via a JWT.
// The session record rides along so the identity survives without server state.
type Claims struct {
	jwt.StandardClaims
	session.Record
}

func jwtConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    contextTokenKey,
		Claims:        new(Claims),
	}
}

func NewClaims(conf *core.Config, id session.Identity) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.New().String(),
			Issuer:    conf.AppName,
			Subject:   session.Subject(id),
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Record: session.NewRecord(id),
	}
}

// GenerateToken generates a signed JWT token string representing the identity.
func GenerateToken(conf *core.Config, id session.Identity) (string, error) {
	token := jwt.NewWithClaims(jwt.GetSigningMethod(middleware.AlgorithmHS256), NewClaims(conf, id))
	ss, err := token.SignedString([]byte(conf.SecretKey))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (*Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return claims, nil
		}
	}
	return nil, errUnauthorized
}

func getContextIdentity(ctx echo.Context) (session.Identity, error) {
	if id, ok := ctx.Get(contextIdentityKey).(session.Identity); ok {
		return id, nil
	}
	return nil, errUnauthorized
}

// identityMiddleware checks the JWT then turns its claims back into a verified identity.
func identityMiddleware(conf *core.Config, auth *session.Authenticator) echo.MiddlewareFunc {
	jwtMw := middleware.JWTWithConfig(jwtConfig(conf))
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return jwtMw(func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}
			id, err := claims.Record.Identity()
			if err != nil || session.Subject(id) != claims.Subject {
				return errStaleSession
			}
			if err = auth.Verify(id); err != nil {
				if errors.Is(err, session.ErrStaleIdentity) {
					return errStaleSession
				}
				return errors.Wrap(err, "verifying identity")
			}
			ctx.Set(contextIdentityKey, id)
			return next(ctx)
		})
	}
}
