package echoapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ardiann-eng/CryptgenFix122/core"
	"github.com/ardiann-eng/CryptgenFix122/core/user"
)

var (
	contextClaimsKey = "claims"
	contextUserKey   = "user"

	errInvalidToken = errors.New("invalid session token")
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.RegisteredClaims
	Username string    `json:"username,omitempty"`
	Role     user.Role `json:"role,omitempty"`
}

// UserID returns the id of the user the token was issued to, or 0.
func (c Claims) UserID() int {
	id, _ := strconv.Atoi(c.Subject)
	return id
}

func (c Claims) IsAdmin() bool {
	return c.Role == user.RoleAdmin
}

// authenticator issues and checks session tokens. The token travels in an HttpOnly cookie,
// or in an `Authorization: Bearer` header for non-browser clients.
type authenticator struct {
	secret     []byte
	issuer     string
	expiration time.Duration
	cookieName string
	secure     bool
	nowFunc    func() time.Time
	usrSvc     *user.Service
}

func newAuthenticator(conf *core.Config, usrSvc *user.Service) *authenticator {
	return &authenticator{
		secret:     []byte(conf.SecretKey),
		issuer:     conf.AppName,
		expiration: conf.Server.SessionExpirationDelta,
		cookieName: conf.Server.SessionCookieName,
		secure:     conf.Server.SecureCookies,
		nowFunc:    time.Now,
		usrSvc:     usrSvc,
	}
}

func (a *authenticator) newClaims(usr user.User) *Claims {
	now := a.nowFunc()
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    a.issuer,
			Subject:   strconv.Itoa(usr.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.expiration)),
		},
		Username: usr.Username,
		Role:     usr.Role,
	}
}

// generateToken generates a signed JWT token string representing the user Claims.
func (a *authenticator) generateToken(usr user.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, a.newClaims(usr))
	ss, err := token.SignedString(a.secret)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func (a *authenticator) parseToken(tokenStr string) (*Claims, error) {
	claims := new(Claims)
	_, err := jwt.ParseWithClaims(
		tokenStr,
		claims,
		func(*jwt.Token) (interface{}, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(a.issuer),
		jwt.WithTimeFunc(a.nowFunc),
	)
	if err != nil {
		return nil, errors.Wrap(errInvalidToken, err.Error())
	}
	return claims, nil
}

func (a *authenticator) tokenFromRequest(ctx echo.Context) string {
	if auth := ctx.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	if cookie, err := ctx.Cookie(a.cookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// middleware rejects requests without a valid session with a 401.
func (a *authenticator) middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			tokenStr := a.tokenFromRequest(ctx)
			if tokenStr == "" {
				return errUnauthorized
			}
			claims, err := a.parseToken(tokenStr)
			if err != nil {
				return errUnauthorized
			}
			ctx.Set(contextClaimsKey, *claims)
			return next(ctx)
		}
	}
}

func (a *authenticator) setSessionCookie(ctx echo.Context, token string) {
	ctx.SetCookie(&http.Cookie{
		Name:     a.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  a.nowFunc().Add(a.expiration),
		MaxAge:   int(a.expiration.Seconds()),
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *authenticator) clearSessionCookie(ctx echo.Context) {
	ctx.SetCookie(&http.Cookie{
		Name:     a.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if claims, ok := ctx.Get(contextClaimsKey).(Claims); ok {
		return claims, nil
	}
	return Claims{}, errUnauthorized
}

func getContextUser(ctx echo.Context, svc *user.Service) (user.User, error) {
	if usr, ok := ctx.Get(contextUserKey).(user.User); ok {
		return usr, nil
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return user.User{}, errors.Wrap(err, "getting context claims")
	}

	usr, err := svc.GetByID(claims.UserID())
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return user.User{}, errUnauthorized
		}
		return user.User{}, errors.Wrap(err, "finding user by ID")
	}
	ctx.Set(contextUserKey, usr)
	return usr, nil
}
