package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/zakatkuy/amil/internal/pkg/constants"
	"github.com/zakatkuy/amil/internal/pkg/logger"
	"github.com/zakatkuy/amil/internal/pkg/utils"
)

// SessionMiddleware resolves the chat session from the signed cookie, minting a new one
// when the cookie is absent or does not verify.
func (svc *APIService) SessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var sessionID string
		if cookie, err := ctx.Cookie(constants.CookieKeySession); err == nil {
			if claims, err := utils.ParseSessionToken(cookie.Value, svc.secret); err == nil {
				sessionID = claims.SessionID
			}
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
			token, err := utils.GenerateSessionToken(sessionID, svc.secret, constants.SessionTTL)
			if err != nil {
				return err
			}
			ctx.SetCookie(&http.Cookie{
				Name:     constants.CookieKeySession,
				Value:    token,
				Path:     "/",
				Expires:  time.Now().Add(constants.SessionTTL),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx.Set(constants.CtxKeySessionID, sessionID)
		req := ctx.Request()
		ctx.SetRequest(req.WithContext(logger.WithFields(req.Context(), "session_id", sessionID)))

		return next(ctx)
	}
}

// AdminMiddleware admits requests carrying the server secret as a bearer token.
func (svc *APIService) AdminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		token, ok := strings.CutPrefix(ctx.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
		if !ok || svc.secret == "" || subtle.ConstantTimeCompare([]byte(token), []byte(svc.secret)) != 1 {
			return constants.ErrUnauthorized
		}

		return next(ctx)
	}
}
