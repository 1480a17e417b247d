package sec

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"connectrpc.com/authn"
	"github.com/labstack/echo/v4"

	"github.com/stolasapp/courseware/internal/storage"
	"github.com/stolasapp/courseware/internal/storage/db"
)

// AccessDenied is the only message clients see for a failed authentication,
// whatever the cause.
const AccessDenied = "Access Denied"

// ErrUnauthenticated wraps every authentication failure returned by
// [Authenticate]. The wrapped message carries the cause for the server log.
var ErrUnauthenticated = errors.New("unauthenticated")

// Authenticate resolves the user identified by the Authorization header
// value. Credential failures wrap [ErrUnauthenticated]; any other error is a
// storage failure.
func Authenticate(ctx context.Context, header string, users storage.Users) (db.User, error) {
	email, password, ok := ParseBasicAuth(header)
	if !ok {
		return db.User{}, fmt.Errorf("%w: auth header not found", ErrUnauthenticated)
	}

	user, err := users.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		_ = ComparePassword(password, dummyHash())
		return db.User{}, fmt.Errorf("%w: user not found for email %q", ErrUnauthenticated, email)
	} else if err != nil {
		return db.User{}, err
	}

	if err = ComparePassword(password, user.PasswordHash); err != nil {
		return db.User{}, fmt.Errorf("%w: authentication failure for email %q", ErrUnauthenticated, email)
	}
	return user, nil
}

// Middleware returns echo middleware that authenticates every request it
// wraps. Failures respond 401 with [AccessDenied] and log the cause at warn
// level; on success the user is bound to the request context.
func Middleware(users storage.Users, logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := req.Context()
			user, err := Authenticate(ctx, req.Header.Get(echo.HeaderAuthorization), users)
			if errors.Is(err, ErrUnauthenticated) {
				logger.WarnContext(ctx, "authentication failed",
					slog.String("reason", err.Error()),
					slog.String("uri", req.RequestURI),
				)
				return echo.NewHTTPError(http.StatusUnauthorized, AccessDenied)
			} else if err != nil {
				return err
			}
			c.SetRequest(req.WithContext(SetAuthenticatedUser(ctx, user)))
			return next(c)
		}
	}
}

// GetAuthenticatedUser returns the user information for the authenticated
// user. ok is false if the context has no authenticated user, which only
// happens on public routes or if the middleware is misconfigured.
func GetAuthenticatedUser(ctx context.Context) (user db.User, ok bool) {
	user, ok = authn.GetInfo(ctx).(db.User)
	return user, ok
}

// SetAuthenticatedUser sets the user information for an authenticated user.
// [Middleware] injects this information; this function is also provided as a
// convenience for testing.
func SetAuthenticatedUser(ctx context.Context, user db.User) context.Context {
	return authn.SetInfo(ctx, user)
}
