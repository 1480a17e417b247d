// Package app contains the REST API served over echo.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/influxdata/influxdb/pkg/snowflake"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/stolasapp/courseware/internal/config"
	"github.com/stolasapp/courseware/internal/sec"
	"github.com/stolasapp/courseware/internal/storage"
	"github.com/stolasapp/courseware/internal/validate"
)

// New creates the API server.
func New(
	cfg *config.Config,
	logger *slog.Logger,
	store storage.Store,
) *echo.Echo {
	srv := echo.New()

	srv.HideBanner = true
	srv.HidePort = true
	srv.Debug = cfg.DevMode
	srv.Logger.SetLevel(log.OFF)
	srv.HTTPErrorHandler = errorHandler(cfg, logger)

	ids := snowflake.New(rand.IntN(1023)) //nolint:gosec,mnd // this isn't for crypto
	srv.Use(
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			Generator: func() string { return strconv.FormatUint(ids.Next(), 10) },
		}),
		logRequests(logger),
		middleware.RecoverWithConfig(middleware.RecoverConfig{
			LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
				if cfg.GlobalErrorLogging {
					logger.ErrorContext(c.Request().Context(),
						"recovered from panic",
						slog.Any("error", err),
						slog.String("stack", string(stack)),
					)
				}
				return err
			},
		}),
		middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:  cfg.CORSOrigins,
			ExposeHeaders: []string{echo.HeaderLocation},
		}),
	)

	handler{
		users:   store,
		courses: store,
	}.register(srv, cfg.APIPrefix, sec.Middleware(store, logger))
	return srv
}

func logRequests(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			latency := time.Since(start)

			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			logger.LogAttrs(
				req.Context(),
				slog.LevelInfo,
				"request handled",
				slog.String("method", req.Method),
				slog.String("uri", req.RequestURI),
				slog.String("route", c.Path()),
				slog.Duration("latency", latency),
				slog.Int("status", res.Status),
				slog.String("request_id", res.Header().Get(echo.HeaderXRequestID)),
			)
			return err
		}
	}
}

type messageBody struct {
	Message string `json:"message"`
}

type errorsBody struct {
	Errors []string `json:"errors"`
}

type internalBody struct {
	Message string   `json:"message"`
	Error   struct{} `json:"error"`
}

// errorHandler writes every error response. Internal failure details reach
// the log only when global error logging is enabled.
func errorHandler(cfg *config.Config, logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		ctx := c.Request().Context()
		status, body := errorResponse(err)
		if status >= http.StatusInternalServerError && cfg.GlobalErrorLogging {
			logger.ErrorContext(ctx, "global error handler",
				slog.Any("error", err),
				slog.String("uri", c.Request().RequestURI),
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.ErrorContext(ctx, "failed to write error response", slog.Any("error", writeErr))
		}
	}
}

func errorResponse(err error) (int, any) {
	var (
		violations validate.Errors
		httpErr    *echo.HTTPError
	)
	switch {
	case errors.As(err, &violations):
		return http.StatusBadRequest, errorsBody{Errors: violations}
	case errors.Is(err, echo.ErrNotFound), errors.Is(err, echo.ErrMethodNotAllowed):
		return http.StatusNotFound, messageBody{Message: msgRouteNotFound}
	case errors.Is(err, echo.ErrUnsupportedMediaType):
		return http.StatusBadRequest, messageBody{Message: msgUnsupportedBody}
	case errors.As(err, &httpErr):
		if httpErr.Code >= http.StatusInternalServerError {
			return httpErr.Code, internalBody{Message: fmt.Sprint(httpErr.Message)}
		}
		return httpErr.Code, messageBody{Message: fmt.Sprint(httpErr.Message)}
	default:
		return http.StatusInternalServerError, internalBody{Message: err.Error()}
	}
}
