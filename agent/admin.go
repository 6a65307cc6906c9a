package agent

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	slogecho "github.com/samber/slog-echo"
)

type GenericStatus struct {
	Daemon  string `json:"daemon"`
	Status  string `json:"status"`
	Message string `json:"msg,omitempty"`
}

// RunAdmin serves the operational endpoints (health check, agent status,
// prometheus metrics) until the context is cancelled.
func (a *Agent) RunAdmin(ctx context.Context, bind string) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(slogecho.New(a.logger.With("system", "admin")))
	e.Use(middleware.Recover())
	e.Use(echoprometheus.NewMiddleware("magpie"))

	e.GET("/_health", a.handleHealthCheck)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/status", a.handleStatus)

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(sctx); err != nil {
			a.logger.Error("admin server shutdown error", "err", err)
		}
	}()

	a.logger.Info("starting admin server", "bind", bind)
	if err := e.Start(bind); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *Agent) handleHealthCheck(c echo.Context) error {
	return c.JSON(200, GenericStatus{Daemon: "magpie", Status: "ok"})
}

func (a *Agent) handleStatus(c echo.Context) error {
	st, err := a.Status(c.Request().Context())
	if err != nil {
		return c.JSON(500, GenericStatus{Daemon: "magpie", Status: "error", Message: err.Error()})
	}
	return c.JSON(200, st)
}
