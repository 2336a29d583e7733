package api

import (
	"github.com/brpaz/echozap"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/medportal-org/portal/auth"
	"github.com/medportal-org/portal/errors"
)

func NewServer(handler *Handler, healthCheck *HealthCheck, authenticator auth.Authenticator, logger *zap.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	// Skip auth and logging for the readiness probe
	skipper := RouteSkipper([]string{"/ready"})
	authMiddleware := auth.NewAuthMiddleware(authenticator, auth.AuthMiddlewareOpts{
		Skipper: skipper,
	})

	e.Use(middleware.Recover())
	e.Use(echozap.ZapLogger(logger))
	e.Use(authMiddleware)

	e.HTTPErrorHandler = errors.CustomHTTPErrorHandler

	e.GET("/ready", healthCheck.Ready)
	RegisterHandlers(e, handler)

	return e, nil
}

func RegisterHandlers(e *echo.Echo, handler *Handler) {
	e.GET("/v1/patients", handler.ListPatients)
	e.POST("/v1/patients", handler.CreatePatient)
	e.GET("/v1/patients/:patientId/profile", handler.GetPatientProfile)
	e.POST("/v1/patients/:patientId/chat", handler.Chat)
	e.POST("/v1/patients/:patientId/reports", handler.GenerateReport)
	e.POST("/v1/patients/:patientId/reports/save", handler.SaveReport)
	e.POST("/v1/parse", handler.ParseReport)
}
