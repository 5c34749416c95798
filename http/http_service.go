package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/flokiorg/tickethub/api"
	"github.com/flokiorg/tickethub/config"
	"github.com/flokiorg/tickethub/logger"
	"github.com/flokiorg/tickethub/service"
)

type HttpService struct {
	api api.API
	cfg config.Config
}

func NewHttpService(svc service.Service) *HttpService {
	return &HttpService{
		api: api.NewAPI(svc, svc.GetConfig(), svc.GetKeys()),
		cfg: svc.GetConfig(),
	}
}

func (httpSvc *HttpService) RegisterSharedRoutes(e *echo.Echo) {
	e.HideBanner = true

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "no-referrer",
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogHost:      true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			logger.HttpLogger.Info().
				Str("uri", values.URI).
				Int("status", values.Status).
				Str("remote_ip", values.RemoteIP).
				Str("user_agent", values.UserAgent).
				Str("host", values.Host).
				Str("request_id", values.RequestID).
				Msg("handled API request")
			return nil
		},
	}))

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	e.GET("/api/info", httpSvc.infoHandler)

	apiGroup := e.Group("/api")
	if secret := httpSvc.cfg.GetJWTSecret(); secret != "" {
		apiGroup.Use(echojwt.WithConfig(echojwt.Config{
			NewClaimsFunc: func(c echo.Context) jwt.Claims {
				return new(jwt.RegisteredClaims)
			},
			SigningKey:  []byte(secret),
			TokenLookup: "header:Authorization:Bearer ,query:token",
		}))
	}

	apiGroup.POST("/links", httpSvc.handleLinkHandler)
	apiGroup.GET("/imports", httpSvc.listImportsHandler)
	apiGroup.GET("/imports/:id", httpSvc.getImportHandler)
	apiGroup.POST("/imports/:id/confirm", httpSvc.confirmImportHandler)
	apiGroup.POST("/imports/:id/cancel", httpSvc.cancelImportHandler)
	apiGroup.POST("/imports/:id/retry", httpSvc.retryImportHandler)
	apiGroup.DELETE("/imports/:id", httpSvc.acknowledgeImportHandler)
	apiGroup.GET("/settings", httpSvc.getSettingsHandler)
	apiGroup.PATCH("/settings", httpSvc.updateSettingsHandler)
}

func (httpSvc *HttpService) infoHandler(c echo.Context) error {
	responseBody, err := httpSvc.api.GetInfo(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: err.Error(),
		})
	}
	return c.JSON(http.StatusOK, responseBody)
}

func (httpSvc *HttpService) handleLinkHandler(c echo.Context) error {
	var handleLinkRequest api.HandleLinkRequest
	if err := c.Bind(&handleLinkRequest); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: fmt.Sprintf("Bad request: %s", err.Error()),
		})
	}

	result, err := httpSvc.api.HandleLink(c.Request().Context(), &handleLinkRequest)
	if err != nil {
		return importErrorResponse(c, err, "Failed to handle link")
	}
	return c.JSON(http.StatusOK, result)
}

func (httpSvc *HttpService) listImportsHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, httpSvc.api.ListImports())
}

func (httpSvc *HttpService) getImportHandler(c echo.Context) error {
	session, err := httpSvc.api.GetImport(c.Param("id"))
	if err != nil {
		return importErrorResponse(c, err, "Failed to get import")
	}
	return c.JSON(http.StatusOK, session)
}

func (httpSvc *HttpService) confirmImportHandler(c echo.Context) error {
	session, err := httpSvc.api.ConfirmImport(c.Param("id"))
	if err != nil {
		return importErrorResponse(c, err, "Failed to confirm import")
	}
	return c.JSON(http.StatusOK, session)
}

func (httpSvc *HttpService) cancelImportHandler(c echo.Context) error {
	session, err := httpSvc.api.CancelImport(c.Param("id"))
	if err != nil {
		return importErrorResponse(c, err, "Failed to cancel import")
	}
	return c.JSON(http.StatusOK, session)
}

func (httpSvc *HttpService) retryImportHandler(c echo.Context) error {
	result, err := httpSvc.api.RetryImport(c.Request().Context(), c.Param("id"))
	if err != nil {
		return importErrorResponse(c, err, "Failed to retry import")
	}
	return c.JSON(http.StatusOK, result)
}

func (httpSvc *HttpService) acknowledgeImportHandler(c echo.Context) error {
	err := httpSvc.api.AcknowledgeImport(c.Param("id"))
	if err != nil {
		return importErrorResponse(c, err, "Failed to acknowledge import")
	}
	return c.NoContent(http.StatusNoContent)
}

func (httpSvc *HttpService) getSettingsHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, httpSvc.api.GetSettings())
}

func (httpSvc *HttpService) updateSettingsHandler(c echo.Context) error {
	var updateSettingsRequest api.UpdateSettingsRequest
	if err := c.Bind(&updateSettingsRequest); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: fmt.Sprintf("Bad request: %s", err.Error()),
		})
	}

	err := httpSvc.api.UpdateSettings(&updateSettingsRequest)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: fmt.Sprintf("Failed to update settings: %s", err.Error()),
		})
	}
	return c.JSON(http.StatusOK, httpSvc.api.GetSettings())
}

func importErrorResponse(c echo.Context, err error, message string) error {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, service.ErrImportNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrImportNotTerminal), errors.Is(err, service.ErrImportNotRetrying):
		status = http.StatusConflict
	case errors.Is(err, context.Canceled):
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, ErrorResponse{
		Message: fmt.Sprintf("%s: %s", message, err.Error()),
	})
}
