package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	prom "github.com/prometheus/client_golang/prometheus"
	echoSwagger "github.com/swaggo/echo-swagger"

	"parkly/internal/auth"
	"parkly/internal/errors"
	"parkly/internal/handler"
	"parkly/internal/metrics"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	registry *prom.Registry,
	sessionHandler *handler.SessionHandler,
	slotHandler *handler.SlotHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	if registry != nil {
		e.GET("/metrics", echo.WrapHandler(metrics.HTTPHandler(registry)))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/sessions", sessionHandler.CreateSession)
	api.GET("/zones", slotHandler.ListZones)

	// Session routes (require a session token)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ContextKey:  handler.ContextKeyToken,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: "invalid or missing session token",
				Code:  "INVALID_SESSION",
			})
		},
	}))

	secured.GET("/session", sessionHandler.GetSession)
	secured.PUT("/session/zone", sessionHandler.SetActiveZone)
	secured.POST("/session/user", sessionHandler.Register)
	secured.GET("/session/user", sessionHandler.GetUser)

	secured.GET("/slots", slotHandler.ListSlots)
	secured.GET("/slots/:id", slotHandler.GetSlot)
	secured.POST("/slots/:id/booking", slotHandler.BookSlot)
	secured.DELETE("/slots/:id/booking", slotHandler.CancelBooking)
	secured.POST("/slots/:id/arrival", slotHandler.ConfirmArrival)

	secured.GET("/zones/:zone/stats", slotHandler.ZoneStats)
	secured.GET("/bookings", slotHandler.ListBookings)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
