package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"parkly/internal/auth"
	"parkly/internal/errors"
	"parkly/internal/model"
	"parkly/internal/service"
)

// SessionHandler handles session, registration and UI focus endpoints.
type SessionHandler struct {
	parkingService service.ParkingService
	jwtService     *auth.JWTService
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(parkingService service.ParkingService, jwtService *auth.JWTService) *SessionHandler {
	return &SessionHandler{parkingService: parkingService, jwtService: jwtService}
}

// CreateSessionResponse carries the token of a new session.
type CreateSessionResponse struct {
	SessionID string            `json:"sessionId"`
	Token     string            `json:"token"`
	Snapshot  *service.Snapshot `json:"snapshot"`
}

// SetActiveZoneRequest selects the zone the client is looking at.
type SetActiveZoneRequest struct {
	Zone string `json:"zone" validate:"required"`
}

// RegisterRequest represents a driver registration request.
type RegisterRequest struct {
	Name          string `json:"name"`
	VehicleNumber string `json:"vehicleNumber"`
	Email         string `json:"email"`
}

// CreateSession godoc
// @Summary Start a parking session
// @Description Creates an isolated session with a freshly generated slot table.
// @Tags session
// @Produce json
// @Success 201 {object} CreateSessionResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) CreateSession(c echo.Context) error {
	id := auth.NewSessionID()
	snapshot, err := h.parkingService.OpenSession(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	token, err := h.jwtService.GenerateSessionToken(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to issue session token",
			Code:  "TOKEN_FAILED",
		})
	}
	return c.JSON(http.StatusCreated, CreateSessionResponse{
		SessionID: id,
		Token:     token,
		Snapshot:  snapshot,
	})
}

// GetSession godoc
// @Summary Get the session snapshot
// @Tags session
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Snapshot
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /session [get]
func (h *SessionHandler) GetSession(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}
	snapshot, err := h.parkingService.Snapshot(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	c.Response().Header().Set("ETag", quoteETag(snapshot.ETag))
	return c.JSON(http.StatusOK, snapshot)
}

// SetActiveZone godoc
// @Summary Select the active zone
// @Tags session
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SetActiveZoneRequest true "Zone"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /session/zone [put]
func (h *SessionHandler) SetActiveZone(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}
	var req SetActiveZoneRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}
	if err := h.parkingService.SetActiveZone(c.Request().Context(), id, model.Zone(req.Zone)); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"activeZone": req.Zone})
}

// Register godoc
// @Summary Register the session's driver
// @Description Replaces any previously registered driver of the session.
// @Tags session
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /session/user [post]
func (h *SessionHandler) Register(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	user, err := h.parkingService.Register(c.Request().Context(), id, model.RegistrationRequest{
		Name:          req.Name,
		VehicleNumber: req.VehicleNumber,
		Email:         req.Email,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// GetUser godoc
// @Summary Get the registered driver
// @Tags session
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Router /session/user [get]
func (h *SessionHandler) GetUser(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}
	user, err := h.parkingService.CurrentUser(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	if user == nil {
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
			Error: errors.ErrUserNotRegistered.Error(),
			Code:  "USER_NOT_FOUND",
		})
	}
	return c.JSON(http.StatusOK, user)
}
