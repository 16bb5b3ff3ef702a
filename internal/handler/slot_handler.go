package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"parkly/internal/errors"
	"parkly/internal/model"
	"parkly/internal/parking"
	"parkly/internal/service"
)

// SlotHandler handles slot, booking and statistics endpoints.
type SlotHandler struct {
	parkingService service.ParkingService
}

// NewSlotHandler creates a new slot handler.
func NewSlotHandler(parkingService service.ParkingService) *SlotHandler {
	return &SlotHandler{parkingService: parkingService}
}

// SlotsResponse is the slot table, optionally narrowed to one zone.
type SlotsResponse struct {
	Slots parking.Table `json:"slots"`
	ETag  string        `json:"etag"`
}

// BookingsResponse lists the driver's current bookings.
type BookingsResponse struct {
	Bookings []model.ParkingSlot `json:"bookings"`
}

// ListZones godoc
// @Summary List zone configuration
// @Tags zones
// @Produce json
// @Success 200 {object} model.ZoneConfigs
// @Router /zones [get]
func (h *SlotHandler) ListZones(c echo.Context) error {
	return c.JSON(http.StatusOK, h.parkingService.Zones())
}

// ListSlots godoc
// @Summary List parking slots
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param zone query string false "Zone filter"
// @Success 200 {object} SlotsResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /slots [get]
func (h *SlotHandler) ListSlots(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}
	table, etag, err := h.parkingService.Slots(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	if zone := model.Zone(c.QueryParam("zone")); zone != "" {
		slots, ok := table[zone]
		if !ok {
			return domainError(errors.ErrUnknownZone)
		}
		table = parking.Table{zone: slots}
	}
	c.Response().Header().Set("ETag", quoteETag(etag))
	return c.JSON(http.StatusOK, SlotsResponse{Slots: table, ETag: etag})
}

// GetSlot godoc
// @Summary Get a parking slot
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Success 200 {object} model.ParkingSlot
// @Failure 404 {object} errors.ErrorResponse
// @Router /slots/{id} [get]
func (h *SlotHandler) GetSlot(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}
	slot, err := h.parkingService.Slot(c.Request().Context(), id, c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, slot)
}

// BookSlot godoc
// @Summary Book a parking slot
// @Description Reserves an available visitor slot for the registered driver.
// @Tags slots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Param If-Match header string false "Slot table etag"
// @Param request body model.BookingRequest true "Booking data"
// @Success 200 {object} model.ParkingSlot
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 412 {object} errors.ErrorResponse
// @Router /slots/{id}/booking [post]
func (h *SlotHandler) BookSlot(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}
	var req model.BookingRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}
	ifMatch := parseIfMatch(c.Request().Header.Get("If-Match"))
	slot, err := h.parkingService.Book(c.Request().Context(), id, c.Param("id"), req, ifMatch)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, slot)
}

// ConfirmArrival godoc
// @Summary Confirm arrival at a reserved slot
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Success 200 {object} model.ParkingSlot
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /slots/{id}/arrival [post]
func (h *SlotHandler) ConfirmArrival(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}
	slot, err := h.parkingService.ConfirmArrival(c.Request().Context(), id, c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, slot)
}

// CancelBooking godoc
// @Summary Cancel a booking
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Success 200 {object} model.ParkingSlot
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /slots/{id}/booking [delete]
func (h *SlotHandler) CancelBooking(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}
	slot, err := h.parkingService.Cancel(c.Request().Context(), id, c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, slot)
}

// ZoneStats godoc
// @Summary Visitor slot counts for a zone
// @Tags zones
// @Produce json
// @Security BearerAuth
// @Param zone path string true "Zone"
// @Success 200 {object} model.ZoneStats
// @Failure 404 {object} errors.ErrorResponse
// @Router /zones/{zone}/stats [get]
func (h *SlotHandler) ZoneStats(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}
	stats, err := h.parkingService.ZoneStats(c.Request().Context(), id, model.Zone(c.Param("zone")))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

// ListBookings godoc
// @Summary List the driver's bookings
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Success 200 {object} BookingsResponse
// @Router /bookings [get]
func (h *SlotHandler) ListBookings(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}
	bookings, err := h.parkingService.UserBookings(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, BookingsResponse{Bookings: bookings})
}
