package booking

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"shareit/app/echoserver/httperr"
	"shareit/model"
	bookingsvc "shareit/service/booking"
	"shareit/util/identity"
)

type Controller struct {
	Svc bookingsvc.Service
	Log *slog.Logger
}

// Create books an item
// @Summary      Create booking
// @Description  Book an available item for a date range; the new booking starts WAITING
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        X-Sharer-User-Id  header  int  true  "caller id"
// @Param        payload  body  model.CreateBookingReq  true  "Booking payload"
// @Success      201  {object}  model.Booking
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /bookings [post]
func (h *Controller) Create(c echo.Context) error {
	var req model.CreateBookingReq
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(c, "invalid JSON")
	}
	if err := c.Validate(&req); err != nil {
		return httperr.BadRequest(c, err.Error())
	}
	uid, ok := identity.FromContext(c)
	if !ok {
		return httperr.BadRequest(c, "missing "+identity.Header+" header")
	}

	b, err := h.Svc.Create(c.Request().Context(), req, uid)
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, b)
}

// PATCH /bookings/:id?approved=bool
func (h *Controller) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return httperr.BadRequest(c, "invalid id")
	}
	approved, err := strconv.ParseBool(c.QueryParam("approved"))
	if err != nil {
		return httperr.BadRequest(c, "invalid approved parameter")
	}
	uid, ok := identity.FromContext(c)
	if !ok {
		return httperr.BadRequest(c, "missing "+identity.Header+" header")
	}

	b, err := h.Svc.UpdateStatus(c.Request().Context(), id, approved, uid)
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, b)
}

// GET /bookings/:id
func (h *Controller) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return httperr.BadRequest(c, "invalid id")
	}
	uid, ok := identity.FromContext(c)
	if !ok {
		return httperr.BadRequest(c, "missing "+identity.Header+" header")
	}

	b, err := h.Svc.Get(c.Request().Context(), id, uid)
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, b)
}

// GET /bookings?state=ALL
func (h *Controller) UserBookings(c echo.Context) error {
	uid, ok := identity.FromContext(c)
	if !ok {
		return httperr.BadRequest(c, "missing "+identity.Header+" header")
	}
	state := c.QueryParam("state")
	if state == "" {
		state = "ALL"
	}

	bs, err := h.Svc.UserBookings(c.Request().Context(), state, uid)
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, bs)
}

// GET /bookings/owner?state=ALL
func (h *Controller) OwnerBookings(c echo.Context) error {
	uid, ok := identity.FromContext(c)
	if !ok {
		return httperr.BadRequest(c, "missing "+identity.Header+" header")
	}
	state := c.QueryParam("state")
	if state == "" {
		state = "ALL"
	}

	bs, err := h.Svc.OwnerBookings(c.Request().Context(), state, uid)
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, bs)
}

// DELETE /bookings/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return httperr.BadRequest(c, "invalid id")
	}
	uid, ok := identity.FromContext(c)
	if !ok {
		return httperr.BadRequest(c, "missing "+identity.Header+" header")
	}

	if err := h.Svc.Delete(c.Request().Context(), id, uid); err != nil {
		return httperr.Write(c, h.Log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func pathID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
