package gateway

import (
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"shareit/util/identity"
)

// POST /bookings
func (g *G) CreateBooking(c echo.Context) error {
	uid, ok := caller(c)
	if !ok {
		return badRequest(c, "missing "+identity.Header+" header")
	}
	var req bookItemReq
	raw, err := checkedBody(c, &req)
	if err != nil {
		return badRequest(c, err.Error())
	}
	status, body, err := g.Cli.Post(c.Request().Context(), "/bookings", uid, raw)
	return g.relay(c, status, body, err)
}

// PATCH /bookings/:id?approved=bool
func (g *G) UpdateBookingStatus(c echo.Context) error {
	uid, ok := caller(c)
	if !ok {
		return badRequest(c, "missing "+identity.Header+" header")
	}
	approved := c.QueryParam("approved")
	if _, err := strconv.ParseBool(approved); err != nil {
		return badRequest(c, "invalid approved parameter")
	}
	q := url.Values{"approved": {approved}}
	status, body, err := g.Cli.Patch(c.Request().Context(), "/bookings/"+c.Param("id"), q, uid, nil)
	return g.relay(c, status, body, err)
}

// GET /bookings/:id
func (g *G) GetBooking(c echo.Context) error {
	uid, ok := caller(c)
	if !ok {
		return badRequest(c, "missing "+identity.Header+" header")
	}
	status, body, err := g.Cli.Get(c.Request().Context(), "/bookings/"+c.Param("id"), nil, uid)
	return g.relay(c, status, body, err)
}

// GET /bookings?state=
func (g *G) UserBookings(c echo.Context) error {
	uid, ok := caller(c)
	if !ok {
		return badRequest(c, "missing "+identity.Header+" header")
	}
	state, err := stateParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	q := url.Values{"state": {state}}
	status, body, err := g.Cli.Get(c.Request().Context(), "/bookings", q, uid)
	return g.relay(c, status, body, err)
}

// GET /bookings/owner?state=
func (g *G) OwnerBookings(c echo.Context) error {
	uid, ok := caller(c)
	if !ok {
		return badRequest(c, "missing "+identity.Header+" header")
	}
	state, err := stateParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	q := url.Values{"state": {state}}
	status, body, err := g.Cli.Get(c.Request().Context(), "/bookings/owner", q, uid)
	return g.relay(c, status, body, err)
}

// DELETE /bookings/:id
func (g *G) DeleteBooking(c echo.Context) error {
	uid, ok := caller(c)
	if !ok {
		return badRequest(c, "missing "+identity.Header+" header")
	}
	status, body, err := g.Cli.Delete(c.Request().Context(), "/bookings/"+c.Param("id"), uid)
	return g.relay(c, status, body, err)
}

func stateParam(c echo.Context) (string, error) {
	state := c.QueryParam("state")
	if state == "" {
		state = "ALL"
	}
	if _, ok := knownStates[state]; !ok {
		return "", errUnknownState(state)
	}
	return state, nil
}

type errUnknownState string

func (e errUnknownState) Error() string { return "unknown state: " + string(e) }
