package gateway

import (
	"github.com/labstack/echo/v4"

	"shareit/util/identity"
)

// POST /requests
func (g *G) CreateRequest(c echo.Context) error {
	uid, ok := caller(c)
	if !ok {
		return badRequest(c, "missing "+identity.Header+" header")
	}
	var req createRequestReq
	raw, err := checkedBody(c, &req)
	if err != nil {
		return badRequest(c, err.Error())
	}
	status, body, err := g.Cli.Post(c.Request().Context(), "/requests", uid, raw)
	return g.relay(c, status, body, err)
}

// GET /requests
func (g *G) OwnerRequests(c echo.Context) error {
	uid, ok := caller(c)
	if !ok {
		return badRequest(c, "missing "+identity.Header+" header")
	}
	status, body, err := g.Cli.Get(c.Request().Context(), "/requests", nil, uid)
	return g.relay(c, status, body, err)
}

// GET /requests/all
func (g *G) AllOtherRequests(c echo.Context) error {
	uid, ok := caller(c)
	if !ok {
		return badRequest(c, "missing "+identity.Header+" header")
	}
	status, body, err := g.Cli.Get(c.Request().Context(), "/requests/all", nil, uid)
	return g.relay(c, status, body, err)
}

// GET /requests/:id
func (g *G) GetRequest(c echo.Context) error {
	uid, _ := caller(c)
	status, body, err := g.Cli.Get(c.Request().Context(), "/requests/"+c.Param("id"), nil, uid)
	return g.relay(c, status, body, err)
}

// DELETE /requests/:id
func (g *G) DeleteRequest(c echo.Context) error {
	uid, ok := caller(c)
	if !ok {
		return badRequest(c, "missing "+identity.Header+" header")
	}
	status, body, err := g.Cli.Delete(c.Request().Context(), "/requests/"+c.Param("id"), uid)
	return g.relay(c, status, body, err)
}
