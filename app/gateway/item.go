package gateway

import (
	"net/url"

	"github.com/labstack/echo/v4"

	"shareit/util/identity"
)

// POST /items
func (g *G) CreateItem(c echo.Context) error {
	uid, ok := caller(c)
	if !ok {
		return badRequest(c, "missing "+identity.Header+" header")
	}
	var req createItemReq
	raw, err := checkedBody(c, &req)
	if err != nil {
		return badRequest(c, err.Error())
	}
	status, body, err := g.Cli.Post(c.Request().Context(), "/items", uid, raw)
	return g.relay(c, status, body, err)
}

// PATCH /items/:id
func (g *G) UpdateItem(c echo.Context) error {
	uid, ok := caller(c)
	if !ok {
		return badRequest(c, "missing "+identity.Header+" header")
	}
	raw, err := rawBody(c)
	if err != nil {
		return badRequest(c, "invalid body")
	}
	status, body, err := g.Cli.Patch(c.Request().Context(), "/items/"+c.Param("id"), nil, uid, raw)
	return g.relay(c, status, body, err)
}

// GET /items/:id
func (g *G) GetItem(c echo.Context) error {
	uid, _ := caller(c)
	status, body, err := g.Cli.Get(c.Request().Context(), "/items/"+c.Param("id"), nil, uid)
	return g.relay(c, status, body, err)
}

// GET /items
func (g *G) OwnerItems(c echo.Context) error {
	uid, ok := caller(c)
	if !ok {
		return badRequest(c, "missing "+identity.Header+" header")
	}
	status, body, err := g.Cli.Get(c.Request().Context(), "/items", nil, uid)
	return g.relay(c, status, body, err)
}

// GET /items/search?text=
func (g *G) SearchItems(c echo.Context) error {
	uid, _ := caller(c)
	q := url.Values{"text": {c.QueryParam("text")}}
	status, body, err := g.Cli.Get(c.Request().Context(), "/items/search", q, uid)
	return g.relay(c, status, body, err)
}

// DELETE /items/:id
func (g *G) DeleteItem(c echo.Context) error {
	uid, ok := caller(c)
	if !ok {
		return badRequest(c, "missing "+identity.Header+" header")
	}
	status, body, err := g.Cli.Delete(c.Request().Context(), "/items/"+c.Param("id"), uid)
	return g.relay(c, status, body, err)
}

// POST /items/:id/comment
func (g *G) CreateComment(c echo.Context) error {
	uid, ok := caller(c)
	if !ok {
		return badRequest(c, "missing "+identity.Header+" header")
	}
	var req createCommentReq
	raw, err := checkedBody(c, &req)
	if err != nil {
		return badRequest(c, err.Error())
	}
	status, body, err := g.Cli.Post(c.Request().Context(), "/items/"+c.Param("id")+"/comment", uid, raw)
	return g.relay(c, status, body, err)
}
