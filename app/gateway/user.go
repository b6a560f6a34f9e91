package gateway

import (
	"github.com/labstack/echo/v4"
)

// POST /users
func (g *G) CreateUser(c echo.Context) error {
	var req createUserReq
	raw, err := checkedBody(c, &req)
	if err != nil {
		return badRequest(c, err.Error())
	}
	status, body, err := g.Cli.Post(c.Request().Context(), "/users", "", raw)
	return g.relay(c, status, body, err)
}

// GET /users
func (g *G) AllUsers(c echo.Context) error {
	status, body, err := g.Cli.Get(c.Request().Context(), "/users", nil, "")
	return g.relay(c, status, body, err)
}

// GET /users/:id
func (g *G) GetUser(c echo.Context) error {
	status, body, err := g.Cli.Get(c.Request().Context(), "/users/"+c.Param("id"), nil, "")
	return g.relay(c, status, body, err)
}

// PATCH /users/:id
func (g *G) UpdateUser(c echo.Context) error {
	raw, err := rawBody(c)
	if err != nil {
		return badRequest(c, "invalid body")
	}
	status, body, err := g.Cli.Patch(c.Request().Context(), "/users/"+c.Param("id"), nil, "", raw)
	return g.relay(c, status, body, err)
}

// DELETE /users/:id
func (g *G) DeleteUser(c echo.Context) error {
	status, body, err := g.Cli.Delete(c.Request().Context(), "/users/"+c.Param("id"), "")
	return g.relay(c, status, body, err)
}
