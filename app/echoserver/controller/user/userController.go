package user

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"shareit/app/echoserver/httperr"
	"shareit/model"
	usersvc "shareit/service/user"
)

type Controller struct {
	Svc usersvc.Service
	Log *slog.Logger
}

// Create registers a user
// @Summary      Create user
// @Description  Register a user; email must be unique across the directory
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        payload  body  model.CreateUserReq  true  "User payload"
// @Success      201  {object}  model.User
// @Failure      400  {object}  map[string]any
// @Failure      409  {object}  map[string]any "email already registered"
// @Router       /users [post]
func (h *Controller) Create(c echo.Context) error {
	var req model.CreateUserReq
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(c, "invalid JSON")
	}
	if err := c.Validate(&req); err != nil {
		return httperr.BadRequest(c, err.Error())
	}

	u, err := h.Svc.Create(c.Request().Context(), req)
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, u)
}

// GET /users/:id
func (h *Controller) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return httperr.BadRequest(c, "invalid id")
	}
	u, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, u)
}

// GET /users
func (h *Controller) All(c echo.Context) error {
	us, err := h.Svc.All(c.Request().Context())
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, us)
}

// PATCH /users/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return httperr.BadRequest(c, "invalid id")
	}
	var body map[string]any
	if err := c.Bind(&body); err != nil {
		return httperr.BadRequest(c, "invalid JSON")
	}
	update := make(map[string]string, len(body))
	for k, v := range body {
		if s, ok := v.(string); ok {
			update[k] = s
		}
	}

	u, err := h.Svc.Update(c.Request().Context(), update, id)
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, u)
}

// DELETE /users/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return httperr.BadRequest(c, "invalid id")
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return httperr.Write(c, h.Log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func pathID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
