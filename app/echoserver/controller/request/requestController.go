package request

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"shareit/app/echoserver/httperr"
	"shareit/model"
	requestsvc "shareit/service/request"
	"shareit/util/identity"
)

type Controller struct {
	Svc requestsvc.Service
	Log *slog.Logger
}

// POST /requests
func (h *Controller) Create(c echo.Context) error {
	var req model.CreateItemRequestReq
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

	ir, err := h.Svc.Create(c.Request().Context(), req, uid)
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, ir)
}

// GET /requests returns the caller's own requests with answering items.
func (h *Controller) OwnerRequests(c echo.Context) error {
	uid, ok := identity.FromContext(c)
	if !ok {
		return httperr.BadRequest(c, "missing "+identity.Header+" header")
	}
	irs, err := h.Svc.OwnerRequests(c.Request().Context(), uid)
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, irs)
}

// GET /requests/all returns everyone else's open requests.
func (h *Controller) AllOther(c echo.Context) error {
	uid, ok := identity.FromContext(c)
	if !ok {
		return httperr.BadRequest(c, "missing "+identity.Header+" header")
	}
	irs, err := h.Svc.AllOther(c.Request().Context(), uid)
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, irs)
}

// GET /requests/:id
func (h *Controller) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return httperr.BadRequest(c, "invalid id")
	}
	ir, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, ir)
}

// DELETE /requests/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return httperr.BadRequest(c, "invalid id")
	}
	uid, ok := identity.FromContext(c)
	if !ok {
		return httperr.BadRequest(c, "missing "+identity.Header+" header")
	}
	if err := h.Svc.Delete(c.Request().Context(), uid, id); err != nil {
		return httperr.Write(c, h.Log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func pathID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
