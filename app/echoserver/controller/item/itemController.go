package item

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"shareit/app/echoserver/httperr"
	"shareit/model"
	commentsvc "shareit/service/comment"
	itemsvc "shareit/service/item"
	"shareit/util/identity"
)

type Controller struct {
	Svc      itemsvc.Service
	Comments commentsvc.Service
	Log      *slog.Logger
}

// Create lists an item
// @Summary      Create item
// @Description  List an item for rent, optionally answering an item request
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        X-Sharer-User-Id  header  int  true  "owner id"
// @Param        payload  body  model.CreateItemReq  true  "Item payload"
// @Success      201  {object}  model.Item
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /items [post]
func (h *Controller) Create(c echo.Context) error {
	var req model.CreateItemReq
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

	it, err := h.Svc.Create(c.Request().Context(), req, uid)
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, it)
}

// PATCH /items/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return httperr.BadRequest(c, "invalid id")
	}
	var body map[string]any
	if err := c.Bind(&body); err != nil {
		return httperr.BadRequest(c, "invalid JSON")
	}
	update := stringValues(body)
	uid, ok := identity.FromContext(c)
	if !ok {
		return httperr.BadRequest(c, "missing "+identity.Header+" header")
	}

	it, err := h.Svc.Update(c.Request().Context(), update, id, uid)
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, it)
}

// GET /items/:id
func (h *Controller) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return httperr.BadRequest(c, "invalid id")
	}
	it, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, it)
}

// GET /items returns the owner's catalog with booking context.
func (h *Controller) OwnerItems(c echo.Context) error {
	uid, ok := identity.FromContext(c)
	if !ok {
		return httperr.BadRequest(c, "missing "+identity.Header+" header")
	}
	items, err := h.Svc.OwnerItems(c.Request().Context(), uid)
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, items)
}

// GET /items/search?text=
func (h *Controller) Search(c echo.Context) error {
	items, err := h.Svc.Search(c.Request().Context(), c.QueryParam("text"))
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, items)
}

// DELETE /items/:id
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

// POST /items/:id/comment
func (h *Controller) CreateComment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return httperr.BadRequest(c, "invalid id")
	}
	var req model.CreateCommentReq
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

	comment, err := h.Comments.Create(c.Request().Context(), req, id, uid)
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, comment)
}

func pathID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// stringValues flattens a partial-update body to strings, so a JSON boolean
// like {"available": false} reads the same as {"available": "false"}.
func stringValues(body map[string]any) map[string]string {
	out := make(map[string]string, len(body))
	for k, v := range body {
		switch t := v.(type) {
		case string:
			out[k] = t
		case nil:
			out[k] = ""
		default:
			out[k] = fmt.Sprint(t)
		}
	}
	return out
}
