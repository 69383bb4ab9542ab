package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bilemo/bilemo-api/internal/api/metrics"
	"github.com/bilemo/bilemo-api/internal/core/domain"
	"github.com/bilemo/bilemo-api/internal/core/ports"
)

type ClientHandler struct {
	clients ports.ClientService
	users   ports.UserService
}

func NewClientHandler(clients ports.ClientService, users ports.UserService) *ClientHandler {
	return &ClientHandler{clients: clients, users: users}
}

// Get handles GET /api/clients/:id.
//
// @Summary      Show a client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Client id"
// @Success      200  {object}  clientResponse
// @Failure      401  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /api/clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, domain.ErrClientNotFound)
	if err != nil {
		return err
	}

	client, err := h.clients.Get(c.Request().Context(), p, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientResponse(p, client))
}

// List handles GET /api/admin/clients.
//
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        page           query     int     false  "Page number (1-based)"
// @Param        limit          query     int     false  "Page size (max 100)"
// @Param        If-None-Match  header    string  false  "Validation token of a cached copy"
// @Success      200            {object}  pageResponse[clientResponse]
// @Success      304
// @Failure      400            {object}  map[string][]string
// @Failure      401            {object}  errorBody
// @Failure      403            {object}  errorBody
// @Router       /api/admin/clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	in, err := listInput(c, p)
	if err != nil {
		return err
	}

	res, err := h.clients.List(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return respondList(c, "clients", res, func(cl *domain.Client) clientResponse {
		return toClientResponse(p, cl)
	})
}

// Users handles GET /api/clients/:id/users.
//
// @Summary      List the users of a client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id             path      int     true   "Client id"
// @Param        page           query     int     false  "Page number (1-based)"
// @Param        limit          query     int     false  "Page size (max 100)"
// @Param        If-None-Match  header    string  false  "Validation token of a cached copy"
// @Success      200            {object}  pageResponse[userResponse]
// @Success      304
// @Failure      401            {object}  errorBody
// @Failure      403            {object}  errorBody
// @Failure      404            {object}  errorBody
// @Router       /api/clients/{id}/users [get]
func (h *ClientHandler) Users(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, domain.ErrClientNotFound)
	if err != nil {
		return err
	}
	in, err := listInput(c, p)
	if err != nil {
		return err
	}

	res, err := h.users.ListByClient(c.Request().Context(), in, id)
	if err != nil {
		return err
	}
	return respondList(c, "users", res, func(u *domain.User) userResponse {
		return toUserResponse(p, u)
	})
}

// Create handles POST /api/admin/clients.
//
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      clientRequest  true  "Client document"
// @Success      201   {object}  clientResponse
// @Failure      400   {object}  map[string][]string
// @Failure      401   {object}  errorBody
// @Failure      403   {object}  errorBody
// @Router       /api/admin/clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req clientRequest
	err = bindAndValidate(c, &req)
	if req.Password == "" {
		err = withFieldError(err, "password", domain.MsgNotBlank)
	}
	if err != nil {
		return err
	}

	client, err := h.clients.Create(c.Request().Context(), p, ports.ClientInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	metrics.ResourcesCreatedTotal.WithLabelValues("clients").Inc()
	resp := toClientResponse(p, client)
	c.Response().Header().Set(echo.HeaderLocation, resp.Links.Self)
	return c.JSON(http.StatusCreated, resp)
}

// Update handles PUT /api/clients/:id.
//
// @Summary      Replace a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int            true  "Client id"
// @Param        body  body      clientRequest  true  "Client document"
// @Success      200   {object}  clientResponse
// @Failure      400   {object}  map[string][]string
// @Failure      401   {object}  errorBody
// @Failure      403   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /api/clients/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, domain.ErrClientNotFound)
	if err != nil {
		return err
	}

	var req clientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	client, err := h.clients.Update(c.Request().Context(), p, id, ports.ClientInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientResponse(p, client))
}

// Delete handles DELETE /api/admin/clients/:id. The client's users are removed with it.
//
// @Summary      Delete a client and its users
// @Tags         clients
// @Security     BearerAuth
// @Param        id   path  int  true  "Client id"
// @Success      204
// @Failure      401  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /api/admin/clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, domain.ErrClientNotFound)
	if err != nil {
		return err
	}

	if err := h.clients.Delete(c.Request().Context(), p, id); err != nil {
		return err
	}
	metrics.ResourcesDeletedTotal.WithLabelValues("clients").Inc()
	return c.NoContent(http.StatusNoContent)
}
