package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bilemo/bilemo-api/internal/api/metrics"
	"github.com/bilemo/bilemo-api/internal/core/domain"
	"github.com/bilemo/bilemo-api/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Get handles GET /api/users/:id.
//
// @Summary      Show a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, domain.ErrUserNotFound)
	if err != nil {
		return err
	}

	u, err := h.service.Get(c.Request().Context(), p, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(p, u))
}

// List handles GET /api/users. Clients see their own users, admins see all.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page           query     int     false  "Page number (1-based)"
// @Param        limit          query     int     false  "Page size (max 100)"
// @Param        If-None-Match  header    string  false  "Validation token of a cached copy"
// @Success      200            {object}  pageResponse[userResponse]
// @Success      304
// @Failure      400            {object}  map[string][]string
// @Failure      401            {object}  errorBody
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	return h.list(c, h.service.List)
}

// ListAll handles GET /api/admin/users.
//
// @Summary      List every user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page           query     int     false  "Page number (1-based)"
// @Param        limit          query     int     false  "Page size (max 100)"
// @Param        If-None-Match  header    string  false  "Validation token of a cached copy"
// @Success      200            {object}  pageResponse[userResponse]
// @Success      304
// @Failure      400            {object}  map[string][]string
// @Failure      401            {object}  errorBody
// @Failure      403            {object}  errorBody
// @Router       /api/admin/users [get]
func (h *UserHandler) ListAll(c echo.Context) error {
	return h.list(c, h.service.ListAll)
}

func (h *UserHandler) list(c echo.Context, fetch func(context.Context, ports.ListInput) (*ports.ListResult[*domain.User], error)) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	in, err := listInput(c, p)
	if err != nil {
		return err
	}

	res, err := fetch(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return respondList(c, "users", res, func(u *domain.User) userResponse {
		return toUserResponse(p, u)
	})
}

// Create handles POST /api/users. The new user belongs to the caller unless
// an admin names another client_id.
//
// @Summary      Register a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      userRequest  true  "User document"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string][]string
// @Failure      401   {object}  errorBody
// @Failure      403   {object}  errorBody
// @Router       /api/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req userRequest
	err = bindAndValidate(c, &req)
	if req.Password == "" {
		err = withFieldError(err, "password", domain.MsgNotBlank)
	}
	if err != nil {
		return err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	u, err := h.service.Create(c.Request().Context(), p, ports.UserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Active:   active,
		ClientID: req.ClientID,
	})
	if err != nil {
		return err
	}

	metrics.ResourcesCreatedTotal.WithLabelValues("users").Inc()
	resp := toUserResponse(p, u)
	c.Response().Header().Set(echo.HeaderLocation, resp.Links.Self)
	return c.JSON(http.StatusCreated, resp)
}

// Update handles PUT /api/users/:id. An omitted active flag means false.
//
// @Summary      Replace a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int          true  "User id"
// @Param        body  body      userRequest  true  "User document"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  map[string][]string
// @Failure      401   {object}  errorBody
// @Failure      403   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, domain.ErrUserNotFound)
	if err != nil {
		return err
	}

	var req userRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	u, err := h.service.Update(c.Request().Context(), p, id, ports.UserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Active:   req.Active != nil && *req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(p, u))
}

// Delete handles DELETE /api/users/:id.
//
// @Summary      Delete a user
// @Tags         users
// @Security     BearerAuth
// @Param        id   path  int  true  "User id"
// @Success      204
// @Failure      401  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, domain.ErrUserNotFound)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), p, id); err != nil {
		return err
	}
	metrics.ResourcesDeletedTotal.WithLabelValues("users").Inc()
	return c.NoContent(http.StatusNoContent)
}
