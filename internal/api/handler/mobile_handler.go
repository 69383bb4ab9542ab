package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bilemo/bilemo-api/internal/api/metrics"
	"github.com/bilemo/bilemo-api/internal/core/domain"
	"github.com/bilemo/bilemo-api/internal/core/ports"
)

type MobileHandler struct {
	service ports.MobileService
}

func NewMobileHandler(service ports.MobileService) *MobileHandler {
	return &MobileHandler{service: service}
}

// Get handles GET /api/mobiles/:id.
//
// @Summary      Show a mobile
// @Tags         mobiles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Mobile id"
// @Success      200  {object}  mobileResponse
// @Failure      401  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /api/mobiles/{id} [get]
func (h *MobileHandler) Get(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, domain.ErrMobileNotFound)
	if err != nil {
		return err
	}

	m, err := h.service.Get(c.Request().Context(), p, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMobileResponse(p, m))
}

// List handles GET /api/mobiles.
//
// @Summary      List the catalogue
// @Tags         mobiles
// @Produce      json
// @Security     BearerAuth
// @Param        page           query     int     false  "Page number (1-based)"
// @Param        limit          query     int     false  "Page size (max 100)"
// @Param        If-None-Match  header    string  false  "Validation token of a cached copy"
// @Success      200            {object}  pageResponse[mobileResponse]
// @Success      304
// @Failure      400            {object}  map[string][]string
// @Failure      401            {object}  errorBody
// @Router       /api/mobiles [get]
func (h *MobileHandler) List(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	in, err := listInput(c, p)
	if err != nil {
		return err
	}

	res, err := h.service.List(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return respondList(c, "mobiles", res, func(m *domain.Mobile) mobileResponse {
		return toMobileResponse(p, m)
	})
}

// Create handles POST /api/admin/mobiles.
//
// @Summary      Add a mobile to the catalogue
// @Tags         mobiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      mobileRequest  true  "Mobile document"
// @Success      201   {object}  mobileResponse
// @Failure      400   {object}  map[string][]string
// @Failure      401   {object}  errorBody
// @Failure      403   {object}  errorBody
// @Router       /api/admin/mobiles [post]
func (h *MobileHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	in, err := bindMobile(c)
	if err != nil {
		return err
	}

	m, err := h.service.Create(c.Request().Context(), p, in)
	if err != nil {
		return err
	}

	metrics.ResourcesCreatedTotal.WithLabelValues("mobiles").Inc()
	resp := toMobileResponse(p, m)
	c.Response().Header().Set(echo.HeaderLocation, resp.Links.Self)
	return c.JSON(http.StatusCreated, resp)
}

// Update handles PUT /api/admin/mobiles/:id.
//
// @Summary      Replace a mobile
// @Tags         mobiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int            true  "Mobile id"
// @Param        body  body      mobileRequest  true  "Mobile document"
// @Success      200   {object}  mobileResponse
// @Failure      400   {object}  map[string][]string
// @Failure      401   {object}  errorBody
// @Failure      403   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /api/admin/mobiles/{id} [put]
func (h *MobileHandler) Update(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, domain.ErrMobileNotFound)
	if err != nil {
		return err
	}
	in, err := bindMobile(c)
	if err != nil {
		return err
	}

	m, err := h.service.Update(c.Request().Context(), p, id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMobileResponse(p, m))
}

// Delete handles DELETE /api/admin/mobiles/:id.
//
// @Summary      Remove a mobile
// @Tags         mobiles
// @Security     BearerAuth
// @Param        id   path  int  true  "Mobile id"
// @Success      204
// @Failure      401  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /api/admin/mobiles/{id} [delete]
func (h *MobileHandler) Delete(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, domain.ErrMobileNotFound)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), p, id); err != nil {
		return err
	}
	metrics.ResourcesDeletedTotal.WithLabelValues("mobiles").Inc()
	return c.NoContent(http.StatusNoContent)
}

func bindMobile(c echo.Context) (ports.MobileInput, error) {
	var req mobileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return ports.MobileInput{}, err
	}
	price, err := domain.ParsePrice(string(req.Price))
	if err != nil {
		return ports.MobileInput{}, domain.NewValidationError("price", domain.MsgInvalid)
	}
	return ports.MobileInput{Name: req.Name, Price: price, Description: req.Description}, nil
}
