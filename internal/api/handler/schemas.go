package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bilemo/bilemo-api/internal/core/domain"
)

// --- Requests ---

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// clientRequest is the full client document. Password is required on create
// and optional on update.
type clientRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"omitempty,min=6,max=255"`
	Role     string `json:"role" validate:"omitempty,oneof=admin client"`
}

type mobileRequest struct {
	Name        string     `json:"name" validate:"required,min=3,max=25"`
	Price       priceField `json:"price" validate:"required,price" swaggertype:"string" example:"299.99"`
	Description string     `json:"description" validate:"required,min=3,max=1000"`
}

// userRequest is the full user document. Active defaults to true on create;
// ClientID is only honoured for admins.
type userRequest struct {
	Username string `json:"username" validate:"required,min=3,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"omitempty,min=6,max=255"`
	Active   *bool  `json:"active"`
	ClientID uint   `json:"client_id"`
}

// priceField accepts 299.99 and "299.99" alike and keeps the raw text so the
// price rule can check it.
type priceField string

func (p *priceField) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case string(b) == "null":
		*p = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = priceField(s)
	default:
		*p = priceField(b)
	}
	return nil
}

// --- Responses ---

type resourceLinks struct {
	Self   string `json:"self"`
	Update string `json:"update,omitempty"`
	Delete string `json:"delete,omitempty"`
	Users  string `json:"users,omitempty"`
	Client string `json:"client,omitempty"`
}

type loginResponse struct {
	Token  string         `json:"token"`
	Client clientResponse `json:"client"`
}

type clientResponse struct {
	ID        uint          `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Role      string        `json:"role"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Links     resourceLinks `json:"_links"`
}

type mobileResponse struct {
	ID          uint          `json:"id"`
	Name        string        `json:"name"`
	Price       domain.Price  `json:"price" swaggertype:"string" example:"299.99"`
	Description string        `json:"description"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Links       resourceLinks `json:"_links"`
}

type userResponse struct {
	ID        uint          `json:"id"`
	Username  string        `json:"username"`
	Email     string        `json:"email"`
	Active    bool          `json:"active"`
	Role      string        `json:"role"`
	ClientID  uint          `json:"client_id"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Links     resourceLinks `json:"_links"`
}

type pageResponse[T any] struct {
	Items      []T              `json:"items"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	Total      int64            `json:"total"`
	TotalPages int              `json:"total_pages"`
	Links      domain.PageLinks `json:"_links"`
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// --- Mappers ---

func newPageResponse[S, T any](p *domain.Page[S], conv func(S) T) pageResponse[T] {
	items := make([]T, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, conv(it))
	}
	return pageResponse[T]{
		Items:      items,
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      p.Total,
		TotalPages: p.TotalPages,
		Links:      p.Links(),
	}
}

func clientPath(id uint) string { return fmt.Sprintf("/api/clients/%d", id) }
func mobilePath(id uint) string { return fmt.Sprintf("/api/mobiles/%d", id) }
func userPath(id uint) string   { return fmt.Sprintf("/api/users/%d", id) }

func toClientResponse(p domain.Principal, c *domain.Client) clientResponse {
	links := resourceLinks{
		Self:  clientPath(c.ID),
		Users: clientPath(c.ID) + "/users",
	}
	if p.CanAccess(c.ID) {
		links.Update = clientPath(c.ID)
	}
	if p.IsAdmin() {
		links.Delete = fmt.Sprintf("/api/admin/clients/%d", c.ID)
	}
	return clientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Role:      c.Role,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Links:     links,
	}
}

func toMobileResponse(p domain.Principal, m *domain.Mobile) mobileResponse {
	links := resourceLinks{Self: mobilePath(m.ID)}
	if p.IsAdmin() {
		admin := fmt.Sprintf("/api/admin/mobiles/%d", m.ID)
		links.Update = admin
		links.Delete = admin
	}
	return mobileResponse{
		ID:          m.ID,
		Name:        m.Name,
		Price:       m.Price,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		Links:       links,
	}
}

func toUserResponse(p domain.Principal, u *domain.User) userResponse {
	links := resourceLinks{
		Self:   userPath(u.ID),
		Client: clientPath(u.ClientID),
	}
	if p.CanAccess(u.ClientID) {
		links.Update = userPath(u.ID)
		links.Delete = userPath(u.ID)
	}
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Active:    u.Active,
		Role:      u.Role,
		ClientID:  u.ClientID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		Links:     links,
	}
}
