package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/bilemo/bilemo-api/internal/core/domain"
	"github.com/bilemo/bilemo-api/internal/core/ports"
)

func TestUserHandler_Create_ActiveDefault(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"omitted", `{"username":"alice","email":"alice@example.com","password":"secret1"}`, true},
		{"false", `{"username":"alice","email":"alice@example.com","password":"secret1","active":false}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got ports.UserInput
			users := &stubUserService{
				createFn: func(ctx context.Context, p domain.Principal, in ports.UserInput) (*domain.User, error) {
					got = in
					return &domain.User{ID: 5, Username: in.Username, Email: in.Email, Active: in.Active, ClientID: p.ClientID}, nil
				},
			}
			h := NewUserHandler(users)

			c, rec := newTestContext(t, http.MethodPost, "/api/users", tt.body, &clientPrincipal)
			if err := h.Create(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusCreated {
				t.Fatalf("expected 201, got %d", rec.Code)
			}
			if got.Active != tt.want {
				t.Fatalf("active = %v, want %v", got.Active, tt.want)
			}
			if loc := rec.Header().Get("Location"); loc != "/api/users/5" {
				t.Fatalf("unexpected Location: %q", loc)
			}
		})
	}
}

func TestUserHandler_Create_ForwardsClientID(t *testing.T) {
	users := &stubUserService{
		createFn: func(ctx context.Context, p domain.Principal, in ports.UserInput) (*domain.User, error) {
			if in.ClientID != 42 {
				t.Fatalf("expected client_id 42, got %d", in.ClientID)
			}
			return nil, domain.ErrForbidden
		},
	}
	h := NewUserHandler(users)

	c, _ := newTestContext(t, http.MethodPost, "/api/users",
		`{"username":"alice","email":"alice@example.com","password":"secret1","client_id":42}`, &clientPrincipal)
	if err := h.Create(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUserHandler_Update_KeepsPasswordOptional(t *testing.T) {
	users := &stubUserService{
		updateFn: func(ctx context.Context, p domain.Principal, id uint, in ports.UserInput) (*domain.User, error) {
			if in.Password != "" || !in.Active {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: id, Username: in.Username, Email: in.Email, Active: in.Active, ClientID: 7}, nil
		},
	}
	h := NewUserHandler(users)

	c, rec := newTestContext(t, http.MethodPut, "/api/users/5",
		`{"username":"alice","email":"alice@example.com","active":true}`, &clientPrincipal)
	withID(c, "5")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_ListAll_UsesGlobalListing(t *testing.T) {
	called := false
	users := &stubUserService{
		listAllFn: func(ctx context.Context, in ports.ListInput) (*ports.ListResult[*domain.User], error) {
			called = true
			return freshPage[*domain.User]("/api/admin/users"), nil
		},
	}
	h := NewUserHandler(users)

	c, rec := newTestContext(t, http.MethodGet, "/api/admin/users", "", &adminPrincipal)
	if err := h.ListAll(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected ListAll to answer 200, got called=%v code=%d", called, rec.Code)
	}
}

func TestUserHandler_Delete_NotFound(t *testing.T) {
	users := &stubUserService{
		deleteFn: func(ctx context.Context, p domain.Principal, id uint) error {
			return domain.ErrUserNotFound
		},
	}
	h := NewUserHandler(users)

	c, _ := newTestContext(t, http.MethodDelete, "/api/users/99", "", &clientPrincipal)
	withID(c, "99")
	if err := h.Delete(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
