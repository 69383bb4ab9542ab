package sqlstore

import (
	"time"

	"github.com/bilemo/bilemo-api/internal/core/domain"
)

type clientModel struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"size:255;not null"`
	Email        string    `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string    `gorm:"size:255;not null"`
	Role         string    `gorm:"size:32;not null;index"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (clientModel) TableName() string { return "clients" }

type mobileModel struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:255;not null;uniqueIndex"`
	PriceCents  int64     `gorm:"not null"`
	Description string    `gorm:"type:text;not null;default:''"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (mobileModel) TableName() string { return "mobiles" }

type userModel struct {
	ID           uint         `gorm:"primaryKey"`
	Username     string       `gorm:"size:255;not null"`
	Email        string       `gorm:"size:255;not null;uniqueIndex:idx_users_client_email,priority:2"`
	PasswordHash string       `gorm:"size:255;not null"`
	Active       bool         `gorm:"not null;default:false"`
	Role         string       `gorm:"size:32;not null"`
	ClientID     uint         `gorm:"not null;index;uniqueIndex:idx_users_client_email,priority:1"`
	Client       *clientModel `gorm:"constraint:OnDelete:RESTRICT"`
	CreatedAt    time.Time    `gorm:"not null"`
	UpdatedAt    time.Time    `gorm:"not null"`
}

func (userModel) TableName() string { return "users" }

// tableActivityModel is written by database triggers only.
type tableActivityModel struct {
	Name        string    `gorm:"column:table_name;primaryKey;size:64"`
	LastWriteAt time.Time `gorm:"not null"`
	Revision    int64     `gorm:"not null;default:0"`
}

func (tableActivityModel) TableName() string { return "table_activities" }

func clientFromDomain(c *domain.Client) clientModel {
	return clientModel{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Role:         c.Role,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (m *clientModel) toDomain() *domain.Client {
	return &domain.Client{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

func mobileFromDomain(m *domain.Mobile) mobileModel {
	return mobileModel{
		ID:          m.ID,
		Name:        m.Name,
		PriceCents:  int64(m.Price),
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (m *mobileModel) toDomain() *domain.Mobile {
	return &domain.Mobile{
		ID:          m.ID,
		Name:        m.Name,
		Price:       domain.Price(m.PriceCents),
		Description: m.Description,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func userFromDomain(u *domain.User) userModel {
	return userModel{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Active:       u.Active,
		Role:         u.Role,
		ClientID:     u.ClientID,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (m *userModel) toDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Active:       m.Active,
		Role:         m.Role,
		ClientID:     m.ClientID,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}
