package models

import (
	"time"

	"github.com/kosthub/backend/internal/domain/identity"
	"github.com/kosthub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AccountModel is the persistence model for the Account domain entity.
type AccountModel struct {
	AggregateModel
	Email             string                 `gorm:"type:varchar(200);not null;uniqueIndex"`
	FullName          string                 `gorm:"type:varchar(200)"`
	Phone             string                 `gorm:"type:varchar(50)"`
	PasswordHash      string                 `gorm:"type:varchar(255);not null"`
	RoleClaim         string                 `gorm:"type:varchar(50)"`
	Status            identity.AccountStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	LastLoginAt       *time.Time             `gorm:"index"`
	LastLoginIP       string                 `gorm:"type:varchar(45)"`
	FailedAttempts    int                    `gorm:"not null;default:0"`
	LockedUntil       *time.Time
	PasswordChangedAt *time.Time
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account entity.
func (m *AccountModel) ToDomain() *identity.Account {
	account := &identity.Account{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Email:             m.Email,
		FullName:          m.FullName,
		Phone:             m.Phone,
		PasswordHash:      m.PasswordHash,
		RoleClaim:         m.RoleClaim,
		Status:            m.Status,
		LastLoginAt:       m.LastLoginAt,
		LastLoginIP:       m.LastLoginIP,
		FailedAttempts:    m.FailedAttempts,
		LockedUntil:       m.LockedUntil,
		PasswordChangedAt: m.PasswordChangedAt,
	}
	return account
}

// FromDomain populates the persistence model from a domain Account entity.
func (m *AccountModel) FromDomain(a *identity.Account) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.Email = a.Email
	m.FullName = a.FullName
	m.Phone = a.Phone
	m.PasswordHash = a.PasswordHash
	m.RoleClaim = a.RoleClaim
	m.Status = a.Status
	m.LastLoginAt = a.LastLoginAt
	m.LastLoginIP = a.LastLoginIP
	m.FailedAttempts = a.FailedAttempts
	m.LockedUntil = a.LockedUntil
	m.PasswordChangedAt = a.PasswordChangedAt
}

// AccountModelFromDomain creates a new persistence model from a domain Account entity.
func AccountModelFromDomain(a *identity.Account) *AccountModel {
	m := &AccountModel{}
	m.FromDomain(a)
	return m
}

// StaffMemberModel is the persistence model for the StaffMember domain entity.
// The account id is unique: an account holds at most one registry entry.
type StaffMemberModel struct {
	AggregateModel
	AccountID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Role        string    `gorm:"type:varchar(50);not null"`
	DisplayName string    `gorm:"type:varchar(200)"`
	Active      bool      `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (StaffMemberModel) TableName() string {
	return "staff_members"
}

// ToDomain converts the persistence model to a domain StaffMember entity.
func (m *StaffMemberModel) ToDomain() *identity.StaffMember {
	return &identity.StaffMember{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		AccountID:   m.AccountID,
		Role:        m.Role,
		DisplayName: m.DisplayName,
		Active:      m.Active,
	}
}

// FromDomain populates the persistence model from a domain StaffMember entity.
func (m *StaffMemberModel) FromDomain(s *identity.StaffMember) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.AccountID = s.AccountID
	m.Role = s.Role
	m.DisplayName = s.DisplayName
	m.Active = s.Active
}

// StaffMemberModelFromDomain creates a new persistence model from a domain StaffMember entity.
func StaffMemberModelFromDomain(s *identity.StaffMember) *StaffMemberModel {
	m := &StaffMemberModel{}
	m.FromDomain(s)
	return m
}
