package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kosthub/backend/internal/domain/identity"
	"github.com/kosthub/backend/internal/domain/shared"
)

// StaffService manages the back-office staff registry. Registry records
// are the authoritative role source: adding one promotes an account,
// removing or deactivating one reverts the account to its profile claim
// on the next session resolution.
type StaffService struct {
	staffRepo   identity.StaffMemberRepository
	accountRepo identity.AccountRepository
	events      shared.EventPublisher
	logger      *zap.Logger
}

// NewStaffService creates a new staff registry service
func NewStaffService(
	staffRepo identity.StaffMemberRepository,
	accountRepo identity.AccountRepository,
	events shared.EventPublisher,
	logger *zap.Logger,
) *StaffService {
	return &StaffService{
		staffRepo:   staffRepo,
		accountRepo: accountRepo,
		events:      events,
		logger:      logger,
	}
}

// AddStaffMemberInput contains input for adding a staff registry record
type AddStaffMemberInput struct {
	AccountID   uuid.UUID
	Role        string
	DisplayName string
}

// UpdateStaffMemberInput contains input for updating a staff registry record
type UpdateStaffMemberInput struct {
	StaffID     uuid.UUID
	Role        *string
	DisplayName *string
	Active      *bool
}

// StaffMemberDTO represents a staff registry record
type StaffMemberDTO struct {
	ID          uuid.UUID `json:"id"`
	AccountID   uuid.UUID `json:"account_id"`
	Role        string    `json:"role"`
	DisplayName string    `json:"display_name"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StaffListResult represents a paginated staff list
type StaffListResult struct {
	Staff      []StaffMemberDTO `json:"staff"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// Add creates a staff registry record for an existing account
func (s *StaffService) Add(ctx context.Context, input AddStaffMemberInput) (*StaffMemberDTO, error) {
	s.logger.Info("Adding staff member",
		zap.String("account_id", input.AccountID.String()),
		zap.String("role", input.Role))

	account, err := s.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("ACCOUNT_NOT_FOUND", "Account not found")
		}
		s.logger.Error("Failed to find account", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find account")
	}

	exists, err := s.staffRepo.ExistsByAccountID(ctx, input.AccountID)
	if err != nil {
		s.logger.Error("Failed to check staff existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check staff registry")
	}
	if exists {
		return nil, shared.NewDomainError("STAFF_EXISTS", "Account already has a staff registry record")
	}

	displayName := input.DisplayName
	if displayName == "" {
		displayName = account.DisplayName()
	}

	staff, err := identity.NewStaffMember(input.AccountID, identity.Role(input.Role), displayName)
	if err != nil {
		return nil, err
	}

	if err := s.staffRepo.Save(ctx, staff); err != nil {
		s.logger.Error("Failed to save staff member", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save staff member")
	}
	s.publishEvents(ctx, staff)

	s.logger.Info("Staff member added",
		zap.String("staff_id", staff.ID.String()),
		zap.String("account_id", input.AccountID.String()),
		zap.String("role", staff.Role))

	return toStaffMemberDTO(staff), nil
}

// GetByID retrieves a staff registry record by ID
func (s *StaffService) GetByID(ctx context.Context, id uuid.UUID) (*StaffMemberDTO, error) {
	staff, err := s.staffRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("STAFF_NOT_FOUND", "Staff member not found")
		}
		s.logger.Error("Failed to find staff member", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find staff member")
	}

	return toStaffMemberDTO(staff), nil
}

// List retrieves a paginated list of staff registry records
func (s *StaffService) List(ctx context.Context, filter shared.Filter) (*StaffListResult, error) {
	staff, err := s.staffRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list staff", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list staff")
	}

	total, err := s.staffRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count staff", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count staff")
	}

	pageSize := filter.Limit()
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	staffDTOs := make([]StaffMemberDTO, len(staff))
	for i := range staff {
		staffDTOs[i] = *toStaffMemberDTO(&staff[i])
	}

	return &StaffListResult{
		Staff:      staffDTOs,
		Total:      total,
		Page:       filter.Page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Update updates a staff registry record
func (s *StaffService) Update(ctx context.Context, input UpdateStaffMemberInput) (*StaffMemberDTO, error) {
	staff, err := s.staffRepo.FindByID(ctx, input.StaffID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("STAFF_NOT_FOUND", "Staff member not found")
		}
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find staff member")
	}

	if input.Role != nil && *input.Role != staff.Role {
		if err := staff.ChangeRole(identity.Role(*input.Role)); err != nil {
			return nil, err
		}
	}

	if input.DisplayName != nil {
		if err := staff.Rename(*input.DisplayName); err != nil {
			return nil, err
		}
	}

	if input.Active != nil && *input.Active != staff.Active {
		if *input.Active {
			if err := staff.Reactivate(); err != nil {
				return nil, err
			}
		} else {
			if err := staff.Deactivate(); err != nil {
				return nil, err
			}
		}
	}

	if err := s.staffRepo.Save(ctx, staff); err != nil {
		s.logger.Error("Failed to update staff member", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update staff member")
	}
	s.publishEvents(ctx, staff)

	s.logger.Info("Staff member updated", zap.String("staff_id", input.StaffID.String()))

	return toStaffMemberDTO(staff), nil
}

// Remove deletes a staff registry record. The account keeps existing;
// its role reverts to the profile claim on the next resolution.
func (s *StaffService) Remove(ctx context.Context, id uuid.UUID) error {
	staff, err := s.staffRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("STAFF_NOT_FOUND", "Staff member not found")
		}
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to find staff member")
	}

	if err := s.staffRepo.Delete(ctx, staff.ID); err != nil {
		s.logger.Error("Failed to delete staff member", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete staff member")
	}

	if s.events != nil {
		_ = s.events.Publish(ctx, identity.NewStaffMemberRemovedEvent(staff))
	}

	s.logger.Info("Staff member removed",
		zap.String("staff_id", id.String()),
		zap.String("account_id", staff.AccountID.String()))

	return nil
}

// Count returns the total number of staff registry records
func (s *StaffService) Count(ctx context.Context) (int64, error) {
	return s.staffRepo.Count(ctx, shared.Filter{})
}

func (s *StaffService) publishEvents(ctx context.Context, staff *identity.StaffMember) {
	if s.events == nil {
		return
	}
	events := staff.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.events.Publish(ctx, events...)
	staff.ClearDomainEvents()
}

// toStaffMemberDTO converts a domain StaffMember to StaffMemberDTO
func toStaffMemberDTO(staff *identity.StaffMember) *StaffMemberDTO {
	return &StaffMemberDTO{
		ID:          staff.ID,
		AccountID:   staff.AccountID,
		Role:        staff.Role,
		DisplayName: staff.DisplayName,
		Active:      staff.Active,
		CreatedAt:   staff.CreatedAt,
		UpdatedAt:   staff.UpdatedAt,
	}
}
