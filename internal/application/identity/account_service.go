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

// AccountService handles back-office account administration
type AccountService struct {
	accountRepo identity.AccountRepository
	events      shared.EventPublisher
	logger      *zap.Logger
}

// NewAccountService creates a new account administration service
func NewAccountService(
	accountRepo identity.AccountRepository,
	events shared.EventPublisher,
	logger *zap.Logger,
) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		events:      events,
		logger:      logger,
	}
}

// AccountDTO represents account data for administration views
type AccountDTO struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Status      string     `json:"status"`
	RoleClaim   string     `json:"role_claim,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// AccountListResult represents a paginated account list
type AccountListResult struct {
	Accounts   []AccountDTO `json:"accounts"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalPages int          `json:"total_pages"`
}

// GetByID retrieves an account by ID
func (s *AccountService) GetByID(ctx context.Context, id uuid.UUID) (*AccountDTO, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("ACCOUNT_NOT_FOUND", "Account not found")
		}
		s.logger.Error("Failed to find account", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find account")
	}

	return toAccountDTO(account), nil
}

// List retrieves a paginated list of accounts
func (s *AccountService) List(ctx context.Context, filter shared.Filter) (*AccountListResult, error) {
	accounts, err := s.accountRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list accounts", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list accounts")
	}

	total, err := s.accountRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count accounts", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count accounts")
	}

	pageSize := filter.Limit()
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	accountDTOs := make([]AccountDTO, len(accounts))
	for i := range accounts {
		accountDTOs[i] = *toAccountDTO(&accounts[i])
	}

	return &AccountListResult{
		Accounts:   accountDTOs,
		Total:      total,
		Page:       filter.Page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Deactivate deactivates an account. The account can no longer log in;
// an existing session resolves to unauthenticated on its next navigation.
func (s *AccountService) Deactivate(ctx context.Context, id uuid.UUID) (*AccountDTO, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("ACCOUNT_NOT_FOUND", "Account not found")
		}
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find account")
	}

	if err := account.Deactivate(); err != nil {
		return nil, err
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		s.logger.Error("Failed to deactivate account", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to deactivate account")
	}
	s.publishEvents(ctx, account)

	s.logger.Info("Account deactivated", zap.String("account_id", id.String()))

	return toAccountDTO(account), nil
}

// Reactivate re-activates a deactivated account
func (s *AccountService) Reactivate(ctx context.Context, id uuid.UUID) (*AccountDTO, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("ACCOUNT_NOT_FOUND", "Account not found")
		}
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find account")
	}

	if err := account.Activate(); err != nil {
		return nil, err
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		s.logger.Error("Failed to reactivate account", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to reactivate account")
	}
	s.publishEvents(ctx, account)

	s.logger.Info("Account reactivated", zap.String("account_id", id.String()))

	return toAccountDTO(account), nil
}

// Unlock clears a login-failure lock before its window expires
func (s *AccountService) Unlock(ctx context.Context, id uuid.UUID) (*AccountDTO, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("ACCOUNT_NOT_FOUND", "Account not found")
		}
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find account")
	}

	if err := account.Unlock(); err != nil {
		return nil, err
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		s.logger.Error("Failed to unlock account", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to unlock account")
	}
	s.publishEvents(ctx, account)

	s.logger.Info("Account unlocked", zap.String("account_id", id.String()))

	return toAccountDTO(account), nil
}

// Count returns the total number of accounts
func (s *AccountService) Count(ctx context.Context) (int64, error) {
	return s.accountRepo.Count(ctx, shared.Filter{})
}

func (s *AccountService) publishEvents(ctx context.Context, account *identity.Account) {
	if s.events == nil {
		return
	}
	events := account.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.events.Publish(ctx, events...)
	account.ClearDomainEvents()
}

// toAccountDTO converts a domain Account to AccountDTO
func toAccountDTO(account *identity.Account) *AccountDTO {
	return &AccountDTO{
		ID:          account.ID,
		Email:       account.Email,
		FullName:    account.FullName,
		Phone:       account.Phone,
		Status:      string(account.Status),
		RoleClaim:   account.RoleClaim,
		LastLoginAt: account.LastLoginAt,
		CreatedAt:   account.CreatedAt,
		UpdatedAt:   account.UpdatedAt,
	}
}
