package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kosthub/backend/internal/domain/identity"
	"github.com/kosthub/backend/internal/domain/shared"
	"github.com/kosthub/backend/internal/infrastructure/telemetry"
)

// RoleService resolves the effective role for an account from its two
// sources: the staff registry (authoritative, strict) and the profile
// role claim (untrusted, soft). See identity.ResolveEffectiveRole for
// the asymmetry contract.
type RoleService struct {
	accountRepo identity.AccountRepository
	staffRepo   identity.StaffMemberRepository
	logger      *zap.Logger

	businessMetrics *telemetry.BusinessMetrics
}

// NewRoleService creates a new role resolution service
func NewRoleService(
	accountRepo identity.AccountRepository,
	staffRepo identity.StaffMemberRepository,
	logger *zap.Logger,
) *RoleService {
	return &RoleService{
		accountRepo: accountRepo,
		staffRepo:   staffRepo,
		logger:      logger,
	}
}

// SetBusinessMetrics sets the business metrics collector
func (s *RoleService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// ResolveForAccount resolves the effective role for an already-loaded
// account. Returns the role and whether it came from the staff registry.
//
// An inactive staff record does not count as staff: the account falls
// through to its profile claim like any other account.
func (s *RoleService) ResolveForAccount(ctx context.Context, account *identity.Account) (identity.Role, bool, error) {
	staff, err := s.staffRepo.FindActiveByAccountID(ctx, account.ID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("staff registry lookup failed",
			zap.String("account_id", account.ID.String()),
			zap.Error(err))
		return "", false, shared.ErrAuthCheckFailed
	}

	role, err := identity.ResolveEffectiveRole(staff, account.RoleClaim)
	if err != nil {
		s.logger.Error("staff record carries unrecognized role",
			zap.String("account_id", account.ID.String()),
			zap.String("stored_role", staff.Role),
			zap.Error(err))
		return "", false, err
	}

	if s.businessMetrics != nil {
		s.businessMetrics.RecordRoleResolution(ctx, string(role))
	}
	return role, staff != nil, nil
}

// ResolveSnapshot resolves a full identity snapshot for an account ID.
// This is the path session resolution takes on every navigation.
//
// Outcomes:
//   - account missing or deactivated: unauthenticated snapshot, no error
//     (the session outlived the account)
//   - store unreachable: unknown snapshot + AUTH_CHECK_FAILED, recoverable
//   - staff registry corrupt: unknown snapshot + ROLE_DATA_INTEGRITY,
//     fatal for this session
func (s *RoleService) ResolveSnapshot(ctx context.Context, accountID uuid.UUID) (identity.IdentitySnapshot, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return identity.UnauthenticatedSnapshot(), nil
		}
		s.logger.Error("account lookup failed during session resolution",
			zap.String("account_id", accountID.String()),
			zap.Error(err))
		return identity.UnknownSnapshot(), shared.ErrAuthCheckFailed
	}

	if account.IsDeactivated() {
		return identity.UnauthenticatedSnapshot(), nil
	}

	role, isStaff, err := s.ResolveForAccount(ctx, account)
	if err != nil {
		return identity.UnknownSnapshot(), err
	}

	snapshot, err := identity.NewAuthenticatedSnapshot(account.ID, role, isStaff)
	if err != nil {
		return identity.UnknownSnapshot(), err
	}
	return snapshot, nil
}
