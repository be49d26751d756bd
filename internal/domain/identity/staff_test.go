package identity

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStaffMember(t *testing.T) {
	t.Run("creates staff member with valid inputs", func(t *testing.T) {
		accountID := uuid.New()
		staff, err := NewStaffMember(accountID, RoleAdmin, "Budi Santoso")
		require.NoError(t, err)
		require.NotNil(t, staff)

		assert.Equal(t, accountID, staff.AccountID)
		assert.Equal(t, "admin", staff.Role)
		assert.Equal(t, "Budi Santoso", staff.DisplayName)
		assert.True(t, staff.Active)
		assert.Equal(t, 1, staff.GetVersion())
	})

	t.Run("publishes StaffMemberAdded event", func(t *testing.T) {
		staff, err := NewStaffMember(uuid.New(), RoleSuperadmin, "Platform Ops")
		require.NoError(t, err)

		events := staff.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeStaffMemberAdded, events[0].EventType())
	})

	t.Run("fails with nil account ID", func(t *testing.T) {
		_, err := NewStaffMember(uuid.Nil, RoleAdmin, "Budi Santoso")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Account ID cannot be empty")
	})

	t.Run("fails with invalid role", func(t *testing.T) {
		_, err := NewStaffMember(uuid.New(), Role("moderator"), "Budi Santoso")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be one of")
	})

	t.Run("fails with empty display name", func(t *testing.T) {
		_, err := NewStaffMember(uuid.New(), RoleAdmin, "   ")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Display name cannot be empty")
	})

	t.Run("fails with overlong display name", func(t *testing.T) {
		_, err := NewStaffMember(uuid.New(), RoleAdmin, strings.Repeat("a", 201))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed 200 characters")
	})
}

func TestStaffMemberChangeRole(t *testing.T) {
	t.Run("changes role and records old role", func(t *testing.T) {
		staff, err := NewStaffMember(uuid.New(), RoleAdmin, "Budi Santoso")
		require.NoError(t, err)
		staff.ClearDomainEvents()

		require.NoError(t, staff.ChangeRole(RoleSuperadmin))
		assert.Equal(t, "superadmin", staff.Role)
		assert.Equal(t, 2, staff.GetVersion())

		events := staff.GetDomainEvents()
		require.Len(t, events, 1)
		event, ok := events[0].(*StaffMemberRoleChangedEvent)
		require.True(t, ok)
		assert.Equal(t, "admin", event.OldRole)
		assert.Equal(t, "superadmin", event.NewRole)
	})

	t.Run("rejects unchanged role", func(t *testing.T) {
		staff, err := NewStaffMember(uuid.New(), RoleAdmin, "Budi Santoso")
		require.NoError(t, err)

		err = staff.ChangeRole(RoleAdmin)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already has this role")
	})

	t.Run("rejects invalid role", func(t *testing.T) {
		staff, err := NewStaffMember(uuid.New(), RoleAdmin, "Budi Santoso")
		require.NoError(t, err)

		err = staff.ChangeRole(Role("manager"))
		require.Error(t, err)
	})
}

func TestStaffMemberRename(t *testing.T) {
	staff, err := NewStaffMember(uuid.New(), RoleAdmin, "Budi Santoso")
	require.NoError(t, err)

	require.NoError(t, staff.Rename("  Budi S.  "))
	assert.Equal(t, "Budi S.", staff.DisplayName)

	err = staff.Rename("")
	require.Error(t, err)
}

func TestStaffMemberDeactivate(t *testing.T) {
	t.Run("deactivates active member", func(t *testing.T) {
		staff, err := NewStaffMember(uuid.New(), RoleAdmin, "Budi Santoso")
		require.NoError(t, err)
		staff.ClearDomainEvents()

		require.NoError(t, staff.Deactivate())
		assert.False(t, staff.Active)

		events := staff.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeStaffMemberDeactivated, events[0].EventType())
	})

	t.Run("rejects double deactivation", func(t *testing.T) {
		staff, err := NewStaffMember(uuid.New(), RoleAdmin, "Budi Santoso")
		require.NoError(t, err)
		require.NoError(t, staff.Deactivate())

		err = staff.Deactivate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already inactive")
	})

	t.Run("reactivate restores the member", func(t *testing.T) {
		staff, err := NewStaffMember(uuid.New(), RoleAdmin, "Budi Santoso")
		require.NoError(t, err)
		require.NoError(t, staff.Deactivate())

		require.NoError(t, staff.Reactivate())
		assert.True(t, staff.Active)

		err = staff.Reactivate()
		require.Error(t, err)
	})
}

func TestStaffMemberEffectiveRole(t *testing.T) {
	t.Run("parses stored role", func(t *testing.T) {
		staff, err := NewStaffMember(uuid.New(), RoleSuperadmin, "Platform Ops")
		require.NoError(t, err)

		role, err := staff.EffectiveRole()
		require.NoError(t, err)
		assert.Equal(t, RoleSuperadmin, role)
	})

	t.Run("corrupt stored role fails strictly", func(t *testing.T) {
		staff, err := NewStaffMember(uuid.New(), RoleAdmin, "Budi Santoso")
		require.NoError(t, err)

		// Simulates registry drift from a manual edit.
		staff.Role = "moderator"

		_, err = staff.EffectiveRole()
		require.Error(t, err)
	})
}
