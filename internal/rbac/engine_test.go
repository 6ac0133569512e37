package rbac_test

import (
	"errors"
	"testing"

	"library-cms/internal/rbac"
	"library-cms/internal/rbac/presets"
)

func newChecker(t *testing.T) *rbac.Checker {
	t.Helper()
	rc, err := rbac.New(presets.LibraryCMS())
	if err != nil {
		t.Fatalf("failed to create checker: %v", err)
	}
	return rc
}

// ============================================================================
// Role Hierarchy Tests
// ============================================================================

func TestIsRoleElevated(t *testing.T) {
	checker := newChecker(t)

	tests := []struct {
		name     string
		role1    rbac.Role
		role2    rbac.Role
		expected bool
	}{
		{"SuperAdmin >= SuperAdmin", presets.RoleSuperAdmin, presets.RoleSuperAdmin, true},
		{"SuperAdmin >= LibraryAdmin", presets.RoleSuperAdmin, presets.RoleLibraryAdmin, true},
		{"SuperAdmin >= User", presets.RoleSuperAdmin, presets.RoleUser, true},
		{"LibraryAdmin < SuperAdmin", presets.RoleLibraryAdmin, presets.RoleSuperAdmin, false},
		{"LibraryAdmin >= User", presets.RoleLibraryAdmin, presets.RoleUser, true},
		{"User < LibraryAdmin", presets.RoleUser, presets.RoleLibraryAdmin, false},
		{"Invalid role1", rbac.Role("invalid"), presets.RoleUser, false},
		{"Invalid role2", presets.RoleSuperAdmin, rbac.Role("invalid"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := checker.IsRoleElevated(tt.role1, tt.role2)
			if result != tt.expected {
				t.Errorf("IsRoleElevated(%s, %s) = %v, expected %v", tt.role1, tt.role2, result, tt.expected)
			}
		})
	}
}

func TestValidateRole(t *testing.T) {
	checker := newChecker(t)

	tests := []struct {
		name      string
		role      string
		expected  rbac.Role
		shouldErr bool
	}{
		{"Valid super admin", "super_admin", presets.RoleSuperAdmin, false},
		{"Valid library admin", "library_admin", presets.RoleLibraryAdmin, false},
		{"Valid user", "user", presets.RoleUser, false},
		{"Invalid role", "admin", "", true},
		{"Empty role", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := checker.ValidateRole(tt.role)
			if tt.shouldErr {
				if !errors.Is(err, rbac.ErrInvalidRole) {
					t.Errorf("ValidateRole(%s) error should wrap ErrInvalidRole, got: %v", tt.role, err)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidateRole(%s) unexpected error: %v", tt.role, err)
			}
			if result != tt.expected {
				t.Errorf("ValidateRole(%s) = %s, expected %s", tt.role, result, tt.expected)
			}
		})
	}
}

// ============================================================================
// Capability Tests
// ============================================================================

func TestAuthorize(t *testing.T) {
	checker := newChecker(t)

	tests := []struct {
		name     string
		role     rbac.Role
		resource rbac.Resource
		action   rbac.Action
		allowed  bool
	}{
		{"Super admin writes stories", presets.RoleSuperAdmin, presets.ResourceStory, presets.ActionWrite, true},
		{"Super admin creates libraries", presets.RoleSuperAdmin, presets.ResourceLibrary, presets.ActionCreate, true},
		{"Super admin manages backups", presets.RoleSuperAdmin, presets.ResourceBackup, presets.ActionManage, true},
		{"Super admin cannot reply", presets.RoleSuperAdmin, presets.ResourceMessage, presets.ActionReply, false},
		{"Library admin writes events", presets.RoleLibraryAdmin, presets.ResourceEvent, presets.ActionWrite, true},
		{"Library admin deletes events", presets.RoleLibraryAdmin, presets.ResourceEvent, presets.ActionDelete, true},
		{"Library admin replies", presets.RoleLibraryAdmin, presets.ResourceMessage, presets.ActionReply, true},
		{"Library admin cannot create libraries", presets.RoleLibraryAdmin, presets.ResourceLibrary, presets.ActionCreate, false},
		{"Library admin cannot approve", presets.RoleLibraryAdmin, presets.ResourceStory, presets.ActionApprove, false},
		{"Library admin cannot toggle maintenance", presets.RoleLibraryAdmin, presets.ResourceMaintenance, presets.ActionManage, false},
		{"User reads media", presets.RoleUser, presets.ResourceMedia, presets.ActionRead, true},
		{"User cannot write media", presets.RoleUser, presets.ResourceMedia, presets.ActionWrite, false},
		{"User cannot read messages", presets.RoleUser, presets.ResourceMessage, presets.ActionRead, false},
		{"Unknown role", rbac.Role("guest"), presets.ResourceStory, presets.ActionRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checker.Authorize(tt.role, tt.resource, tt.action)
			if tt.allowed && err != nil {
				t.Errorf("Authorize(%s, %s, %s) unexpected error: %v", tt.role, tt.resource, tt.action, err)
			}
			if !tt.allowed && !errors.Is(err, rbac.ErrDenied) {
				t.Errorf("Authorize(%s, %s, %s) should wrap ErrDenied, got: %v", tt.role, tt.resource, tt.action, err)
			}
		})
	}
}

func TestAuthorizeEmptyRole(t *testing.T) {
	checker := newChecker(t)
	if err := checker.Authorize("", presets.ResourceStory, presets.ActionRead); !errors.Is(err, rbac.ErrDenied) {
		t.Fatalf("empty role should be denied, got: %v", err)
	}
}

func TestRequireRole(t *testing.T) {
	checker := newChecker(t)

	if err := checker.RequireRole(presets.RoleSuperAdmin, presets.RoleLibraryAdmin); err != nil {
		t.Errorf("super_admin should satisfy library_admin minimum: %v", err)
	}
	if err := checker.RequireRole(presets.RoleUser, presets.RoleLibraryAdmin); !errors.Is(err, rbac.ErrDenied) {
		t.Errorf("user should not satisfy library_admin minimum, got: %v", err)
	}
}

func TestMustNewPanicsOnInvalidConfig(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustNew should panic on invalid config")
		}
	}()
	rbac.MustNew(rbac.Config{})
}
