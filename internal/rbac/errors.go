package rbac

import "errors"

var (
	ErrDenied      = errors.New("authorization denied")
	ErrInvalidRole = errors.New("invalid role")
)

const (
	errConfigRolesEmpty                   = "rbac config: roles must not be empty"
	errConfigResourcesEmpty               = "rbac config: resources must not be empty"
	errConfigActionsEmpty                 = "rbac config: actions must not be empty"
	errConfigCapabilitiesEmpty            = "rbac config: capabilities must not be empty"
	errConfigNameEmptyFmt                 = "rbac config: %s must not be empty"
	errConfigDuplicateFmt                 = "rbac config: duplicate %s: %s"
	errConfigDuplicateRoleLevelFmt        = "rbac config: duplicate role level %d (roles %s and %s)"
	errConfigCapabilityUnknownRoleFmt     = "rbac config: capability references unknown role: %s"
	errConfigCapabilityUnknownResourceFmt = "rbac config: capability for role %s references unknown resource: %s"
	errConfigCapabilityUnknownActionFmt   = "rbac config: capability for role %s on resource %s references unknown action: %s"
	errMustNewPanicFmt                    = "rbac.MustNew: %v"
	errDeniedUserRoleEmpty                = "role is empty"
	errDeniedMinRoleRequiredFmt           = "requires minimum role '%s', but actor has role '%s'"
	errDeniedRoleCannotPerformActionFmt   = "role '%s' cannot perform action '%s' on resource '%s'"
)
