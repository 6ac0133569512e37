package presets

import "library-cms/internal/rbac"

const (
	RoleUser         rbac.Role = "user"
	RoleLibraryAdmin rbac.Role = "library_admin"
	RoleSuperAdmin   rbac.Role = "super_admin"

	ResourceLibrary     rbac.Resource = "library"
	ResourceStory       rbac.Resource = "story"
	ResourceEvent       rbac.Resource = "event"
	ResourceMedia       rbac.Resource = "media"
	ResourceMessage     rbac.Resource = "message"
	ResourceDashboard   rbac.Resource = "dashboard"
	ResourceMaintenance rbac.Resource = "maintenance"
	ResourceBackup      rbac.Resource = "backup"

	ActionRead    rbac.Action = "read"
	ActionCreate  rbac.Action = "create"
	ActionWrite   rbac.Action = "write"
	ActionDelete  rbac.Action = "delete"
	ActionApprove rbac.Action = "approve"
	ActionReply   rbac.Action = "reply"
	ActionManage  rbac.Action = "manage"
)

// LibraryCMS returns the RBAC configuration for the library content platform.
//
// Role hierarchy:
//
//	super_admin   (3) every library, approval, maintenance and backups
//	library_admin (2) content of their own library, replies to contact messages
//	user          (1) read public content
//
// Replying to contact messages is granted to library_admin only.
func LibraryCMS() rbac.Config {
	return rbac.Config{
		Roles: []rbac.RoleDefinition{
			{Name: RoleSuperAdmin, Level: 3},
			{Name: RoleLibraryAdmin, Level: 2},
			{Name: RoleUser, Level: 1},
		},
		Resources: []rbac.Resource{
			ResourceLibrary,
			ResourceStory,
			ResourceEvent,
			ResourceMedia,
			ResourceMessage,
			ResourceDashboard,
			ResourceMaintenance,
			ResourceBackup,
		},
		Actions: []rbac.Action{
			ActionRead,
			ActionCreate,
			ActionWrite,
			ActionDelete,
			ActionApprove,
			ActionReply,
			ActionManage,
		},
		Capabilities: map[rbac.Role]map[rbac.Resource][]rbac.Action{
			RoleSuperAdmin: {
				ResourceLibrary:     {ActionRead, ActionCreate, ActionWrite, ActionApprove},
				ResourceStory:       {ActionRead, ActionCreate, ActionWrite, ActionApprove},
				ResourceEvent:       {ActionRead, ActionCreate, ActionWrite, ActionDelete, ActionApprove},
				ResourceMedia:       {ActionRead, ActionCreate, ActionWrite, ActionApprove},
				ResourceMessage:     {ActionRead, ActionWrite},
				ResourceDashboard:   {ActionRead},
				ResourceMaintenance: {ActionRead, ActionManage},
				ResourceBackup:      {ActionManage},
			},
			RoleLibraryAdmin: {
				ResourceLibrary:   {ActionRead, ActionWrite},
				ResourceStory:     {ActionRead, ActionCreate, ActionWrite},
				ResourceEvent:     {ActionRead, ActionCreate, ActionWrite, ActionDelete},
				ResourceMedia:     {ActionRead, ActionCreate, ActionWrite},
				ResourceMessage:   {ActionRead, ActionWrite, ActionReply},
				ResourceDashboard: {ActionRead},
			},
			RoleUser: {
				ResourceLibrary: {ActionRead},
				ResourceStory:   {ActionRead},
				ResourceEvent:   {ActionRead},
				ResourceMedia:   {ActionRead},
			},
		},
	}
}
