package auth

// Permission names follow the resource:action convention used throughout the
// route table. *:full_access grants every action on the resource.
const (
	PermProductsRead       = "products:read"
	PermProductsCreate     = "products:create"
	PermProductsFullAccess = "products:full_access"

	PermSuppliesRead       = "supplies:read"
	PermSuppliesCreate     = "supplies:create"
	PermSuppliesUpdate     = "supplies:update"
	PermSuppliesDelete     = "supplies:delete"
	PermSuppliesFullAccess = "supplies:full_access"

	PermPermissionsRead       = "permissions:read"
	PermPermissionsCreate     = "permissions:create"
	PermPermissionsUpdate     = "permissions:update"
	PermPermissionsDelete     = "permissions:delete"
	PermPermissionsAssign     = "permissions:assign"
	PermPermissionsRevoke     = "permissions:revoke"
	PermPermissionsFullAccess = "permissions:full_access"

	PermUsersRead       = "users:read"
	PermUsersFullAccess = "users:full_access"
)
