package auth

// CheckPermissions decides allow/deny for a role against a required
// permission list. With requireAll every required name must be granted; an
// empty list is vacuously allowed. Without requireAll at least one required
// name must be granted; an empty list always denies, since "require any of
// nothing" can never be satisfied on a gated route.
func CheckPermissions(role Role, required []string, requireAll bool) error {
	granted := make(map[string]struct{}, len(role.Permissions))
	for _, p := range role.Permissions {
		granted[p.Name] = struct{}{}
	}
	if requireAll {
		for _, name := range required {
			if _, ok := granted[name]; !ok {
				return Forbidden("permission denied")
			}
		}
		return nil
	}
	for _, name := range required {
		if _, ok := granted[name]; ok {
			return nil
		}
	}
	return Forbidden("permission denied")
}
