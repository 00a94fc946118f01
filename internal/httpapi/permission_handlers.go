package httpapi

import (
	"net/http"
	"strings"

	"skladr.dev/internal/auth"
)

type createPermissionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type deletePermissionRequest struct {
	Name string `json:"name"`
}

type permissionNameRequest struct {
	PermissionName string `json:"permission_name"`
}

func (a *API) handlePermissions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if !a.ensurePermissions(w, r, false, auth.PermPermissionsRead, auth.PermPermissionsFullAccess) {
			return
		}
		perms, err := a.perms.List(r.Context())
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, perms)
	case http.MethodPost:
		if !a.ensurePermissions(w, r, false, auth.PermPermissionsCreate, auth.PermPermissionsFullAccess) {
			return
		}
		var req createPermissionRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		perm, err := a.perms.Create(r.Context(), req.Name, req.Description)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, perm)
	case http.MethodDelete:
		if !a.ensurePermissions(w, r, false, auth.PermPermissionsDelete, auth.PermPermissionsFullAccess) {
			return
		}
		var req deletePermissionRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		perm, err := a.perms.Delete(r.Context(), req.Name)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, perm)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost, http.MethodDelete)
	}
}

// handleRolePermissions routes /permissions/{role} and
// /permissions/{role}/assign|revoke.
func (a *API) handleRolePermissions(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/permissions/"), "/")
	if path == "" {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	parts := strings.Split(path, "/")
	switch len(parts) {
	case 1:
		if r.Method != http.MethodGet {
			methodNotAllowed(w, r, http.MethodGet)
			return
		}
		if !a.ensurePermissions(w, r, false, auth.PermPermissionsRead, auth.PermPermissionsFullAccess) {
			return
		}
		perms, err := a.perms.ListForRole(r.Context(), parts[0])
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, perms)
	case 2:
		switch parts[1] {
		case "assign":
			a.mutateRolePermission(w, r, parts[0], true)
		case "revoke":
			a.mutateRolePermission(w, r, parts[0], false)
		default:
			writeError(w, r, http.StatusNotFound, "resource not found")
		}
	default:
		writeError(w, r, http.StatusNotFound, "resource not found")
	}
}

func (a *API) mutateRolePermission(w http.ResponseWriter, r *http.Request, roleName string, assign bool) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	gate := auth.PermPermissionsAssign
	if !assign {
		gate = auth.PermPermissionsRevoke
	}
	if !a.ensurePermissions(w, r, false, gate, auth.PermPermissionsFullAccess) {
		return
	}
	var req permissionNameRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	var (
		perms []auth.Permission
		err   error
	)
	if assign {
		perms, err = a.perms.Assign(r.Context(), roleName, req.PermissionName)
	} else {
		perms, err = a.perms.Revoke(r.Context(), roleName, req.PermissionName)
	}
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, perms)
}
