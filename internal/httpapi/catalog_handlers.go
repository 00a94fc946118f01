package httpapi

import (
	"net/http"
	"strings"

	"skladr.dev/internal/auth"
)

// The catalog routers are placeholders for the warehouse services that will
// consume this module. They exist to exercise the permission gate end to end.

func (a *API) handleProducts(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/products"), "/")
	switch r.Method {
	case http.MethodGet:
		if !a.ensurePermissions(w, r, false, auth.PermProductsRead, auth.PermProductsFullAccess) {
			return
		}
		if id == "" {
			writeJSON(w, http.StatusOK, []map[string]string{
				{"product_1": "data"}, {"product_2": "data"}, {"product_3": "data"},
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"product": "data"})
	case http.MethodPost:
		if !a.ensurePermissions(w, r, false, auth.PermProductsCreate, auth.PermProductsFullAccess) {
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"new_product": "data"})
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleSupplies(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/supplies"), "/")
	switch r.Method {
	case http.MethodGet:
		if !a.ensurePermissions(w, r, false, auth.PermSuppliesRead, auth.PermSuppliesFullAccess) {
			return
		}
		if id == "" {
			writeJSON(w, http.StatusOK, []map[string]string{
				{"supply_1": "data"}, {"supply_2": "data"}, {"supply_3": "data"},
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"supply": "data"})
	case http.MethodPost:
		if !a.ensurePermissions(w, r, false, auth.PermSuppliesCreate, auth.PermSuppliesFullAccess) {
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"new_supply": "data"})
	case http.MethodPatch:
		if !a.ensurePermissions(w, r, false, auth.PermSuppliesUpdate, auth.PermSuppliesFullAccess) {
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"partial_updated_supply": "data"})
	case http.MethodPut:
		if !a.ensurePermissions(w, r, false, auth.PermSuppliesUpdate, auth.PermSuppliesFullAccess) {
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"updated_supply": "data"})
	case http.MethodDelete:
		if !a.ensurePermissions(w, r, false, auth.PermSuppliesDelete, auth.PermSuppliesFullAccess) {
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"deleted_supply": "data"})
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete)
	}
}
