package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"

	"skladr.dev/internal/auth"
	"skladr.dev/internal/obs"
)

// ReadyProbe pings the backing stores for /readyz.
type ReadyProbe struct {
	DB    *sql.DB
	Redis *redis.Client
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB != nil {
		if err := rp.DB.PingContext(ctx); err != nil {
			return err
		}
	}
	if rp.Redis != nil {
		if err := rp.Redis.Ping(ctx).Err(); err != nil {
			return err
		}
	}
	return nil
}

// API is the HTTP layer over the auth services.
type API struct {
	mux        *http.ServeMux
	sessions   *auth.Sessions
	users      *auth.Users
	perms      *auth.Permissions
	readyProbe ReadyProbe
	refreshTTL time.Duration
	version    string
}

func New(sessions *auth.Sessions, users *auth.Users, perms *auth.Permissions, rp ReadyProbe, refreshTTL time.Duration, version string) *API {
	a := &API{
		mux:        http.NewServeMux(),
		sessions:   sessions,
		users:      users,
		perms:      perms,
		readyProbe: rp,
		refreshTTL: refreshTTL,
		version:    version,
	}

	// health/ready/info
	a.mux.HandleFunc("/healthz", a.Healthz)
	a.mux.HandleFunc("/readyz", a.Ready)
	a.mux.HandleFunc("/v1/info", a.Info)

	// Prometheus metrics
	a.mux.Handle("/metrics", obs.Handler())

	// session lifecycle
	a.mux.HandleFunc("/auth/login", a.handleLogin)
	a.mux.HandleFunc("/auth/register", a.handleRegister)
	a.mux.HandleFunc("/auth/refresh", a.handleRefresh)
	a.mux.HandleFunc("/auth/logout", a.handleLogout)

	// user management; exact paths must be registered before the prefix
	a.mux.HandleFunc("/users", a.handleUsers)
	a.mux.HandleFunc("/users/me", a.handleMe)
	a.mux.HandleFunc("/users/assign-role", a.handleAssignRole)
	a.mux.HandleFunc("/users/", a.handleUserByID)

	// role/permission catalog
	a.mux.HandleFunc("/roles", a.handleRoles)
	a.mux.HandleFunc("/permissions", a.handlePermissions)
	a.mux.HandleFunc("/permissions/", a.handleRolePermissions)

	// gated stub routers
	a.mux.HandleFunc("/products", a.handleProducts)
	a.mux.HandleFunc("/products/", a.handleProducts)
	a.mux.HandleFunc("/supplies", a.handleSupplies)
	a.mux.HandleFunc("/supplies/", a.handleSupplies)

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return a
}

// Handler wraps the mux with the full middleware chain.
func (a *API) Handler() http.Handler {
	h := http.Handler(a.mux)
	h = a.withAuth(h)
	h = MaxBodyBytes(h, 1<<20)
	h = SecurityHeaders(h)
	h = CORS(h)
	h = LoggingJSON(h)
	h = RequestID(h)
	return obs.Instrument(h)
}

// --- service endpoints ---

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "skladr-auth",
		"version": a.version,
	})
}

func (a *API) Ready(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}

func (a *API) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "skladr-auth",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": a.version,
	})
}
