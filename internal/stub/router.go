package stub

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/dependencies/clock"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/model"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/storage"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/stub/auth"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/stub/handler"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/stub/middleware"
)

// RouterConfig holds configuration for the stub API router
type RouterConfig struct {
	Logger      *slog.Logger
	AuthService *auth.Service
	Storage     storage.Storage
	Clock       clock.Clock
	UploadDir   string
}

// NewRouter creates the stub API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	characterHandler := handler.NewCharacterHandler(cfg.Storage, cfg.Clock, cfg.UploadDir)
	sessionHandler := handler.NewSessionHandler(cfg.Storage, cfg.Clock)
	dmHandler := handler.NewDMHandler(cfg.Storage, cfg.Clock)
	dmSessionHandler := handler.NewDMSessionHandler(cfg.Storage, cfg.Clock)
	adminHandler := handler.NewAdminHandler(cfg.Storage, cfg.Clock)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	dmMiddleware := middleware.RequireAnyRole(model.RoleDM, model.RoleAdmin)
	adminMiddleware := middleware.RequireAnyRole(model.RoleAdmin)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes (no token required for registering/logging in)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(authMiddleware)
	authProtected.HandleFunc("/me", authHandler.Me).Methods(http.MethodGet)

	// Character routes (all require auth).
	// "/my" must be registered before "/{id}" or mux matches it as an id.
	characters := api.PathPrefix("/characters").Subrouter()
	characters.Use(authMiddleware)
	characters.HandleFunc("/my", characterHandler.Mine).Methods(http.MethodGet)
	characters.HandleFunc("", characterHandler.Create).Methods(http.MethodPost)
	characters.HandleFunc("/{id:[0-9]+}", characterHandler.Get).Methods(http.MethodGet)
	characters.HandleFunc("/{id:[0-9]+}/retire", characterHandler.Retire).Methods(http.MethodPost)
	characters.HandleFunc("/{id:[0-9]+}/image", characterHandler.UploadImage).Methods(http.MethodPost)

	// Session routes (all require auth)
	sessions := api.PathPrefix("/sessions").Subrouter()
	sessions.Use(authMiddleware)
	sessions.HandleFunc("/my", sessionHandler.Mine).Methods(http.MethodGet)
	sessions.HandleFunc("", sessionHandler.List).Methods(http.MethodGet)
	sessions.HandleFunc("/{id:[0-9]+}", sessionHandler.Get).Methods(http.MethodGet)
	sessions.HandleFunc("/{id:[0-9]+}/signup", sessionHandler.SignUp).Methods(http.MethodPost)
	sessions.HandleFunc("/{id:[0-9]+}/signup/{characterId:[0-9]+}", sessionHandler.Withdraw).Methods(http.MethodDelete)

	// DM routes (require DM or Admin)
	dm := api.PathPrefix("/dm").Subrouter()
	dm.Use(authMiddleware)
	dm.Use(dmMiddleware)
	dm.HandleFunc("/characters/pending", dmHandler.Pending).Methods(http.MethodGet)
	dm.HandleFunc("/characters", dmHandler.All).Methods(http.MethodGet)
	dm.HandleFunc("/characters/{id:[0-9]+}/approve", dmHandler.Approve).Methods(http.MethodPost)
	dm.HandleFunc("/characters/{id:[0-9]+}/kill", dmHandler.Kill).Methods(http.MethodPost)
	dm.HandleFunc("/characters/{id:[0-9]+}/activate", dmHandler.Activate).Methods(http.MethodPost)
	dm.HandleFunc("/sessions", dmSessionHandler.Mine).Methods(http.MethodGet)
	dm.HandleFunc("/sessions", dmSessionHandler.Create).Methods(http.MethodPost)
	dm.HandleFunc("/sessions/{id:[0-9]+}", dmSessionHandler.Update).Methods(http.MethodPut)
	dm.HandleFunc("/sessions/{id:[0-9]+}/start", dmSessionHandler.Start).Methods(http.MethodPost)
	dm.HandleFunc("/sessions/{id:[0-9]+}/cancel", dmSessionHandler.Cancel).Methods(http.MethodPost)
	dm.HandleFunc("/sessions/{id:[0-9]+}/complete", dmSessionHandler.Complete).Methods(http.MethodPost)

	// Admin routes (require Admin)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(authMiddleware)
	admin.Use(adminMiddleware)
	admin.HandleFunc("/players", adminHandler.Players).Methods(http.MethodGet)
	admin.HandleFunc("/roles", adminHandler.Roles).Methods(http.MethodGet)
	admin.HandleFunc("/players/{id}/roles/{roleId}", adminHandler.AssignRole).Methods(http.MethodPost)
	admin.HandleFunc("/players/{id}/roles/{roleId}", adminHandler.RemoveRole).Methods(http.MethodDelete)
	admin.HandleFunc("/players/{id}/slots", adminHandler.UpdateSlots).Methods(http.MethodPut)
	admin.HandleFunc("/characters/{id:[0-9]+}/gold", adminHandler.UpdateGold).Methods(http.MethodPut)
	admin.HandleFunc("/characters/{id:[0-9]+}/experience", adminHandler.UpdateExperience).Methods(http.MethodPut)
	admin.HandleFunc("/characters/{id:[0-9]+}", adminHandler.DeleteCharacter).Methods(http.MethodDelete)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Serve uploaded character images if a directory is configured
	if cfg.UploadDir != "" {
		r.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))
	}

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
