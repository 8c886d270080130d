package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/llanterasoft/pos-panel/internal/backend"
	"github.com/llanterasoft/pos-panel/internal/bus"
	"github.com/llanterasoft/pos-panel/internal/modules/access"
	"github.com/llanterasoft/pos-panel/internal/modules/auth"
	"github.com/llanterasoft/pos-panel/internal/modules/cart"
	"github.com/llanterasoft/pos-panel/internal/modules/catalog"
	"github.com/llanterasoft/pos-panel/internal/modules/customer"
	"github.com/llanterasoft/pos-panel/internal/modules/dashboard"
	"github.com/llanterasoft/pos-panel/internal/modules/inventory"
	"github.com/llanterasoft/pos-panel/internal/modules/sales"
	"github.com/llanterasoft/pos-panel/internal/modules/users"
	"github.com/llanterasoft/pos-panel/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	apiURL := os.Getenv("BACKEND_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:3000"
	}
	sessionFile := os.Getenv("SESSION_FILE")
	if sessionFile == "" {
		sessionFile = "session.json"
	}

	// ── Session & upstream API ──────────────────────────────
	sessions := session.NewManager(session.NewFileStore(sessionFile), session.NewMemStore())
	api := backend.NewClient(apiURL, sessions)
	events := bus.New()

	// ── Permission gate ─────────────────────────────────────
	table, err := access.LoadTable(os.Getenv("PERMISSIONS_FILE"))
	if err != nil {
		log.Fatal(err)
	}
	authService := auth.NewService(api, sessions)
	gate := access.NewGate(table, userSource{authService})

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(gate.EnforcePageAccess("/api/v1/dashboard/stats"))

	// ── Auth & access ───────────────────────────────────────
	auth.NewHandler(authService).RegisterRoutes(router)
	access.NewHandler(gate).RegisterRoutes(router)

	// ── Catalog & cart ──────────────────────────────────────
	catalogService := catalog.NewService(api)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	if err := catalogService.Reload(ctx); err != nil {
		log.Printf("initial catalog load failed (will retry on demand): %v", err)
	}
	cancel()
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	cartService := cart.NewService(api, catalogService, events)
	cart.NewHandler(cartService, gate).RegisterRoutes(router)

	// ── Screens ─────────────────────────────────────────────
	customerService := customer.NewService(api, events)
	customer.NewHandler(customerService, gate).RegisterRoutes(router)

	inventoryService := inventory.NewService(api, catalogService, events)
	inventory.NewHandler(inventoryService, gate).RegisterRoutes(router)

	salesService := sales.NewService(api)
	sales.NewHandler(salesService, gate).RegisterRoutes(router)

	usersService := users.NewService(api, events)
	users.NewHandler(usersService, gate).RegisterRoutes(router)

	dashboardService := dashboard.NewService(api)
	dashboard.NewHandler(dashboardService).RegisterRoutes(router)

	// ── Start Server ────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("POS panel starting on :%s (backend %s)\n", port, apiURL)
	log.Fatal(http.ListenAndServe(":"+port, router))
}

// userSource adapts the auth service (which handles token expiry) to the
// gate's UserSource.
type userSource struct{ auth auth.Service }

func (u userSource) CurrentUser() *backend.User { return u.auth.CurrentUser() }
