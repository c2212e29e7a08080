package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/malware-d/bercos/internal/bank"
	"github.com/malware-d/bercos/internal/handlers"
	"github.com/malware-d/bercos/internal/httpx"
	"github.com/malware-d/bercos/internal/identity"
	"github.com/malware-d/bercos/internal/ledger"
	mw2 "github.com/malware-d/bercos/internal/mw"
	"github.com/malware-d/bercos/internal/token"
	"github.com/malware-d/bercos/internal/version"
)

type Options struct {
	EnableCORS bool
}

type Deps struct {
	Store    bank.Store
	Engine   *ledger.Engine
	Issuer   *token.Issuer
	Resolver *identity.Resolver
}

func BuildRouter(d Deps, opts Options) http.Handler {
	r := chi.NewRouter()

	// baseline
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	if opts.EnableCORS {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// tracing + logger
	r.Use(mw2.Trace())
	r.Use(mw2.Logger(mw2.LogOpts{
		SkipPaths:     []string{"/healthz", "/version"},
		RedactHeaders: []string{"Authorization"},
	}))

	auth := handlers.NewAuthHandler(d.Store, d.Issuer)
	acct := handlers.NewAccountHandler(d.Engine)

	r.Get("/healthz", healthCheckHandler)
	r.Get("/version", handlers.VersionHandler)
	r.Post("/auth/login", auth.Login)

	r.Route("/accounts", func(ar chi.Router) {
		ar.Use(mw2.Authenticate(d.Resolver))

		ar.Get("/", acct.List)
		ar.Post("/", acct.Create)
		ar.Get("/admin/transactions", acct.AllTransactions)

		ar.Get("/{accountNumber}", acct.Get)
		ar.Get("/{accountNumber}/balance", acct.Balance)
		ar.Get("/{accountNumber}/transactions", acct.Statement)
		ar.Post("/{accountNumber}/deposit", acct.Deposit)
		ar.Post("/{accountNumber}/withdraw", acct.Withdraw)
		ar.Post("/{accountNumber}/transfer", acct.Transfer)
		ar.Post("/{accountNumber}/freeze", acct.Freeze)
		ar.Post("/{accountNumber}/unfreeze", acct.Unfreeze)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, http.StatusNotFound, "endpoint not found")
	})

	return r
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": version.Version,
	})
}
