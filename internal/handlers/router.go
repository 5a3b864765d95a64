package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	mW "github.com/tinybank/backend/internal/middleware"
	"github.com/tinybank/backend/internal/services"
	"go.uber.org/zap"
)

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Users          *UserHandler
	Accounts       *AccountHandler
	Transactions   *TransactionHandler
	Reconciliation *ReconciliationHandler
}

// NewRouter wires middleware, health, swagger and the /api/v1 routes.
func NewRouter(h Handlers, requestTimeout time.Duration, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mW.SecurityHeaders)
	r.Use(mW.RequestLogger(log))
	r.Use(middleware.Recoverer)
	if requestTimeout > 0 {
		r.Use(middleware.Timeout(requestTimeout))
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id", "X-Message-Type"},
		AllowCredentials: false,
		MaxAge:           86400,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		services.SendJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/users", h.Users.CreateUser)
		r.Route("/users/{key}", func(r chi.Router) {
			r.Get("/", h.Users.GetUser)
			r.Patch("/deactivate", h.Users.DeactivateUser)

			r.Post("/accounts", h.Accounts.CreateAccount)
			r.Get("/accounts/balance", h.Accounts.GetAllBalances)
			r.Get("/transactions", h.Transactions.GetAllHistory)

			r.Route("/accounts/{accountId}", func(r chi.Router) {
				r.Get("/balance", h.Accounts.GetBalance)
				r.Get("/qr", h.Accounts.PaymentQR)
				r.Post("/deposit", h.Transactions.Deposit)
				r.Post("/withdraw", h.Transactions.Withdraw)
				r.Get("/transactions", h.Transactions.GetAccountHistory)
				r.Get("/transactions/{txId}/pacs008", h.Transactions.ExportPacs008)
			})
		})

		r.Post("/transactions", h.Transactions.SubmitTransfer)
		r.Get("/reconciliation", h.Reconciliation.Run)
	})

	return r
}
