package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"stockflow/internal/auth"
	"stockflow/internal/config"
	"stockflow/internal/httpserver/handlers"
)

func NewRouter(db *gorm.DB, lg *zap.SugaredLogger, cfg *config.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)

	// Public
	r.Post("/v1/auth/register", handlers.Register(db, lg))
	r.Post("/v1/auth/login", handlers.Login(db, lg, cfg))
	r.Get("/v1/stocks", handlers.ListStocks(db, lg))
	r.Get("/v1/stocks/{id}", handlers.GetStock(db, lg))

	r.Group(func(protected chi.Router) {
		protected.Use(auth.JWTAuth(db, []byte(cfg.JWTSecret)))
		protected.Get("/v1/me", handlers.Me(db, lg))
		protected.Post("/v1/auth/logout", handlers.Logout(db))
		protected.Post("/v1/auth/password", handlers.ChangePassword(db, lg))

		protected.Post("/v1/requests", handlers.CreateRequest(db, lg))
		protected.Get("/v1/requests", handlers.ListRequests(db, lg))
		protected.Get("/v1/requests/{id}", handlers.GetRequest(db, lg))

		protected.Group(func(admin chi.Router) {
			admin.Use(auth.RequireAdmin())
			admin.Post("/v1/stocks", handlers.CreateStock(db, lg))
			admin.Put("/v1/stocks/{id}", handlers.UpdateStock(db, lg))
			admin.Delete("/v1/stocks/{id}", handlers.DeleteStock(db, lg))
			admin.Patch("/v1/stocks/{id}/adjust-quantity", handlers.AdjustStockQuantity(db, lg))
			admin.Get("/v1/stocks/{id}/history", handlers.StockHistoryList(db, lg))

			admin.Put("/v1/requests/{id}/approve", handlers.ApproveRequest(db, lg))
			admin.Put("/v1/requests/{id}/deny", handlers.DenyRequest(db, lg))

			admin.Get("/v1/admin/users", handlers.ListUsers(db, lg))
			admin.Post("/v1/admin/users", handlers.CreateUser(db, lg))
			admin.Patch("/v1/admin/users/{id}", handlers.UpdateUser(db, lg))
			admin.Delete("/v1/admin/users/{id}", handlers.DeleteUser(db, lg))

			admin.Get("/v1/admin/dashboard", handlers.Dashboard(db, lg))
			admin.Get("/v1/admin/audit-logs", handlers.ListAuditLogs(db, lg))
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	return r
}
