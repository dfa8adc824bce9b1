package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saucerburger/pos-service/internal/auth"
	"github.com/saucerburger/pos-service/internal/backup"
	"github.com/saucerburger/pos-service/internal/handler"
	"github.com/saucerburger/pos-service/internal/mail"
	"github.com/saucerburger/pos-service/internal/menu"
	"github.com/saucerburger/pos-service/internal/order"
	"github.com/saucerburger/pos-service/internal/version"
)

// Deps carries everything the router wires together.
type Deps struct {
	Catalog     *menu.Catalog
	Orders      order.Service
	Backups     *backup.Service
	Gate        *auth.Gate
	VersionGate version.Gate
	Mailer      mail.Mailer
	BackupEmail string
}

func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	authHandler := handler.NewAuthHandler(deps.Gate)
	orderHandler := handler.NewOrderHandler(deps.Catalog, deps.Orders, deps.VersionGate)
	historyHandler := handler.NewHistoryHandler(deps.Orders)
	backupHandler := handler.NewBackupHandler(deps.Backups, deps.Orders, deps.Mailer, deps.BackupEmail)

	r.Post("/login", authHandler.Login)

	// Everything past the login gate requires a session token.
	r.Group(func(r chi.Router) {
		r.Use(deps.Gate.Middleware)

		r.Get("/menu", orderHandler.GetMenu)

		r.Post("/orders", orderHandler.CreateOrder)
		r.Get("/orders", orderHandler.GetOrders)
		r.Post("/orders/{id}/complete", orderHandler.CompleteOrder)
		r.Post("/orders/{id}/cancel", orderHandler.CancelOrder)
		r.Delete("/orders/{id}", orderHandler.DeleteOrder)

		r.Get("/history", historyHandler.GetHistory)
		r.Get("/history/export", historyHandler.ExportCSV)

		r.Post("/backup", backupHandler.CreateBackup)
		r.Post("/backup/restore", backupHandler.Restore)
		r.Get("/backup/snapshots", backupHandler.ListSnapshots)
		r.Get("/backup/stats", backupHandler.GetStats)
	})

	return r
}
