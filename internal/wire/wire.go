package wire

import (
	"net/http"

	"storefront/internal/adaptor"
	"storefront/internal/data/repository"
	"storefront/internal/usecase"
	"storefront/pkg/middleware"
	"storefront/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired router and the services behind it.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and routes from the repositories.
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router:  setupRouter(handler, service.Sessions, config, logger),
		Service: service,
	}
}

// routeDeps is what every route group needs to build its middleware.
type routeDeps struct {
	secret   string
	sessions middleware.SessionResolver
	log      *zap.Logger
}

func (d routeDeps) auth() func(http.Handler) http.Handler {
	return middleware.AuthSession(d.secret, d.sessions, d.log)
}

func (d routeDeps) admin() func(http.Handler) http.Handler {
	return middleware.Admin(d.log)
}

func setupRouter(
	handler *adaptor.Handler,
	sessions middleware.SessionResolver,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSOrigins))

	deps := routeDeps{secret: config.JWT.Secret, sessions: sessions, log: logger}

	wireAuth(r, handler.Auth, deps)
	wireCatalog(r, handler.Catalog)
	wireCart(r, handler.Cart, handler.Order, deps)
	wireAccount(r, handler.Account, deps)
	wireAdmin(r, handler.Admin, deps)
	wireContact(r, handler.Contact)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
