package router

import (
	"context"
	"net/http"

	_ "livestock-records/docs" // registra la spec de swagger

	mem "livestock-records/internal/adapters/storage/memory"
	"livestock-records/internal/domain/animals"
	"livestock-records/internal/middleware"
	"livestock-records/internal/platform/logger"
	"livestock-records/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si no viene, usa el repo in-memory.
	Repository animals.Repository

	Logger   logger.Logger // default: logger.Nop()
	StoreKey string        // default: animals.DefaultStoreKey
}

// NewRouter arma el store, lo hidrata desde el repositorio y monta las rutas.
func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	repo := opts.Repository
	if repo == nil {
		repo = mem.NewDocumentRepo()
	}

	svc := animals.NewService(repo, animals.Options{StoreKey: opts.StoreKey, Logger: log})
	_ = svc.Load(context.Background()) // nunca falla: un documento ilegible arranca vacío

	m := metrics.New(func() float64 { return float64(svc.Count(context.Background())) })

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Observe(log.With(map[string]any{"component": "http"}), m))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	animals.RegisterRoutes(r, svc)

	return r
}
