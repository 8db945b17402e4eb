package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"github.com/saleslt/catalog/internal/config"
	"github.com/saleslt/catalog/internal/http/apierr"
	"github.com/saleslt/catalog/internal/http/metric"
	"github.com/saleslt/catalog/internal/http/middleware"
	"github.com/saleslt/catalog/internal/http/swagger"
	"github.com/saleslt/catalog/internal/service"
	"github.com/saleslt/catalog/pkg/validator"
	"github.com/saleslt/catalog/pkg/zerror"
)

var tracer = otel.Tracer("internal/http")

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

var malformedBodyErr = zerror.NewBadRequest("malformedRequest", "request body is not valid JSON")

// Service represents the HTTP service.
type Service struct {
	cfg       config.HTTP
	logger    *slog.Logger
	metrics   *metric.Metrics
	validator validator.Validator

	productSvc     service.ProductService
	categorySvc    service.CategoryService
	modelSvc       service.ProductModelService
	descriptionSvc service.DescriptionService
}

type CleanupFunc func(ctx context.Context) error

func New(
	cfg config.HTTP,
	log *slog.Logger,
	v validator.Validator,
	productSvc service.ProductService,
	categorySvc service.CategoryService,
	modelSvc service.ProductModelService,
	descriptionSvc service.DescriptionService,
) *Service {
	return &Service{
		cfg:            cfg,
		logger:         log.With(slog.String("service", "http")),
		validator:      v,
		productSvc:     productSvc,
		categorySvc:    categorySvc,
		modelSvc:       modelSvc,
		descriptionSvc: descriptionSvc,
	}
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	r := chi.NewRouter()
	s.RegisterMiddlewares(r)

	if s.cfg.Swagger {
		swagger.Register(r)
	}

	s.RegisterHandlers(r)

	return s.RunWithServer(ctx, r)
}

func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	// Metrics register on the default Prometheus registry, so they are created
	// here rather than in New: only one middleware chain exists per process.
	if s.metrics == nil {
		s.metrics = metric.New()
	}

	r.Use(
		middleware.Recoverer(s.logger),
		middleware.Trace(tracer),
		middleware.Metrics(s.metrics),
		middleware.CorrelationID(),
		middleware.Cors(),
		middleware.Logging(s.logger),
	)
}

func (s *Service) RegisterHandlers(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", s.listProducts)
		r.Post("/", s.createProduct)
		r.Get("/{productID}", s.getProduct)
		r.Put("/{productID}", s.updateProduct)
		r.Delete("/{productID}", s.deleteProduct)
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", s.listCategories)
		r.Post("/", s.createCategory)
		r.Get("/{categoryID}", s.getCategory)
		r.Put("/{categoryID}", s.updateCategory)
		r.Delete("/{categoryID}", s.deleteCategory)
	})

	r.Route("/models", func(r chi.Router) {
		r.Get("/", s.listProductModels)
		r.Post("/", s.createProductModel)
		r.Get("/{modelID}", s.getProductModel)
		r.Post("/{modelID}/descriptions", s.linkDescription)
	})

	r.Route("/descriptions", func(r chi.Router) {
		r.Get("/", s.listDescriptions)
		r.Post("/", s.createDescription)
		r.Get("/{descriptionID}", s.getDescription)
	})

	r.Handle(middleware.MetricsPath, promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	}))
}

// decodeAndValidate decodes the JSON request body into v and runs the shared
// validator over it. Malformed bodies and invalid fields surface as domain
// errors the response error handler knows how to render.
func (s *Service) decodeAndValidate(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return malformedBodyErr.WrapParent(err)
	}

	if err := s.validator.Validate(v); err != nil {
		return err
	}

	return nil
}

func (s *Service) respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.ErrorContext(r.Context(), "error encoding response",
			slog.Any("error", err))
	}
}

func (s *Service) handleResponseError(w http.ResponseWriter, r *http.Request, err error) {
	res := apierr.New(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)

	logLevel := slog.LevelInfo
	if res.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if res.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}
	s.logger.Log(r.Context(), logLevel, "http response error", slog.Any("error", err))

	if err := json.NewEncoder(w).Encode(res); err != nil {
		s.logger.ErrorContext(r.Context(), "error encoding error response",
			slog.Any("error", err))
	}
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, zerror.NewBadRequest("invalidPathParam",
			fmt.Sprintf("%s must be an integer", name)).WrapParent(err)
	}
	return int32(id), nil
}

// paginationParams reads skip/limit query parameters with the catalog's
// defaults: skip 0, limit 100, limit capped at 1000.
func paginationParams(r *http.Request) (skip, limit int32, err error) {
	skip, err = queryInt32(r, "skip", 0)
	if err != nil {
		return 0, 0, err
	}
	if skip < 0 {
		return 0, 0, zerror.NewBadRequest("invalidQueryParam", "skip must not be negative")
	}

	limit, err = queryInt32(r, "limit", defaultListLimit)
	if err != nil {
		return 0, 0, err
	}
	if limit < 0 {
		return 0, 0, zerror.NewBadRequest("invalidQueryParam", "limit must not be negative")
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	return skip, limit, nil
}

func queryInt32(r *http.Request, name string, fallback int32) (int32, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, zerror.NewBadRequest("invalidQueryParam",
			fmt.Sprintf("%s must be an integer", name)).WrapParent(err)
	}

	return int32(v), nil
}
