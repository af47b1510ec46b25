package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"orderlifecycle/internal/adapters/in/auth"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

const BaseURL = "/api/v1"

type RouterOptions struct {
	ServiceName string
	Verifier    *auth.Verifier
	Spec        *openapi3.T
	Logger      *slog.Logger
}

// NewRouter builds the echo instance serving the API, /health and /swagger.
func NewRouter(server ServerInterface, opts RouterOptions) (*echo.Echo, error) {
	if opts.Verifier == nil {
		return nil, fmt.Errorf("http router: verifier is required")
	}
	if opts.Spec == nil {
		return nil, fmt.Errorf("http router: openapi document is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "http")

	validate, err := ValidateRequests(opts.Spec)
	if err != nil {
		return nil, fmt.Errorf("http router: %w", err)
	}
	if err = registerSwaggerDoc(opts.Spec); err != nil {
		return nil, fmt.Errorf("http router: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(otelecho.Middleware(opts.ServiceName))
	e.Use(RequestLogger(logger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group(BaseURL, Authenticate(opts.Verifier), validate)
	RegisterHandlers(api, server, "")

	return e, nil
}

var (
	swaggerOnce sync.Once
	swaggerJSON atomic.Value
)

// swaggerDoc serves the most recently registered OpenAPI document to
// echo-swagger. swag allows a single registration per name.
type swaggerDoc struct{}

func (swaggerDoc) ReadDoc() string {
	s, _ := swaggerJSON.Load().(string)
	return s
}

func registerSwaggerDoc(doc *openapi3.T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode openapi document: %w", err)
	}
	swaggerJSON.Store(string(raw))
	swaggerOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{})
	})
	return nil
}
