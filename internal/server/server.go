package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prudhivi99/storefront/internal/auth"
	"github.com/prudhivi99/storefront/internal/config"
	"github.com/prudhivi99/storefront/internal/handlers"
	"github.com/prudhivi99/storefront/internal/metrics"
)

type Server struct {
	config   *config.Config
	router   *gin.Engine
	handlers *handlers.Handlers
	tokens   *auth.TokenManager
	httpSrv  *http.Server
}

func New(cfg *config.Config, h *handlers.Handlers, tm *auth.TokenManager, m *metrics.ServerMetrics) *Server {
	router := gin.Default()
	if m != nil {
		router.Use(m.Middleware())
	}

	s := &Server{
		config:   cfg,
		router:   router,
		handlers: h,
		tokens:   tm,
	}

	s.setupRoutes()

	s.httpSrv = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handlers.HealthCheck)
	s.router.GET("/metrics", gin.WrapH(metrics.Handler()))

	s.router.POST("/token", s.handlers.ObtainToken)
	s.router.POST("/token/refresh", s.handlers.RefreshToken)

	authed := s.router.Group("/", auth.Middleware(s.tokens))
	{
		authed.GET("/products", s.handlers.ListProducts)
		authed.POST("/products", s.handlers.CreateProduct)
		authed.GET("/products/:id", s.handlers.GetProduct)
		authed.PUT("/products/:id", s.handlers.UpdateProduct)
		authed.PATCH("/products/:id", s.handlers.UpdateProduct)
		authed.DELETE("/products/:id", s.handlers.DeleteProduct)

		authed.GET("/orders", s.handlers.ListOrders)
		authed.POST("/orders", s.handlers.CreateOrder)
		authed.GET("/orders/:id", s.handlers.GetOrder)
		authed.PUT("/orders/:id", s.handlers.UpdateOrder)
		authed.PATCH("/orders/:id", s.handlers.UpdateOrder)
		authed.DELETE("/orders/:id", s.handlers.DeleteOrder)
		authed.POST("/orders/:id/add_to_cart", s.handlers.AddToCart)
		authed.POST("/orders/:id/checkout", s.handlers.Checkout)

		authed.POST("/admin/generate_discount_code", s.handlers.GenerateDiscountCode)
		authed.GET("/admin/purchase_details", s.handlers.PurchaseDetails)
	}
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Start() error {
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}
