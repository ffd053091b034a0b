package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/abhayvishwakarma1111/bitezyqr/internal/auth"
	authdomain "github.com/abhayvishwakarma1111/bitezyqr/internal/auth/domain"
	"github.com/abhayvishwakarma1111/bitezyqr/internal/auth/session"
	"github.com/abhayvishwakarma1111/bitezyqr/internal/config"
	"github.com/abhayvishwakarma1111/bitezyqr/internal/menu"
	menudomain "github.com/abhayvishwakarma1111/bitezyqr/internal/menu/domain"
	"github.com/abhayvishwakarma1111/bitezyqr/internal/migration"
	"github.com/abhayvishwakarma1111/bitezyqr/internal/order"
	orderdomain "github.com/abhayvishwakarma1111/bitezyqr/internal/order/domain"
	"github.com/abhayvishwakarma1111/bitezyqr/internal/order/events"
	"github.com/abhayvishwakarma1111/bitezyqr/internal/payment"
	"github.com/abhayvishwakarma1111/bitezyqr/internal/payment/webhook"
	"github.com/abhayvishwakarma1111/bitezyqr/internal/restaurant"
	restaurantdomain "github.com/abhayvishwakarma1111/bitezyqr/internal/restaurant/domain"
)

var Module = fx.Module("http.server",
	fx.Provide(newEngine),
	fx.Provide(newHTTPMetrics),
	restaurant.Module,
	menu.Module,
	order.Module,
	payment.Module,
	auth.Module,
	migration.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func newEngine(log *zap.Logger, metrics *HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(MetricsMiddleware(metrics))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	db            *gorm.DB
	log           *zap.Logger
	genID         *snowflake.Node
	sessions      *session.Manager
	authSvc       authdomain.Service
	restaurantSvc restaurantdomain.Service
	menuSvc       menudomain.Service
	orderSvc      orderdomain.Service
	webhookSvc    *webhook.Service
	orderEvents   *events.Hub
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	DB            *gorm.DB
	Log           *zap.Logger
	GenID         *snowflake.Node
	Sessions      *session.Manager
	AuthSvc       authdomain.Service
	RestaurantSvc restaurantdomain.Service
	MenuSvc       menudomain.Service
	OrderSvc      orderdomain.Service
	WebhookSvc    *webhook.Service
	OrderEvents   *events.Hub
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		db:            p.DB,
		log:           p.Log.Named("http.server"),
		genID:         p.GenID,
		sessions:      p.Sessions,
		authSvc:       p.AuthSvc,
		restaurantSvc: p.RestaurantSvc,
		menuSvc:       p.MenuSvc,
		orderSvc:      p.OrderSvc,
		webhookSvc:    p.WebhookSvc,
		orderEvents:   p.OrderEvents,
	}

	s.registerPublicRoutes()
	s.registerAuthRoutes()
	s.registerStaffRoutes()
	s.registerSuperadminRoutes()

	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerPublicRoutes() {
	api := s.engine.Group("/api")

	api.GET("/restaurants/:slug", s.GetRestaurant)
	api.GET("/restaurants/:slug/menu", s.GetRestaurantMenu)
	api.POST("/checkout", s.Checkout)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/payments/webhooks/:provider", s.HandlePaymentWebhook)
}

func (s *Server) registerAuthRoutes() {
	authGroup := s.engine.Group("/auth")

	authGroup.POST("/login", s.Login)
	authGroup.POST("/logout", s.Logout)
	authGroup.GET("/me", s.AuthRequired(), s.Me)
}

func (s *Server) registerStaffRoutes() {
	staff := s.engine.Group("/staff", s.AuthRequired())

	staff.GET("/orders/board", s.ListOrderBoard)
	staff.GET("/orders/events", s.StreamOrderEvents)
	staff.POST("/orders/:id/advance", s.AdvanceOrderStatus)

	staff.GET("/menu", s.ListStaffMenu)
	staff.POST("/menu", s.CreateMenuItem)
	staff.PATCH("/menu/:id", s.PatchMenuItem)
	staff.DELETE("/menu/:id", s.DeleteMenuItem)
}

func (s *Server) registerSuperadminRoutes() {
	sa := s.engine.Group("/sa", s.AuthRequired(), s.RequireRole(authdomain.RoleSuperadmin))

	sa.GET("/restaurants", s.ListRestaurants)
	sa.POST("/restaurants", s.ProvisionRestaurant)
	sa.GET("/restaurants/:id", s.GetRestaurantByID)
	sa.PATCH("/restaurants/:id", s.UpdateRestaurant)
	sa.POST("/users", s.CreateStaffUser)
}
