package handler

import (
	"log/slog"
	"net/http"

	"qr-seat-reservation/internal/domain/user"
	"qr-seat-reservation/internal/handler/api"
	"qr-seat-reservation/internal/handler/middleware"
	"qr-seat-reservation/internal/pkg/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth        *api.AuthHandler
	Seating     *api.SeatingHandler
	Seller      *api.SellerHandler
	Reservation *api.ReservationHandler
	Ticket      *api.TicketHandler
	Setting     *api.SettingHandler
}

// NewRouter wires every route. A nil limiter disables check-in rate limiting.
func NewRouter(engine *gin.Engine, logger *slog.Logger, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware, limiter middleware.RateLimiter) {
	setupMiddleware(engine, logger, cfg)
	setupRoutes(engine, h, authMiddleware, limiter)
}

func setupMiddleware(engine *gin.Engine, logger *slog.Logger, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(logger, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, limiter middleware.RateLimiter) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		admin := apiGroup.Group("")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleAdmin))
		{
			addRoutes(admin.Group("/tables"), []route{
				{Method: http.MethodPost, Path: "", Handler: h.Seating.CreateTable},
				{Method: http.MethodGet, Path: "", Handler: h.Seating.ListTables},
				{Method: http.MethodGet, Path: "/summary", Handler: h.Seating.Summary},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Seating.GetTable},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Seating.DeleteTable},
				{Method: http.MethodGet, Path: "/:id/reservations", Handler: h.Seating.ListTableReservations},
			})

			addRoutes(admin.Group("/seats"), []route{
				{Method: http.MethodPut, Path: "/:id/status", Handler: h.Seating.UpdateSeatStatus},
			})

			addRoutes(admin.Group("/sellers"), []route{
				{Method: http.MethodPost, Path: "", Handler: h.Seller.Create},
				{Method: http.MethodGet, Path: "", Handler: h.Seller.List},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Seller.Delete},
			})

			addRoutes(admin.Group("/reservations"), []route{
				{Method: http.MethodPost, Path: "", Handler: h.Reservation.Create},
				{Method: http.MethodGet, Path: "", Handler: h.Reservation.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Reservation.Get},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Reservation.Cancel},
				{Method: http.MethodPost, Path: "/:id/payment", Handler: h.Reservation.MarkPaid},
				{Method: http.MethodGet, Path: "/:id/tickets", Handler: h.Reservation.ExportTickets},
			})

			addRoutes(admin.Group("/tickets"), []route{
				{Method: http.MethodPost, Path: "/generate", Handler: h.Ticket.Generate},
				{Method: http.MethodPost, Path: "/allocate", Handler: h.Ticket.Allocate},
				{Method: http.MethodGet, Path: "/stats", Handler: h.Ticket.Stats},
				{Method: http.MethodPost, Path: "/preview", Handler: h.Ticket.Preview},
				{Method: http.MethodGet, Path: "/:code", Handler: h.Ticket.Get},
				{Method: http.MethodGet, Path: "/:code/image", Handler: h.Ticket.Image},
			})

			addRoutes(admin.Group("/settings"), []route{
				{Method: http.MethodGet, Path: "", Handler: h.Setting.Get},
				{Method: http.MethodPut, Path: "", Handler: h.Setting.Update},
			})
		}

		entrance := apiGroup.Group("/checkins")
		entrance.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleEntrance))
		{
			addRoutes(entrance, []route{
				{
					Method:  http.MethodPost,
					Path:    "",
					Handler: h.Reservation.CheckIn,
					Mw:      []gin.HandlerFunc{middleware.RateLimit(limiter, "checkin")},
				},
				{Method: http.MethodGet, Path: "/:code", Handler: h.Reservation.FindByTicketCode},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		handlers := append(append([]gin.HandlerFunc{}, r.Mw...), r.Handler)
		g.Handle(r.Method, r.Path, handlers...)
	}
}
