package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"courtgrid/internal/domain/user"
	"courtgrid/internal/handler/api"
	"courtgrid/internal/handler/middleware"
	"courtgrid/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth          *api.AuthHandler
	Booking       *api.BookingHandler
	Resource      *api.ResourceHandler
	Establishment *api.EstablishmentHandler
	Cashbox       *api.CashboxHandler
	Account       *api.AccountHandler
	Maintenance   *api.MaintenanceHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	operator := authMiddleware.RequireRoleAtLeast(user.RoleOperator)
	admin := authMiddleware.RequireRoleAtLeast(user.RoleAdmin)

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
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
				{Method: http.MethodPost, Path: "/register", Handler: h.Auth.Register, Mw: []gin.HandlerFunc{admin}},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Booking.ListBookings},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.GetBooking},
				{Method: http.MethodPost, Path: "", Handler: h.Booking.CreateBooking, Mw: []gin.HandlerFunc{operator}},
				{Method: http.MethodPost, Path: "/series", Handler: h.Booking.CreateSeries, Mw: []gin.HandlerFunc{operator}},
				{Method: http.MethodPatch, Path: "/:id/move", Handler: h.Booking.MoveBooking, Mw: []gin.HandlerFunc{operator}},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: h.Booking.UpdateStatus, Mw: []gin.HandlerFunc{operator}},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Booking.CancelBooking, Mw: []gin.HandlerFunc{operator}},
			})
		}

		establishments := apiGroup.Group("/establishments")
		establishments.Use(authMiddleware.RequireAuth())
		{
			addRoutes(establishments, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Establishment.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Establishment.Get},
				{Method: http.MethodGet, Path: "/:id/grid", Handler: h.Booking.DayGrid},
				{Method: http.MethodPost, Path: "", Handler: h.Establishment.Create, Mw: []gin.HandlerFunc{admin}},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Establishment.Update, Mw: []gin.HandlerFunc{admin}},
			})
		}

		resources := apiGroup.Group("/resources")
		resources.Use(authMiddleware.RequireAuth())
		{
			addRoutes(resources, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Resource.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Resource.Get},
				{Method: http.MethodGet, Path: "/:id/max-duration", Handler: h.Booking.MaxDuration},
				{Method: http.MethodPost, Path: "", Handler: h.Resource.Create, Mw: []gin.HandlerFunc{admin}},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Resource.Update, Mw: []gin.HandlerFunc{admin}},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Resource.Deactivate, Mw: []gin.HandlerFunc{admin}},
			})
		}

		register := apiGroup.Group("/register")
		register.Use(authMiddleware.RequireAuth(), operator)
		{
			addRoutes(register, []route{
				{Method: http.MethodPost, Path: "/open", Handler: h.Cashbox.Open},
				{Method: http.MethodPost, Path: "/close", Handler: h.Cashbox.Close},
				{Method: http.MethodPost, Path: "/movements", Handler: h.Cashbox.AddMovement},
				{Method: http.MethodGet, Path: "/current", Handler: h.Cashbox.Current},
				{Method: http.MethodGet, Path: "/sessions/:id", Handler: h.Cashbox.GetSession},
				{Method: http.MethodGet, Path: "/sessions/:id/movements", Handler: h.Cashbox.Movements},
			})
		}

		accounts := apiGroup.Group("/accounts")
		accounts.Use(authMiddleware.RequireAuth(), operator)
		{
			addRoutes(accounts, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Account.Create},
				{Method: http.MethodGet, Path: "", Handler: h.Account.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Account.Get},
				{Method: http.MethodGet, Path: "/:id/entries", Handler: h.Account.Statement},
				{Method: http.MethodPost, Path: "/:id/charges", Handler: h.Account.Charge},
				{Method: http.MethodPost, Path: "/:id/payments", Handler: h.Account.Pay},
			})
		}

		maintenance := apiGroup.Group("/maintenance")
		maintenance.Use(authMiddleware.RequireAuth())
		{
			addRoutes(maintenance, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Maintenance.ListOpen},
				{Method: http.MethodPost, Path: "", Handler: h.Maintenance.Report, Mw: []gin.HandlerFunc{operator}},
				{Method: http.MethodPatch, Path: "/:id/resolve", Handler: h.Maintenance.Resolve, Mw: []gin.HandlerFunc{operator}},
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
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
