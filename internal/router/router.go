package router

import (
	"github.com/gin-gonic/gin"

	"bilagsky/internal/config"
	"bilagsky/internal/handler"
	"bilagsky/internal/middleware"
	"bilagsky/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	userH *handler.UserHandler,
	scanH *handler.ScanHandler,
	bookkeepingH *handler.BookkeepingHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/signup", authH.Signup)
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)
	auth.POST("/forgot-password", authH.ForgotPassword)
	auth.POST("/reset-password", authH.ResetPassword)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Account management
	me := protected.Group("/me")
	me.GET("", userH.Me)
	me.PUT("", userH.UpdateProfile)
	me.DELETE("", userH.Delete)
	me.PUT("/password", userH.ChangePassword)
	me.PUT("/fiken", userH.SetFikenCredentials)
	me.GET("/companies", userH.Companies)
	me.PUT("/company", userH.SetActiveCompany)

	// Document scans
	scans := protected.Group("/scans")
	scans.POST("", scanH.Upload)
	scans.GET("", scanH.List)
	scans.GET("/:id", scanH.GetByID)
	scans.DELETE("/:id", scanH.Delete)

	// Bookkeeping against Fiken
	protected.POST("/purchases", bookkeepingH.SubmitPurchase)
	protected.POST("/sales", bookkeepingH.SubmitSale)
	protected.POST("/contacts", bookkeepingH.CreateContact)
	protected.GET("/suppliers", bookkeepingH.Suppliers)
	protected.GET("/accounts/expense", bookkeepingH.ExpenseAccounts)
	protected.GET("/accounts/payment", bookkeepingH.PaymentAccounts)
	protected.GET("/history", bookkeepingH.History)
	protected.GET("/history/export", bookkeepingH.ExportHistory)

	return r
}
