package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/bizhub-api/internal/config"
	"github.com/sangkips/bizhub-api/internal/domain/entity"
	domainRepo "github.com/sangkips/bizhub-api/internal/domain/repository"
	"github.com/sangkips/bizhub-api/internal/presentation/http/handler"
	"github.com/sangkips/bizhub-api/internal/presentation/http/middleware"
	"github.com/sangkips/bizhub-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth       *handler.AuthHandler
	Business   *handler.BusinessHandler
	Lead       *handler.LeadHandler
	Customer   *handler.CustomerHandler
	Sale       *handler.SaleHandler
	Quote      *handler.QuoteHandler
	Task       *handler.TaskHandler
	Compliance *handler.ComplianceHandler
	File       *handler.FileHandler
	Website    *handler.WebsiteHandler
	Dashboard  *handler.DashboardHandler
	User       *handler.UserHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	BusinessRepo    domainRepo.BusinessRepository
	// RateLimiter is owned by the caller, which stops it on shutdown
	RateLimiter *middleware.BusinessRateLimiter
}

// NewRateLimiter builds the per-business limiter from the rate limit config
func NewRateLimiter(cfg config.RateLimitConfig) *middleware.BusinessRateLimiter {
	return middleware.NewBusinessRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RequestsPerSecond(),
		BurstSize:         cfg.Burst,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// Published business websites
	router.GET("/sites/:slug", h.Website.Public)

	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, h)
		v1.GET("/files", h.File.Download)

		authed := v1.Group("")
		authed.Use(middleware.AuthMiddleware(deps.JWTManager))
		authed.Use(middleware.SessionMiddleware(deps.BusinessRepo))
		authed.Use(deps.RateLimiter.Middleware())

		// Available before onboarding
		authed.POST("/auth/logout", h.Auth.Logout)
		authed.GET("/profile", h.Auth.GetProfile)
		authed.PUT("/profile", h.Auth.UpdateProfile)
		authed.PUT("/profile/password", h.Auth.ChangePassword)
		authed.GET("/onboarding", h.Business.GetOnboarding)
		authed.POST("/onboarding", h.Business.Onboard)

		// Platform administration is not tied to a business
		registerUserRoutes(authed, h)

		scoped := authed.Group("")
		scoped.Use(middleware.RequireOnboarding())
		registerBusinessRoutes(scoped, h)
		registerLeadRoutes(scoped, h)
		registerCustomerRoutes(scoped, h)
		registerSaleRoutes(scoped, h, deps)
		registerQuoteRoutes(scoped, h, deps)
		registerTaskRoutes(scoped, h)
		registerComplianceRoutes(scoped, h)
		registerWebsiteRoutes(scoped, h)

		scoped.GET("/dashboard", middleware.RequirePermission(entity.PermissionViewDashboard), h.Dashboard.GetStats)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerBusinessRoutes(rg *gin.RouterGroup, h *Handlers) {
	manager := middleware.RequireBusinessManager()

	rg.GET("/business", h.Business.Get)
	rg.PUT("/business", manager, h.Business.Update)

	members := rg.Group("/business/members")
	{
		members.GET("", h.Business.ListMembers)
		members.POST("", manager, h.Business.AddMember)
		members.PUT("/:user_id", manager, h.Business.UpdateMemberRole)
		members.DELETE("/:user_id", manager, h.Business.RemoveMember)
	}

	rg.GET("/settings", h.Business.GetSettings)
	rg.PUT("/settings", manager, h.Business.UpdateSettings)
}

func registerLeadRoutes(rg *gin.RouterGroup, h *Handlers) {
	leads := rg.Group("/leads")
	leads.Use(middleware.RequirePermission(entity.PermissionManageLeads))
	{
		leads.GET("", h.Lead.List)
		leads.POST("", h.Lead.Create)
		leads.POST("/import", h.Lead.Import)
		leads.GET("/:id", h.Lead.Get)
		leads.PUT("/:id", h.Lead.Update)
		leads.DELETE("/:id", h.Lead.Delete)
		leads.POST("/:id/convert", h.Lead.Convert)
	}
}

func registerCustomerRoutes(rg *gin.RouterGroup, h *Handlers) {
	customers := rg.Group("/customers")
	customers.Use(middleware.RequirePermission(entity.PermissionManageCustomers))
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerSaleRoutes(rg *gin.RouterGroup, h *Handlers, deps *Deps) {
	sales := rg.Group("/sales")
	sales.Use(middleware.RequirePermission(entity.PermissionManageSales))
	{
		sales.GET("", h.Sale.List)
		// Sale creation requires an Idempotency-Key to prevent duplicates
		sales.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Sale.Create)
		sales.GET("/:id", h.Sale.Get)
		sales.PUT("/:id", h.Sale.Update)
		sales.PUT("/:id/status", h.Sale.UpdateStatus)
		sales.DELETE("/:id", h.Sale.Delete)
	}
}

func registerQuoteRoutes(rg *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})

	quotes := rg.Group("/quotes")
	quotes.Use(middleware.RequirePermission(entity.PermissionManageQuotes))
	{
		quotes.GET("", h.Quote.List)
		quotes.POST("", idempotent, h.Quote.Create)
		quotes.GET("/:id", h.Quote.Get)
		quotes.PUT("/:id", h.Quote.Update)
		quotes.PUT("/:id/status", h.Quote.UpdateStatus)
		quotes.DELETE("/:id", h.Quote.Delete)
		quotes.GET("/:id/export", h.Quote.Export)
		quotes.POST("/:id/convert", idempotent, h.Quote.Convert)
	}
}

func registerTaskRoutes(rg *gin.RouterGroup, h *Handlers) {
	tasks := rg.Group("/tasks")
	tasks.Use(middleware.RequirePermission(entity.PermissionManageTasks))
	{
		tasks.GET("", h.Task.List)
		tasks.POST("", h.Task.Create)
		tasks.GET("/:id", h.Task.Get)
		tasks.PUT("/:id", h.Task.Update)
		tasks.PUT("/:id/complete", h.Task.Complete)
		tasks.DELETE("/:id", h.Task.Delete)
	}
}

func registerComplianceRoutes(rg *gin.RouterGroup, h *Handlers) {
	// The catalog is reference data for every member of the business
	rg.GET("/compliance/catalog", h.Compliance.Catalog)

	compliance := rg.Group("/compliance")
	compliance.Use(middleware.RequirePermission(entity.PermissionManageCompliance))
	{
		compliance.GET("/summary", h.Compliance.Summary)
		compliance.GET("/documents", h.Compliance.ListDocuments)
		compliance.POST("/documents", h.Compliance.CreateCustom)
		compliance.POST("/documents/:slot/upload", h.Compliance.Upload)
		compliance.PUT("/documents/:slot/expiry", h.Compliance.SetExpiry)
		compliance.GET("/documents/:slot/url", h.Compliance.FileURL)
	}
}

func registerWebsiteRoutes(rg *gin.RouterGroup, h *Handlers) {
	website := rg.Group("/website")
	website.Use(middleware.RequirePermission(entity.PermissionManageWebsite))
	{
		website.GET("", h.Website.Get)
		website.PUT("", h.Website.Update)
		website.GET("/templates", h.Website.Templates)
		website.POST("/publish", h.Website.Publish)
		website.POST("/unpublish", h.Website.Unpublish)
	}
}

func registerUserRoutes(rg *gin.RouterGroup, h *Handlers) {
	admin := middleware.RequirePermission(entity.PermissionManageUsers)

	users := rg.Group("/users")
	users.Use(admin)
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id/roles", h.User.UpdateRoles)
		users.DELETE("/:id", h.User.Delete)
	}

	rg.GET("/roles", admin, h.User.ListRoles)
	rg.GET("/permissions", admin, h.User.ListPermissions)
}
