package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sharath018/hotel-association-backend/config"
	_ "github.com/sharath018/hotel-association-backend/docs"
	"github.com/sharath018/hotel-association-backend/internal/auditlog"
	"github.com/sharath018/hotel-association-backend/internal/auth"
	"github.com/sharath018/hotel-association-backend/internal/authz"
	"github.com/sharath018/hotel-association-backend/internal/directory"
	"github.com/sharath018/hotel-association-backend/internal/event"
	"github.com/sharath018/hotel-association-backend/internal/hotel"
	"github.com/sharath018/hotel-association-backend/internal/news"
	"github.com/sharath018/hotel-association-backend/internal/notification"
	"github.com/sharath018/hotel-association-backend/internal/reports"
	"github.com/sharath018/hotel-association-backend/internal/users"
	"github.com/sharath018/hotel-association-backend/middleware"
	"github.com/sharath018/hotel-association-backend/pkg/storage"
)

// Deps are the infrastructure handles built in main.
type Deps struct {
	DB        *gorm.DB
	Tokens    auth.TokenStore
	Publisher notification.Publisher
	Store     storage.ObjectStore
	Logger    *zap.Logger
}

func Setup(r *gin.Engine, cfg *config.Config, deps Deps) {
	// Local uploads are served by the API itself; S3 objects have their own URLs.
	if local, ok := deps.Store.(*storage.Local); ok {
		r.Static("/uploads", local.Root())
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter(cfg.RateLimitPerMinute))
	api.Use(middleware.AuditMiddleware())

	// ========== Audit Log ==========
	auditRepo := auditlog.NewRepository(deps.DB)
	auditSvc := auditlog.NewService(auditRepo, deps.Logger)

	// ========== Auth ==========
	authRepo := auth.NewRepository(deps.DB)
	authSvc := auth.NewService(authRepo, deps.Tokens, deps.Publisher, cfg, deps.Logger)
	authHandler := auth.NewHandler(authSvc)
	guard := authz.NewGuard(authRepo, deps.Logger)

	authenticated := []gin.HandlerFunc{
		middleware.AuthMiddleware(authSvc),
		middleware.RequirePasswordChanged(authRepo),
	}
	optional := middleware.OptionalAuth(authSvc)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)
	}

	// Reachable before the first password change so the user can pick one.
	authProtected := api.Group("/auth")
	authProtected.Use(middleware.AuthMiddleware(authSvc))
	{
		authProtected.GET("/me", authHandler.Me)
		authProtected.POST("/change-password", authHandler.ChangePassword)
		authProtected.POST("/logout", authHandler.Logout)
	}

	// ========== Hotels ==========
	hotelRepo := hotel.NewRepository(deps.DB)
	hotelSvc := hotel.NewService(hotelRepo, guard, authSvc, auditSvc, deps.Store, deps.Publisher, deps.Logger)
	hotelHandler := hotel.NewHandler(hotelSvc)

	// ========== Directory & Reports ==========
	dirSvc := directory.NewService(hotelRepo)
	dirHandler := directory.NewHandler(dirSvc)

	reportSvc := reports.NewReportService(guard, auditSvc, dirSvc, hotelRepo, reports.NewReportExporter())
	reportHandler := reports.NewHandler(reportSvc)

	api.POST("/hotels", optional, hotelHandler.Submit)

	hotelRoutes := api.Group("/hotels")
	hotelRoutes.Use(authenticated...)
	{
		hotelRoutes.GET("", hotelHandler.List)
		hotelRoutes.GET("/counts", hotelHandler.Counts)
		hotelRoutes.GET("/export", reportHandler.ExportApplications)
		hotelRoutes.GET("/:id", hotelHandler.Get)
		hotelRoutes.PUT("/:id", hotelHandler.Update)
		hotelRoutes.DELETE("/:id", hotelHandler.Delete)
		hotelRoutes.POST("/:id/approve", hotelHandler.Approve)
		hotelRoutes.POST("/:id/reject", hotelHandler.Reject)
		hotelRoutes.POST("/:id/restore", hotelHandler.Restore)
		hotelRoutes.POST("/:id/images", hotelHandler.UploadImage)
		hotelRoutes.DELETE("/:id/images", hotelHandler.RemoveImage)
		hotelRoutes.POST("/:id/documents/:kind", hotelHandler.UploadDocument)
	}

	directoryRoutes := api.Group("/directory")
	{
		directoryRoutes.GET("", dirHandler.ListMembers)
		directoryRoutes.GET("/export", reportHandler.ExportDirectory)
	}

	// ========== Activity Log ==========
	auditHandler := auditlog.NewHandler(auditSvc, guard)
	activityRoutes := api.Group("/activities")
	activityRoutes.Use(authenticated...)
	activityRoutes.Use(middleware.RequireCapability(guard, authz.ViewActivity))
	{
		activityRoutes.GET("", auditHandler.ListActivities)
		activityRoutes.GET("/stats", auditHandler.GetStats)
		activityRoutes.GET("/export", reportHandler.ExportActivities)
	}

	// ========== Events ==========
	eventRepo := event.NewRepository(deps.DB)
	eventSvc := event.NewService(eventRepo, guard, auditSvc, deps.Logger)
	eventHandler := event.NewHandler(eventSvc)

	api.GET("/events", optional, eventHandler.ListEvents)
	api.GET("/events/:id", optional, eventHandler.GetEventByID)
	eventRoutes := api.Group("/events")
	eventRoutes.Use(authenticated...)
	{
		eventRoutes.POST("", eventHandler.CreateEvent)
		eventRoutes.PUT("/:id", eventHandler.UpdateEvent)
		eventRoutes.POST("/:id/publish", eventHandler.PublishEvent)
		eventRoutes.POST("/:id/unpublish", eventHandler.UnpublishEvent)
		eventRoutes.DELETE("/:id", eventHandler.DeleteEvent)
	}

	// ========== News ==========
	newsSvc := news.NewService(news.NewRepository(deps.DB), guard, auditSvc)
	newsHandler := news.NewHandler(newsSvc)

	api.GET("/news", optional, newsHandler.List)
	api.GET("/news/:id", optional, newsHandler.Get)
	newsRoutes := api.Group("/news")
	newsRoutes.Use(authenticated...)
	{
		newsRoutes.POST("", newsHandler.Create)
		newsRoutes.PUT("/:id", newsHandler.Update)
		newsRoutes.POST("/:id/publish", newsHandler.Publish)
		newsRoutes.DELETE("/:id", newsHandler.Delete)
	}

	// ========== User Management ==========
	userSvc := users.NewService(authRepo, authSvc, guard, auditSvc, deps.Logger)
	userHandler := users.NewHandler(userSvc)

	userRoutes := api.Group("/users")
	userRoutes.Use(authenticated...)
	userRoutes.Use(middleware.RequireCapability(guard, authz.CreateUsers))
	{
		userRoutes.POST("", userHandler.CreateUser)
		userRoutes.GET("", userHandler.ListUsers)
		userRoutes.PATCH("/:id/role", userHandler.UpdateUserRole)
		userRoutes.POST("/:id/password", userHandler.ForceSetPassword)
	}
}
