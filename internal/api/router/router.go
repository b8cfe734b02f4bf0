package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MattU27/301st-personnel-management-sub002/config"
	"github.com/MattU27/301st-personnel-management-sub002/internal/api/handler"
	"github.com/MattU27/301st-personnel-management-sub002/internal/api/middleware"
	"github.com/MattU27/301st-personnel-management-sub002/internal/model"
	"github.com/MattU27/301st-personnel-management-sub002/pkg/jwt"
	"github.com/MattU27/301st-personnel-management-sub002/pkg/redis"
)

const maxBodyBytes = 1 << 20 // 1MB; xlsx imports stay well under this

// Setup builds the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	staffUp := middleware.RoleAuth(model.RoleStaff, model.RoleAdmin, model.RoleDirector)
	adminUp := middleware.RoleAuth(model.RoleAdmin, model.RoleDirector)
	directorOnly := middleware.RoleAuth(model.RoleDirector)

	v1 := r.Group("/api/v1")
	{
		// authentication (no token required)
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.POST("/auth/password", h.Auth.ChangePassword)

			personnel := authorized.Group("/personnel")
			{
				personnel.GET("", staffUp, h.Personnel.List)
				personnel.GET("/:id", h.Personnel.Get)
				personnel.POST("", adminUp, h.Personnel.Create)
				personnel.PUT("/:id", h.Personnel.Update) // admin or self, checked in the service
				personnel.DELETE("/:id", adminUp, h.Personnel.Delete)
				personnel.PUT("/:id/role", directorOnly, h.Personnel.AssignRole)
				personnel.POST("/import", adminUp, h.Personnel.Import)
			}

			companies := authorized.Group("/companies")
			{
				companies.GET("", h.Company.List)
				companies.GET("/:id", h.Company.Get)
				companies.POST("", adminUp, h.Company.Create)
				companies.PUT("/:id", adminUp, h.Company.Update)
				companies.DELETE("/:id", adminUp, h.Company.Delete)
			}

			trainings := authorized.Group("/trainings")
			{
				trainings.GET("", h.Training.List)
				trainings.GET("/calendar.ics", h.Training.ExportCalendar)
				trainings.GET("/registrations/counts", staffUp, h.Training.AllRegistrationCounts)
				trainings.GET("/:id", h.Training.Get)
				trainings.POST("", staffUp, h.Training.Create)
				trainings.PUT("/:id", staffUp, h.Training.Update)
				trainings.POST("/:id/cancel-training", staffUp, h.Training.Cancel)
				trainings.POST("/:id/register", h.Training.Register)
				trainings.POST("/:id/cancel", h.Training.CancelRegistration)
				trainings.GET("/:id/attendees", staffUp, h.Training.Attendees)
				trainings.GET("/:id/registrations/count", staffUp, h.Training.RegistrationCount)
				trainings.GET("/:id/roster.xlsx", staffUp, h.Training.ExportRoster)
			}

			reconcile := authorized.Group("/admin/reconcile")
			reconcile.Use(adminUp)
			{
				reconcile.POST("/trainings", h.Reconcile.MigrateAll)
				reconcile.POST("/trainings/:id", h.Reconcile.MigrateOne)
			}

			announcements := authorized.Group("/announcements")
			{
				announcements.GET("", h.Announcement.List)
				announcements.GET("/:id", h.Announcement.Get)
				announcements.POST("", staffUp, h.Announcement.Create)
				announcements.PUT("/:id", staffUp, h.Announcement.Update)
				announcements.DELETE("/:id", staffUp, h.Announcement.Delete)
			}

			policies := authorized.Group("/policies")
			{
				policies.GET("", h.Policy.List)
				policies.GET("/:id", h.Policy.Get)
				policies.POST("", adminUp, h.Policy.Create)
				policies.PUT("/:id", adminUp, h.Policy.Update)
				policies.DELETE("/:id", adminUp, h.Policy.Delete)
			}

			documents := authorized.Group("/documents")
			{
				documents.GET("", h.Document.List)
				documents.GET("/:id", h.Document.Get)
				documents.POST("", h.Document.Create)
				documents.POST("/:id/verify", staffUp, h.Document.Verify)
				documents.DELETE("/:id", h.Document.Delete) // owner or staff, checked in the service
			}
		}
	}

	return r
}
