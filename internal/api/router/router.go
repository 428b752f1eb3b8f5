package router

import (
	"html/template"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cz4r/config"
	"cz4r/internal/api/handler"
	"cz4r/internal/api/middleware"
)

// maxBodyBytes caps form posts; nothing the pages submit comes close.
const maxBodyBytes = 1 << 20

// Setup builds the gin engine. limiter may be nil, which disables login
// throttling.
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	auth middleware.SessionAuthenticator,
	limiter middleware.Limiter,
	pages *template.Template,
	logger *zap.Logger,
) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(pages)

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(maxBodyBytes))
	r.Use(middleware.Session(auth, cfg.Auth.Cookie, cfg.Auth.SessionTTL))

	loggedIn := middleware.Authorize(middleware.LoggedIn)
	adminOnly := middleware.Authorize(middleware.AdminOnly)

	r.GET("/health", h.Health.Health)
	r.NoRoute(h.Page.NotFound)

	// ── public ──
	r.GET("/", h.Page.Home)
	r.GET("/loginpage", h.Auth.LoginPage)
	r.POST("/login",
		middleware.RateLimit(limiter, cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow, logger),
		h.Auth.Login)
	r.POST("/logout", h.Auth.Logout)
	r.GET("/change-pw", h.Auth.ChangePasswordPage)
	r.POST("/api/v1/change-pw/:id", h.Auth.ChangePassword)

	// ── workers ──
	r.GET("/joblist", loggedIn, h.Job.List)
	r.GET("/api/v1/calendar.ics", loggedIn, h.Job.Calendar)
	r.GET("/checkinout", middleware.Authorize(middleware.SelfOrAdmin("worker")), h.Shift.Page)
	r.POST("/api/v1/checkinout", middleware.Authorize(middleware.SelfOrAdmin("WorkerId")), h.Shift.Record)

	// ── admin ──
	r.GET("/jobedit", adminOnly, h.Job.EditPage)

	admin := r.Group("/admin", adminOnly)
	{
		admin.GET("", h.Page.Admin)
		admin.GET("/worker-edit", h.Worker.EditPage)
		admin.GET("/worker-data", h.Payroll.WorkerData)
		admin.GET("/restore", h.Worker.RestorePage)

		api := admin.Group("/api/v1")
		{
			api.POST("/create-worker", h.Worker.Create)
			api.POST("/change-worker", h.Worker.Change)
			api.POST("/deactivate-worker", h.Worker.Deactivate)
			api.POST("/restore-worker", h.Worker.Restore)
			api.POST("/reset-pw", h.Worker.ResetPassword)
			api.POST("/edit-job", h.Job.Save)
			api.POST("/delete-job", h.Job.Delete)
			api.GET("/worker-data.xlsx", h.Payroll.Export)
		}
	}

	return r
}
