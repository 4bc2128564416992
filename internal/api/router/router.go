package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prasanthzodiac/College-connect-sub000/config"
	"github.com/prasanthzodiac/College-connect-sub000/internal/api/handler"
	"github.com/prasanthzodiac/College-connect-sub000/internal/api/middleware"
	"github.com/prasanthzodiac/College-connect-sub000/internal/model"
	"github.com/prasanthzodiac/College-connect-sub000/internal/service"
	"github.com/prasanthzodiac/College-connect-sub000/pkg/jwt"
	"github.com/prasanthzodiac/College-connect-sub000/pkg/redis"
)

const maxBodyBytes = 1 << 20 // 1MB

// Setup builds the Gin engine with every route and middleware attached.
func Setup(cfg *config.Config, h *handler.Handler, authSvc service.AuthService, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	staffOrAdmin := middleware.RoleAuth(model.RoleStaff, model.RoleAdmin)
	adminOnly := middleware.RoleAuth(model.RoleAdmin)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// auth (unauthenticated)
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 20, time.Minute))
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// realtime (token via header or ?token= query)
		v1.GET("/ws", middleware.WSAuth(jwtMgr, rdb), middleware.ActorProvision(authSvc), h.WS.Connect)

		// authenticated routes
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		authorized.Use(middleware.ActorProvision(authSvc))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// subjects
			subjects := authorized.Group("/subjects")
			{
				subjects.GET("", h.Subject.List)
				subjects.GET("/my", h.Subject.MySubjects)
				subjects.GET("/students", staffOrAdmin, h.Subject.Students)
				subjects.POST("", adminOnly, h.Subject.Create)
				subjects.POST("/assign-staff", adminOnly, h.Subject.AssignStaff)
				subjects.POST("/enroll", staffOrAdmin, h.Subject.Enroll)
			}

			// attendance
			attendance := authorized.Group("/attendance")
			{
				attendance.POST("/generate-week", staffOrAdmin, h.Attendance.GenerateWeek)
				attendance.POST("/sessions", staffOrAdmin, h.Attendance.UpsertSession)
				attendance.GET("/sessions", staffOrAdmin, h.Attendance.SearchSessions)
				attendance.GET("/sessions/:id/entries", staffOrAdmin, h.Attendance.SessionEntries)
				attendance.GET("/timetable", staffOrAdmin, h.Attendance.MyTimetable)
				attendance.GET("/students/:id/entries", h.Attendance.StudentEntries) // self-or-staff in handler
				attendance.GET("/students/:id/summary", h.Attendance.StudentSummary)
				attendance.GET("/roll/:roll_no", staffOrAdmin, h.Attendance.StudentByRoll)
				attendance.GET("/overview", adminOnly, h.Attendance.Overview)
			}

			// leave
			leaves := authorized.Group("/leaves")
			{
				leaves.POST("", h.Leave.Apply)
				leaves.GET("/my", h.Leave.MyLeaves)
				leaves.GET("", staffOrAdmin, h.Leave.List)
				leaves.PUT("/:id/decision", staffOrAdmin, h.Leave.Decide)
			}

			// grievances
			grievances := authorized.Group("/grievances")
			{
				grievances.POST("", h.Grievance.Submit)
				grievances.GET("/my", h.Grievance.MyGrievances)
				grievances.GET("", staffOrAdmin, h.Grievance.List)
				grievances.PUT("/:id/resolution", staffOrAdmin, h.Grievance.Resolve)
			}

			// certificates
			certificates := authorized.Group("/certificates")
			{
				certificates.POST("", h.Certificate.Request)
				certificates.GET("/my", h.Certificate.MyRequests)
				certificates.GET("", adminOnly, h.Certificate.List)
				certificates.PUT("/:id/decision", adminOnly, h.Certificate.Decide)
				certificates.PUT("/:id/issue", adminOnly, h.Certificate.Issue)
			}

			// internal marks
			marks := authorized.Group("/marks")
			{
				marks.POST("", staffOrAdmin, h.Mark.Post)
				marks.GET("", staffOrAdmin, h.Mark.SubjectMarks)
				marks.GET("/students/:id", h.Mark.StudentMarks) // self-or-staff in handler
			}

			// assignments
			assignments := authorized.Group("/assignments")
			{
				assignments.POST("", staffOrAdmin, h.Assignment.Create)
				assignments.GET("", h.Assignment.List)
			}

			// circulars
			circulars := authorized.Group("/circulars")
			{
				circulars.POST("", staffOrAdmin, h.Circular.Create)
				circulars.GET("", h.Circular.List)
			}

			// events
			events := authorized.Group("/events")
			{
				events.POST("", staffOrAdmin, h.Event.Create)
				events.GET("", h.Event.List)
				events.GET("/export", h.Event.ExportICS)
				events.DELETE("/:id", adminOnly, h.Event.Delete)
			}

			// exports
			export := authorized.Group("/export")
			{
				export.GET("/attendance", adminOnly, h.Export.OverviewXLSX)
			}
		}
	}

	return r
}
