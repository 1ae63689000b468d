package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"complaint-desk/config"
	"complaint-desk/docs"
	"complaint-desk/internal/api/handler"
	"complaint-desk/internal/api/middleware"
	"complaint-desk/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时写接口不限流
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ── API 文档 ──
	if cfg.Server.EnableDocs {
		docs.SwaggerInfo.BasePath = "/api"
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// 写接口限流；避免把 nil *redis.Client 装进非 nil 接口
	var limiter middleware.RateLimiter
	if rdb != nil {
		limiter = rdb
	}
	limit := middleware.RateLimit(limiter, cfg.Server.RateLimit.Limit, cfg.Server.RateLimit.Window, logger)

	api := r.Group("/api")
	{
		// 部门模块
		departments := api.Group("/departments")
		{
			departments.GET("", h.Department.ListDepartments)
			departments.GET("/:id", h.Department.GetDepartment)
			departments.POST("/new", limit, h.Department.CreateDepartment)
			departments.PUT("/:id", limit, h.Department.UpdateDepartment)
			departments.DELETE("/:id", limit, h.Department.DeleteDepartment)
		}

		// 问题类型模块
		issues := api.Group("/issues")
		{
			issues.GET("", h.Issue.ListIssues)
			issues.GET("/:id", h.Issue.GetIssue)
			issues.POST("/new", limit, h.Issue.CreateIssue)
			issues.PUT("/:id", limit, h.Issue.UpdateIssue)
			issues.DELETE("/:id", limit, h.Issue.DeleteIssue)
		}

		// 投诉模块
		complaints := api.Group("/complaints")
		{
			complaints.GET("", h.Complaint.ListComplaints)
			complaints.GET("/export", h.Export.ExportComplaints)
			complaints.GET("/:id", h.Complaint.GetComplaint)
			complaints.POST("/new", limit, h.Complaint.CreateComplaint)
			complaints.PUT("/:id", limit, h.Complaint.UpdateComplaint)
			complaints.DELETE("/:id", limit, h.Complaint.DeleteComplaint)
		}
	}

	return r
}
