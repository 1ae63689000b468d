package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"complaint-desk/pkg/response"
)

// RateLimiter 滑动窗口限流器（pkg/redis.Client 实现）
type RateLimiter interface {
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit 写操作限流中间件，按客户端 IP + 路由计数
// limiter 为 nil 或 limit<=0 时直接放行；Redis 出错时记录告警并降级放行
func RateLimit(limiter RateLimiter, limit int, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || limit <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s:%s", c.ClientIP(), c.Request.Method, c.FullPath())
		allowed, err := limiter.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			logger.Warn("限流检查失败，降级放行",
				zap.String("route", c.FullPath()),
				zap.String("ip", c.ClientIP()),
				zap.String("request_id", c.GetString(requestIDKey)),
				zap.Error(err),
			)
			c.Next()
			return
		}

		if !allowed {
			response.AbortWithError(c, http.StatusTooManyRequests, response.CodeTooManyRequests, "Too many requests, please try again later")
			return
		}

		c.Next()
	}
}
