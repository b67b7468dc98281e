package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const healthTimeout = 3 * time.Second

// Health reports connectivity to Postgres and Redis: 200 {"ok": true} when
// both answer within the timeout, 503 otherwise. Each backend reports
// "connected" or "error" so the failing side is visible in the body.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		estadoDB := pingPostgres(ctx, db)
		estadoRedis := "connected"
		if err := rdb.Ping(ctx).Err(); err != nil {
			estadoRedis = "error"
		}

		ok := estadoDB == "connected" && estadoRedis == "connected"
		code := http.StatusOK
		if !ok {
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"ok":    ok,
			"db":    estadoDB,
			"redis": estadoRedis,
		})
	}
}

func pingPostgres(ctx context.Context, db *gorm.DB) string {
	sqlDB, err := db.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		return "error"
	}
	return "connected"
}
